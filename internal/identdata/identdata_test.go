package identdata

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/524D/mzidtool/internal/cv"
	"github.com/524D/mzidtool/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFile = "../mzidentml/testdata/msgf_small.mzid"

func readTestFile(t *testing.T) *IdentData {
	t.Helper()
	f, err := os.Open(testFile)
	require.NoError(t, err)
	defer f.Close()
	d, err := Read(f)
	require.NoError(t, err)
	return d
}

func ptr[T any](v T) *T { return &v }

func TestReadResolvesReferences(t *testing.T) {
	d := readTestFile(t)

	assert.Equal(t, 3, d.DBSequences.Len())
	assert.Equal(t, 2, d.Peptides.Len())
	assert.Equal(t, 3, d.PeptideEvidences.Len())
	require.Equal(t, 1, d.SpectrumIdentificationLists.Len())

	sil := d.SpectrumIdentificationLists.At(0)
	require.Equal(t, 2, sil.Results.Len())
	sir := sil.Results.At(0)
	assert.Equal(t, "/data/run1.mzML", sir.SpectraData.Location)
	it := sir.Items.At(0)
	assert.Equal(t, "PEPTIDEK", it.Peptide.Sequence)
	require.Equal(t, 2, it.PeptideEvidences.Len())
	assert.Equal(t, "P1", it.PeptideEvidences.At(0).DBSequence.Accession)
	assert.True(t, it.PeptideEvidences.At(1).IsDecoy)
	assert.Equal(t, "/data/proteins.revCat.fasta", it.PeptideEvidences.At(0).DBSequence.SearchDatabase.Location)

	v, err := cv.Value[float64](it.Params, cv.MSGFSpecEValue)
	require.NoError(t, err)
	assert.Equal(t, 0.01, v)
	mod := it.Peptide.Modifications.At(0)
	assert.True(t, mod.Params.Has("UNIMOD:35"))

	si := d.SpectrumIdentifications.At(0)
	assert.Same(t, sil, si.List)
	assert.Same(t, d.SpectrumIdentificationProtocols.At(0), si.Protocol)
	assert.Equal(t, "MS-GF+", si.Protocol.Software.Name)
	tol, ok := si.Protocol.ParentTolerance.CV("MS:1001412")
	require.True(t, ok)
	assert.Equal(t, cv.TermID("UO:0000169"), tol.Unit)

	pdh := d.ProteinDetectionList.Groups.At(0).Hypotheses.At(0)
	assert.Same(t, it.PeptideEvidences.At(0).DBSequence, pdh.DBSequence)
	assert.Same(t, it, pdh.PeptideHypotheses.At(0).Items.At(0))
}

func TestContextShared(t *testing.T) {
	d := readTestFile(t)
	ctx := d.Context()
	require.NotNil(t, ctx)
	it := d.SpectrumIdentificationLists.At(0).Results.At(0).Items.At(0)
	assert.Same(t, ctx, it.Context())
	assert.Same(t, ctx, it.Peptide.Modifications.At(0).Context())
	assert.Same(t, ctx, it.PeptideEvidences.Context())

	ctx2 := NewContext(nil, nil)
	d.SetContext(ctx2)
	assert.Same(t, ctx2, it.Context())
	assert.Same(t, ctx2, it.PeptideEvidences.At(1).DBSequence.Context())
	assert.Same(t, ctx2, d.DBSequences.Context())
	assert.Same(t, ctx2, d.ProteinDetectionList.Groups.At(0).Context())
}

func TestNilContext(t *testing.T) {
	var ctx *Context
	assert.Equal(t, cv.TermID(""), ctx.Term("PSI-MS", "MS:1000016"))
	assert.Nil(t, ctx.Translator())
	assert.NotNil(t, ctx.Logger())
	assert.Nil(t, lookup[*Peptide](ctx, "Peptide", "Pep1"))

	p := &Peptide{Sequence: "AAK"}
	p.SetContext(nil)
	assert.Nil(t, p.Context())

	// Adding to a list with a context attaches the orphan
	ctx2 := NewContext(nil, nil)
	d := New(ctx2)
	d.Peptides.Add(p)
	assert.Same(t, ctx2, p.Context())
}

func TestCollectionEquality(t *testing.T) {
	a := &Peptide{Sequence: "AAK"}
	b := &Peptide{Sequence: "CCK"}
	c := &Peptide{Sequence: "DDK"}
	l1 := NewList(nil, a, b, c)
	l2 := NewList(nil, &Peptide{Sequence: "DDK"}, &Peptide{Sequence: "AAK"}, &Peptide{Sequence: "CCK"})
	l3 := NewList(nil, a, c)
	assert.True(t, l1.Equal(&l2))
	assert.True(t, l2.Equal(&l1))
	assert.False(t, l1.Equal(&l3))
	assert.False(t, l3.Equal(&l1))

	// Equal sizes, but a duplicate instead of the missing element
	l4 := NewList(nil, a, a, b)
	assert.False(t, l1.Equal(&l4))
}

func TestEqualIgnoresID(t *testing.T) {
	a := &DBSequence{ID: "DBSeq1", Accession: "P1", Length: ptr(100)}
	b := &DBSequence{ID: "other", Accession: "P1", Length: ptr(100)}
	assert.True(t, a.Equal(b))
	b.Length = ptr(101)
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
	var n *DBSequence
	assert.True(t, n.Equal(nil))
}

func TestRebuildIDs(t *testing.T) {
	d := readTestFile(t)
	d.Rebuild()

	ids := func() []string {
		var out []string
		for _, e := range d.PeptideEvidences.Items() {
			out = append(out, e.ID)
		}
		for _, p := range d.Peptides.Items() {
			out = append(out, p.ID)
		}
		for _, s := range d.DBSequences.Items() {
			out = append(out, s.ID+"="+s.Accession)
		}
		for _, p := range d.SpectrumIdentificationProtocols.Items() {
			out = append(out, p.ID)
		}
		for _, s := range d.SearchDatabases.Items() {
			out = append(out, s.ID)
		}
		for _, s := range d.SpectraData.Items() {
			out = append(out, s.ID)
		}
		return out
	}
	want := []string{
		"PepEv_1", "PepEv_2", "PepEv_3",
		"Pep_1", "Pep_2",
		"DBSeq_1=P1", "DBSeq_2=XXX_P1", "DBSeq_3=P2",
		"SpecIdentProtocol_1", "SearchDB_1", "SID_1",
	}
	assert.Equal(t, want, ids())
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.CanonicalEntities.WithLabelValues("DBSequence")))

	before := append([]*DBSequence(nil), d.DBSequences.Items()...)
	d.Rebuild()
	assert.Equal(t, want, ids())
	assert.Equal(t, before, d.DBSequences.Items())
}

func TestRebuildDropsUnreferenced(t *testing.T) {
	d := readTestFile(t)
	orphan := &DBSequence{Accession: "UNUSED"}
	d.DBSequences.Add(orphan)
	d.Rebuild()
	assert.False(t, d.DBSequences.Contains(orphan))
	assert.Equal(t, 3, d.DBSequences.Len())
}

func TestRebuildDedup(t *testing.T) {
	ctx := NewContext(nil, nil)
	d := New(ctx)
	db := &SearchDatabase{Location: "/db.fasta"}
	s1 := &DBSequence{ID: "a", Accession: "P1", SearchDatabase: db}
	s2 := &DBSequence{ID: "b", Accession: "P1", SearchDatabase: db}
	pep := &Peptide{Sequence: "PEPTIDEK"}
	e1 := &PeptideEvidence{Peptide: pep, DBSequence: s1, Start: ptr(5)}
	e2 := &PeptideEvidence{Peptide: pep, DBSequence: s2, Start: ptr(30)}
	it := &SpectrumIdentificationItem{Peptide: pep, Rank: 1, PeptideEvidences: NewList(ctx, e1, e2)}
	r := &SpectrumIdentificationResult{ID: "SIR_1", Items: NewList(ctx, it)}
	d.SpectrumIdentificationLists.Add(&SpectrumIdentificationList{ID: "L", Results: NewList(ctx, r)})
	d.DBSequences.Add(s1, s2)

	d.Rebuild()

	require.Equal(t, 1, d.DBSequences.Len())
	assert.Same(t, s1, d.DBSequences.At(0))
	assert.Equal(t, "DBSeq_1", s1.ID)
	// The second evidence still points to its own copy
	assert.Same(t, s2, e2.DBSequence)
	assert.Equal(t, "b", s2.ID)
	assert.Equal(t, 2, d.PeptideEvidences.Len())
	assert.Equal(t, 1, d.Peptides.Len())
	assert.Equal(t, 1, d.SearchDatabases.Len())

	// The writer refers to the canonical copy
	doc := d.Document()
	evs := doc.SequenceCollection.PeptideEvidence
	require.Len(t, evs, 2)
	assert.Equal(t, "DBSeq_1", evs[0].DBSequenceRef)
	assert.Equal(t, "DBSeq_1", evs[1].DBSequenceRef)
}

func TestRoundTrip(t *testing.T) {
	d := readTestFile(t)
	var buf bytes.Buffer
	require.NoError(t, d.Write(&buf))

	d2, err := Read(&buf)
	require.NoError(t, err)
	d2.Rebuild()

	assert.True(t, d.DBSequences.Equal(&d2.DBSequences))
	assert.True(t, d.Peptides.Equal(&d2.Peptides))
	assert.True(t, d.PeptideEvidences.Equal(&d2.PeptideEvidences))
	assert.True(t, d.SearchDatabases.Equal(&d2.SearchDatabases))
	assert.True(t, d.SpectraData.Equal(&d2.SpectraData))
	assert.True(t, d.SpectrumIdentificationProtocols.Equal(&d2.SpectrumIdentificationProtocols))
	assert.True(t, d.SpectrumIdentificationLists.Equal(&d2.SpectrumIdentificationLists))
	assert.True(t, d.ProteinDetectionList.Equal(d2.ProteinDetectionList))
}

func TestWriteParams(t *testing.T) {
	d := New(nil)
	it := &SpectrumIdentificationItem{
		Rank: 1,
		Params: cv.ParamList{
			cv.CVParam{Term: cv.MSGFSpecEValue, Name: "MS-GF:SpecEValue", Value: "0.5"},
			cv.CVParam{Term: cv.Unknown, Name: "mystery", Value: "7"},
		},
	}
	r := &SpectrumIdentificationResult{Items: NewList(nil, it)}
	d.SpectrumIdentificationLists.Add(&SpectrumIdentificationList{Results: NewList(nil, r)})

	doc := d.Document()
	require.Len(t, doc.CvList.Cv, 1)
	assert.Equal(t, "PSI-MS", doc.CvList.Cv[0].ID)
	sii := doc.DataCollection.AnalysisData.SpectrumIdentificationList[0].SpectrumIdentificationResult[0].SpectrumIdentificationItem[0]
	require.Len(t, sii.CvParam, 1)
	assert.Equal(t, "MS:1002052", sii.CvParam[0].Accession)
	require.Len(t, sii.UserParam, 1)
	assert.Equal(t, "mystery", sii.UserParam[0].Name)
	assert.Equal(t, "SII_1", sii.ID)

	var buf bytes.Buffer
	require.NoError(t, d.Write(&buf))
	assert.Contains(t, buf.String(), `cvRef="PSI-MS"`)
}

const danglingDoc = `<?xml version="1.0" encoding="UTF-8"?>
<MzIdentML version="1.1.0" xmlns="http://psidev.info/psi/pi/mzIdentML/1.1">
  <cvList><cv id="PSI-MS" fullName="PSI-MS" uri="psi-ms.obo"/></cvList>
  <SequenceCollection>
    <Peptide id="P"><PeptideSequence>AAK</PeptideSequence></Peptide>
    <PeptideEvidence id="E" peptide_ref="P" dBSequence_ref="NoSuchSequence"/>
  </SequenceCollection>
  <DataCollection>
    <Inputs/>
    <AnalysisData>
      <SpectrumIdentificationList id="L">
        <SpectrumIdentificationResult spectraData_ref="SID_1" spectrumID="index=3" id="SIR_1">
          <SpectrumIdentificationItem rank="1" peptide_ref="Missing" experimentalMassToCharge="1" chargeState="1" passThreshold="true" id="SII_1_1">
            <PeptideEvidenceRef peptideEvidence_ref="E"/>
          </SpectrumIdentificationItem>
        </SpectrumIdentificationResult>
      </SpectrumIdentificationList>
    </AnalysisData>
  </DataCollection>
</MzIdentML>`

func TestDanglingReferences(t *testing.T) {
	before := testutil.ToFloat64(metrics.DanglingReferences.WithLabelValues("Peptide"))
	d, err := Read(strings.NewReader(danglingDoc))
	require.NoError(t, err)
	after := testutil.ToFloat64(metrics.DanglingReferences.WithLabelValues("Peptide"))
	assert.Equal(t, before+1, after)

	r := d.SpectrumIdentificationLists.At(0).Results.At(0)
	assert.Nil(t, r.SpectraData)
	it := r.Items.At(0)
	assert.Nil(t, it.Peptide)
	require.Equal(t, 1, it.PeptideEvidences.Len())
	ev := it.PeptideEvidences.At(0)
	assert.Equal(t, "AAK", ev.Peptide.Sequence)
	assert.Nil(t, ev.DBSequence)

	// A graph with unresolved fields can still be rebuilt and written
	d.Rebuild()
	assert.Equal(t, 0, d.DBSequences.Len())
	assert.Equal(t, 1, d.Peptides.Len())
	assert.NoError(t, d.Write(&bytes.Buffer{}))
}

func TestConversionError(t *testing.T) {
	doc := strings.Replace(danglingDoc, `<PeptideEvidenceRef peptideEvidence_ref="E"/>`,
		`<Fragmentation><IonType charge="1" index="1 x 3"/></Fragmentation>`, 1)
	_, err := Read(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SII_1_1")
}
