package mzidentml

import (
	"compress/gzip"
	"encoding/xml"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testFile1 = "testdata/msgf_small.mzid"

func readTestFile(t *testing.T, name string) MzIdentML {
	t.Helper()
	x, err := os.Open(name)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer x.Close()
	f, err := Read(x)
	if err != nil {
		t.Fatalf("Read: error return %v", err)
	}
	return f
}

func TestAll1(t *testing.T) {
	f := readTestFile(t, testFile1)

	n := f.NumIdents()
	if n != 3 {
		t.Errorf("NumIdents is %d, expected 3", n)
	}
	if f.IsFixedPeakList() {
		t.Errorf("IsFixedPeakList: true, should be false")
	}
	_, err := f.Ident(3)
	if err != ErrInvalidIdentIndex {
		t.Errorf("Ident: error return %v, should be ErrInvalidIdentIndex", err)
	}
	ident, err := f.Ident(0)
	if err != nil {
		t.Fatalf("Ident: error return %v", err)
	}

	want := Identification{
		SpecItemID:     "SII_1_1",
		ResultID:       "SIR_1",
		SpecID:         "controllerType=0 controllerNumber=1 scan=482",
		SpectraDataRef: "SID_1",
		ScanNum:        482,
		RetentionTime:  630,
		PepSeq:         "PEPTIDEK",
		PepID:          "Pep1",
		Mods:           []Mod{{Location: 2, Mass: 15.994915, Name: "Oxidation"}},
		ModMass:        15.994915,
		Evidence: []Evidence{
			{Accession: "P1", Description: "Protein one", Pre: "K", Post: "A", Start: 5, End: 12},
			{Accession: "XXX_P1", Description: "Protein one", Pre: "R", Post: "-", Start: 13, End: 20, IsDecoy: true},
		},
		Charge:         2,
		ExperimentalMz: 466.7150,
		CalculatedMz:   466.7139,
		Rank:           1,
		PassThreshold:  true,
		RawScore:       120,
		DeNovoScore:    125,
		SpecEValue:     0.01,
		EValue:         2.5,
		QValue:         0,
		PepQValue:      0,
		IsotopeError:   0,
		Other:          map[string]string{"AssumedDissociationMethod": "CID"},
	}
	if diff := cmp.Diff(want, ident); diff != "" {
		t.Errorf("Ident(0) mismatch (-want +got):\n%s", diff)
	}

	ident, _ = f.Ident(1)
	if ident.IsotopeError != 1 {
		t.Errorf("IsotopeError is %d, expected 1", ident.IsotopeError)
	}
	if !math.IsNaN(ident.EValue) {
		t.Errorf("EValue is %v, expected NaN for a missing score", ident.EValue)
	}
	ident, _ = f.Ident(2)
	if ident.ScanNum != 17 {
		t.Errorf("ScanNum is %d, expected 17", ident.ScanNum)
	}
	if ident.RetentionTime != -1 {
		t.Errorf("RetentionTime is %v, expected -1", ident.RetentionTime)
	}
}

func TestGzip(t *testing.T) {
	src, err := os.ReadFile(testFile1)
	if err != nil {
		t.Fatal(err)
	}
	name := filepath.Join(t.TempDir(), "small.mzid.gz")
	w, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	z := gzip.NewWriter(w)
	z.Write(src)
	z.Close()
	w.Close()

	r, err := Open(name)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	f, err := Read(r)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if f.NumIdents() != 3 {
		t.Errorf("NumIdents is %d, expected 3", f.NumIdents())
	}
}

func TestScanNumber(t *testing.T) {
	tests := []struct {
		nativeID string
		want     string
	}{
		{"controllerType=0 controllerNumber=1 scan=482", "482"},
		{"index=17", "17"},
		{"spectrum=9", "9"},
		{"scanId=5", "5"},
		{"XYZ123", "XYZ123"},
		{"scan=3 index=2", "2"},
		{"file=run1", ""},
	}
	for _, tt := range tests {
		if got := ScanNumber(tt.nativeID); got != tt.want {
			t.Errorf("ScanNumber(%q) = %q, expected %q", tt.nativeID, got, tt.want)
		}
	}
}

const fixedPeakListDoc = `<?xml version="1.0" encoding="UTF-8"?>
<MzIdentML version="1.1.0" xmlns="http://psidev.info/psi/pi/mzIdentML/1.1">
  <cvList><cv id="PSI-MS" fullName="PSI-MS" uri="psi-ms.obo"/></cvList>
  <SequenceCollection>
    <Peptide id="P"><PeptideSequence>AAK</PeptideSequence></Peptide>
  </SequenceCollection>
  <DataCollection>
    <Inputs>
      <SpectraData location="C:\data\run1.MGF" id="SID_1">
        <SpectrumIDFormat><cvParam accession="MS:1000774" cvRef="PSI-MS" name="multiple peak list nativeID format"/></SpectrumIDFormat>
      </SpectraData>
    </Inputs>
    <AnalysisData>
      <SpectrumIdentificationList id="L">
        <SpectrumIdentificationResult spectraData_ref="SID_1" spectrumID="index=3" id="SIR_1">
          <SpectrumIdentificationItem rank="1" peptide_ref="P" experimentalMassToCharge="1" chargeState="1" passThreshold="true" id="SII_1_1"/>
          <cvParam accession="MS:1001115" cvRef="PSI-MS" value="1234" name="scan number(s)"/>
        </SpectrumIdentificationResult>
        <SpectrumIdentificationResult spectraData_ref="SID_1" spectrumID="index=4" id="SIR_2">
          <SpectrumIdentificationItem rank="1" peptide_ref="P" experimentalMassToCharge="1" chargeState="1" passThreshold="true" id="SII_2_1"/>
        </SpectrumIdentificationResult>
      </SpectrumIdentificationList>
    </AnalysisData>
  </DataCollection>
</MzIdentML>`

func TestFixedPeakList(t *testing.T) {
	f, err := Read(strings.NewReader(fixedPeakListDoc))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !f.IsFixedPeakList() {
		t.Fatalf("IsFixedPeakList: false, should be true")
	}
	ident, _ := f.Ident(0)
	if ident.ScanNum != 1234 {
		t.Errorf("ScanNum is %d, expected 1234 from the cvParam", ident.ScanNum)
	}
	ident, _ = f.Ident(1)
	if ident.ScanNum != -1 {
		t.Errorf("ScanNum is %d, expected -1 without cvParam", ident.ScanNum)
	}
}

func TestUnresolvedReference(t *testing.T) {
	doc := strings.Replace(fixedPeakListDoc, `peptide_ref="P" experimentalMassToCharge="1" chargeState="1" passThreshold="true" id="SII_2_1"`,
		`peptide_ref="Missing" experimentalMassToCharge="1" chargeState="1" passThreshold="true" id="SII_2_1"`, 1)
	_, err := Read(strings.NewReader(doc))
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Fatalf("Read: error return %v, should be ErrUnresolvedReference", err)
	}
	if !strings.Contains(err.Error(), "SII_2_1") {
		t.Errorf("error %q doesn't name the item", err)
	}
}

func TestStructuralErrors(t *testing.T) {
	_, err := Read(strings.NewReader(`<?xml version="1.0"?><mzML/>`))
	if !errors.Is(err, ErrNoRootElement) {
		t.Errorf("Read: error return %v, should be ErrNoRootElement", err)
	}
	_, err = Read(strings.NewReader(``))
	if !errors.Is(err, ErrNoRootElement) {
		t.Errorf("Read: error return %v, should be ErrNoRootElement", err)
	}
	_, err = Read(strings.NewReader(`<MzIdentML><SequenceCollection><Peptide id="x">`))
	if err == nil {
		t.Errorf("Read: no error for truncated document")
	}
	bad := strings.Replace(fixedPeakListDoc, `chargeState="1" passThreshold="true" id="SII_1_1"`,
		`chargeState="one" passThreshold="true" id="SII_1_1"`, 1)
	_, err = Read(strings.NewReader(bad))
	if err == nil {
		t.Errorf("Read: no error for invalid chargeState")
	}
}

func TestDecode(t *testing.T) {
	f, err := os.Open(testFile1)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(doc.SequenceCollection.Peptide) != 2 {
		t.Errorf("Decode: %d peptides, expected 2", len(doc.SequenceCollection.Peptide))
	}
	if got := doc.DataCollection.AnalysisData.SpectrumIdentificationList[0].SpectrumIdentificationResult[0].CvParam[0].Value; got != "10.5" {
		t.Errorf("Decode: result cvParam value %q, expected 10.5", got)
	}
}

func TestCursorClose(t *testing.T) {
	const doc = `<a><b><c/><c/><c/></b><d/></a>`
	d := xml.NewDecoder(strings.NewReader(doc))
	root := newCursor(d)
	if se, err := root.next(); err != nil || se.Name.Local != "a" {
		t.Fatalf("next: %v %v", se.Name.Local, err)
	}
	top := root.descend()
	if se, err := top.next(); err != nil || se.Name.Local != "b" {
		t.Fatalf("next: %v %v", se.Name.Local, err)
	}
	child := top.descend()
	if se, err := child.next(); err != nil || se.Name.Local != "c" {
		t.Fatalf("child next: %v %v", se.Name.Local, err)
	}
	if err := child.close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// Closing twice is a no-op
	if err := child.close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, err := child.next(); err != io.EOF {
		t.Errorf("next on closed cursor: %v, should be io.EOF", err)
	}
	se, err := top.next()
	if err != nil || se.Name.Local != "d" {
		t.Fatalf("parent next after close: %v %v", se.Name.Local, err)
	}
	if _, err := top.next(); err != io.EOF {
		t.Errorf("next at end of <a>: %v, should be io.EOF", err)
	}
	if _, err := root.next(); err != io.EOF {
		t.Errorf("next at end of document: %v, should be io.EOF", err)
	}
}
