package mzidentml

import (
	"encoding/xml"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/524D/mzidtool/internal/cv"
	"github.com/524D/mzidtool/internal/metrics"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

// MzIdentML holds the identifications of an mzIdentML file in flat form.
// It is produced by a single forward pass and never holds the full
// document.
type MzIdentML struct {
	identList     []Identification
	spectraData   []SpectraDataInfo
	fixedPeakList bool
}

// Identification is one peptide-spectrum match
type Identification struct {
	SpecItemID     string // id of the SpectrumIdentificationItem
	ResultID       string // id of the SpectrumIdentificationResult
	SpecID         string // native id of the spectrum (spectrumID attribute)
	SpectraDataRef string
	ScanNum        int // -1 if no scan number could be derived
	RetentionTime  float64
	PepSeq         string
	PepID          string
	Mods           []Mod
	ModMass        float64 // sum of the monoisotopic mass deltas of Mods
	Evidence       []Evidence
	Charge         int
	ExperimentalMz float64
	CalculatedMz   float64
	Rank           int
	PassThreshold  bool
	RawScore       int
	DeNovoScore    int
	SpecEValue     float64
	EValue         float64
	QValue         float64
	PepQValue      float64
	IsotopeError   int
	// Other holds every cvParam/userParam of the item that isn't one of
	// the scores above, by name
	Other map[string]string
}

// Mod is a modification at a position of the peptide. Location 0 is the
// N-terminus, len(sequence)+1 the C-terminus.
type Mod struct {
	Location int
	Mass     float64
	Name     string
}

// Evidence describes where a peptide occurs in a protein
type Evidence struct {
	Accession   string
	Description string
	Pre         string
	Post        string
	Start       int
	End         int
	IsDecoy     bool
}

// SpectraDataInfo describes an input spectra file
type SpectraDataInfo struct {
	ID       string
	Location string
	Format   cv.TermID
}

type peptideInfo struct {
	seq     string
	mods    []Mod
	modMass float64
}

type dbSequenceInfo struct {
	accession   string
	description string
}

// reader keeps the lookup tables of the sequence section, which is all
// that is needed to turn results into flat records
type reader struct {
	m           *MzIdentML
	tr          *cv.Translator
	dbSequences map[string]dbSequenceInfo
	peptides    map[string]peptideInfo
	evidence    map[string]Evidence
}

// Read reads identifications from an mzIdentML stream
func Read(rd io.Reader) (MzIdentML, error) {
	var mzIdentML MzIdentML
	start := time.Now()

	d := xml.NewDecoder(rd)
	d.CharsetReader = charset.NewReaderLabel
	doc := newCursor(d)
	se, err := doc.next()
	if err != nil {
		if err == io.EOF {
			return mzIdentML, ErrNoRootElement
		}
		return mzIdentML, err
	}
	if se.Name.Local != "MzIdentML" {
		return mzIdentML, errors.Wrapf(ErrNoRootElement, "found <%s>", se.Name.Local)
	}

	r := reader{
		m:           &mzIdentML,
		dbSequences: make(map[string]dbSequenceInfo),
		peptides:    make(map[string]peptideInfo),
		evidence:    make(map[string]Evidence),
	}
	top := doc.descend()
	for {
		se, err := top.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return mzIdentML, err
		}
		switch se.Name.Local {
		case "cvList":
			var l CvList
			if err := top.decode(&l); err != nil {
				return mzIdentML, err
			}
			cvs := make([]cv.CV, len(l.Cv))
			for i, c := range l.Cv {
				cvs[i] = cv.CV{ID: c.ID, FullName: c.FullName, Version: c.Version, URI: c.URI}
			}
			r.tr = cv.NewTranslator(cvs)
		case "SequenceCollection":
			if err := r.readSequenceCollection(top.descend()); err != nil {
				return mzIdentML, err
			}
		case "DataCollection":
			if err := r.readDataCollection(top.descend()); err != nil {
				return mzIdentML, err
			}
		}
	}
	metrics.IdentificationsRead.Add(float64(len(mzIdentML.identList)))
	metrics.ReadDuration.WithLabelValues("stream").Observe(time.Since(start).Seconds())
	return mzIdentML, nil
}

func (r *reader) term(c CVParam) cv.TermID {
	return r.tr.Resolve(c.CvRef, c.Accession)
}

func (r *reader) readSequenceCollection(c *cursor) error {
	for {
		se, err := c.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch se.Name.Local {
		case "DBSequence":
			var s DBSequence
			if err := c.decode(&s); err != nil {
				return err
			}
			info := dbSequenceInfo{accession: s.Accession}
			for _, p := range s.CvParam {
				if r.term(p) == cv.ProteinDescription {
					info.description = p.Value
				}
			}
			r.dbSequences[s.ID] = info
		case "Peptide":
			var p Peptide
			if err := c.decode(&p); err != nil {
				return err
			}
			r.peptides[p.ID] = r.newPeptideInfo(&p)
		case "PeptideEvidence":
			var pe PeptideEvidence
			if err := c.decode(&pe); err != nil {
				return err
			}
			dbs, ok := r.dbSequences[pe.DBSequenceRef]
			if !ok {
				return errors.Wrapf(ErrUnresolvedReference,
					"DBSequence %q in PeptideEvidence %q", pe.DBSequenceRef, pe.ID)
			}
			if _, ok := r.peptides[pe.PeptideRef]; !ok {
				return errors.Wrapf(ErrUnresolvedReference,
					"Peptide %q in PeptideEvidence %q", pe.PeptideRef, pe.ID)
			}
			ev := Evidence{
				Accession:   dbs.accession,
				Description: dbs.description,
				Pre:         pe.Pre,
				Post:        pe.Post,
				IsDecoy:     pe.IsDecoy,
			}
			if pe.Start != nil {
				ev.Start = *pe.Start
			}
			if pe.End != nil {
				ev.End = *pe.End
			}
			r.evidence[pe.ID] = ev
		}
	}
}

func (r *reader) newPeptideInfo(p *Peptide) peptideInfo {
	info := peptideInfo{seq: p.PeptideSequence}
	for _, mod := range p.Modification {
		var m Mod
		if mod.Location != nil {
			m.Location = *mod.Location
		}
		// Note: monoisotopicMassDelta is optional according the the schema, but
		// appears to be no other way to determine mass shift, as other
		// corresponding cvParam's don't carry this info either
		if mod.MonoisotopicMassDelta != nil {
			m.Mass = *mod.MonoisotopicMassDelta
		}
		if len(mod.CvParam) > 0 {
			m.Name = mod.CvParam[0].Name
		}
		info.modMass += m.Mass
		info.mods = append(info.mods, m)
	}
	sort.SliceStable(info.mods, func(i, j int) bool { return info.mods[i].Location < info.mods[j].Location })
	return info
}

func (r *reader) readDataCollection(c *cursor) error {
	for {
		se, err := c.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch se.Name.Local {
		case "Inputs":
			if err := r.readInputs(c.descend()); err != nil {
				return err
			}
		case "AnalysisData":
			if err := r.readAnalysisData(c.descend()); err != nil {
				return err
			}
		}
	}
}

func (r *reader) readInputs(c *cursor) error {
	for {
		se, err := c.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if se.Name.Local != "SpectraData" {
			continue
		}
		var sd SpectraData
		if err := c.decode(&sd); err != nil {
			return err
		}
		info := SpectraDataInfo{ID: sd.ID, Location: sd.Location}
		if sd.FileFormat != nil && sd.FileFormat.CvParam != nil {
			info.Format = r.term(*sd.FileFormat.CvParam)
		}
		// Scan numbers of peak list files are not encoded in the native id
		if info.Format == cv.MascotGenericFormat ||
			strings.HasSuffix(strings.ToLower(sd.Location), ".mgf") {
			r.m.fixedPeakList = true
		}
		r.m.spectraData = append(r.m.spectraData, info)
	}
}

func (r *reader) readAnalysisData(c *cursor) error {
	for {
		se, err := c.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if se.Name.Local != "SpectrumIdentificationList" {
			continue
		}
		sil := c.descend()
		for {
			se, err := sil.next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			if se.Name.Local != "SpectrumIdentificationResult" {
				continue
			}
			var sir SpectrumIdentificationResult
			if err := sil.decode(&sir); err != nil {
				return err
			}
			if err := r.addResult(&sir); err != nil {
				return err
			}
		}
	}
}

func (r *reader) addResult(sir *SpectrumIdentificationResult) error {
	// Result level values, read once for all items
	scanStr := ""
	if r.m.fixedPeakList {
		for _, p := range sir.CvParam {
			if r.term(p) == cv.ScanNumbers {
				scanStr = p.Value
				break
			}
		}
	} else {
		scanStr = ScanNumber(sir.SpectrumID)
	}
	scanNum, err := strconv.Atoi(scanStr)
	if err != nil {
		scanNum = -1
	}
	retentionTime, err := r.retentionTime(sir.CvParam)
	if err != nil {
		return errors.Wrapf(err, "SpectrumIdentificationResult %q", sir.ID)
	}

	for i := range sir.SpectrumIdentificationItem {
		sii := &sir.SpectrumIdentificationItem[i]
		ident := Identification{
			SpecItemID:     sii.ID,
			ResultID:       sir.ID,
			SpecID:         sir.SpectrumID,
			SpectraDataRef: sir.SpectraDataRef,
			ScanNum:        scanNum,
			RetentionTime:  retentionTime,
			Charge:         sii.ChargeState,
			ExperimentalMz: sii.ExperimentalMassToCharge,
			Rank:           sii.Rank,
			PassThreshold:  sii.PassThreshold,
			SpecEValue:     math.NaN(),
			EValue:         math.NaN(),
			QValue:         math.NaN(),
			PepQValue:      math.NaN(),
			Other:          make(map[string]string),
		}
		if sii.CalculatedMassToCharge != nil {
			ident.CalculatedMz = *sii.CalculatedMassToCharge
		}
		pep, ok := r.peptides[sii.PeptideRef]
		if !ok {
			return errors.Wrapf(ErrUnresolvedReference,
				"Peptide %q in SpectrumIdentificationItem %q", sii.PeptideRef, sii.ID)
		}
		ident.PepID = sii.PeptideRef
		ident.PepSeq = pep.seq
		ident.Mods = pep.mods
		ident.ModMass = pep.modMass
		for _, ref := range sii.PeptideEvidenceRef {
			ev, ok := r.evidence[ref.PeptideEvidenceRef]
			if !ok {
				return errors.Wrapf(ErrUnresolvedReference,
					"PeptideEvidence %q in SpectrumIdentificationItem %q", ref.PeptideEvidenceRef, sii.ID)
			}
			ident.Evidence = append(ident.Evidence, ev)
		}
		if err := ident.setScores(sii); err != nil {
			return errors.Wrapf(err, "SpectrumIdentificationItem %q", sii.ID)
		}
		r.m.identList = append(r.m.identList, ident)
	}
	return nil
}

// setScores stores the recognized scores, matched by exact name, and keeps
// everything else in Other
func (ident *Identification) setScores(sii *SpectrumIdentificationItem) error {
	var err error
	for _, p := range sii.CvParam {
		switch p.Name {
		case "MS-GF:RawScore":
			ident.RawScore, err = strconv.Atoi(p.Value)
		case "MS-GF:DeNovoScore":
			ident.DeNovoScore, err = strconv.Atoi(p.Value)
		case "MS-GF:SpecEValue":
			ident.SpecEValue, err = strconv.ParseFloat(p.Value, 64)
		case "MS-GF:EValue":
			ident.EValue, err = strconv.ParseFloat(p.Value, 64)
		case "MS-GF:QValue":
			ident.QValue, err = strconv.ParseFloat(p.Value, 64)
		case "MS-GF:PepQValue":
			ident.PepQValue, err = strconv.ParseFloat(p.Value, 64)
		default:
			ident.Other[p.Name] = p.Value
		}
		if err != nil {
			return errors.Wrapf(err, "score %s", p.Name)
		}
	}
	for _, p := range sii.UserParam {
		if p.Name == "IsotopeError" {
			ident.IsotopeError, err = strconv.Atoi(p.Value)
			if err != nil {
				return errors.Wrapf(err, "user param %s", p.Name)
			}
			continue
		}
		ident.Other[p.Name] = p.Value
	}
	return nil
}

// retentionTime returns the retention time in seconds, or -1 if the result
// doesn't report one
func (r *reader) retentionTime(params []CVParam) (float64, error) {
	retentionTime := float64(-1)
	prio := math.MaxInt32
	for _, p := range params {
		// There are multiple CV terms that can be used to report the
		// retention time. In order of decreasing preference we use:
		// 1. MS:1000016 - scan start time
		// 2. MS:1000894 - retention time
		// 3. MS:1000826 - elution time
		// 4. MS:1001114 - retention time (deprecated)
		useTime := false
		switch r.term(p) {
		case cv.ScanStartTime:
			useTime = prio > 1
			if useTime {
				prio = 1
			}
		case cv.RetentionTime:
			useTime = prio > 2
			if useTime {
				prio = 2
			}
		case cv.ElutionTime:
			useTime = prio > 3
			if useTime {
				prio = 3
			}
		case cv.RetentionTimeDeprecated:
			useTime = prio > 4
			if useTime {
				prio = 4
			}
		}
		if useTime {
			t, err := strconv.ParseFloat(p.Value, 64)
			if err != nil {
				return 0, err
			}
			// Check if the retention time is in minutes, otherwise assume it's seconds
			if p.UnitAccession == "UO:0000031" || p.UnitAccession == "MS:1000038" {
				t *= 60
			}
			retentionTime = t
		}
	}
	return retentionTime, nil
}

// scanKeys are tried in this order, the first one present wins
var scanKeys = []string{"spectrum=", "index=", "scanId=", "scan="}

// ScanNumber extracts the scan number from a native spectrum id made of
// whitespace separated key=value tokens, e.g.
// "controllerType=0 controllerNumber=1 scan=482". A native id without any
// '=' is returned as is. The result is not guaranteed to be numeric.
func ScanNumber(nativeID string) string {
	if !strings.Contains(nativeID, "=") {
		return nativeID
	}
	tokens := strings.Fields(nativeID)
	for _, key := range scanKeys {
		for _, tok := range tokens {
			if strings.HasPrefix(tok, key) {
				return tok[len(key):]
			}
		}
	}
	return ""
}

// NumIdents returns the total number of identifications in the mzIdentML file
// Note that for some spectra, multiple identifications may be present
// The identifications can be accessed using the Ident() method, which takes
// an index as argument. The index runs from 0 to NumIdents()-1
func (m *MzIdentML) NumIdents() int {
	return len(m.identList)
}

// Ident returns a spectrum identification from the mzIdentML file.
// Parameter i is the index of the identification to return. The index runs
// from 0 to NumIdents()-1
func (m *MzIdentML) Ident(i int) (Identification, error) {
	if i < 0 || i >= len(m.identList) {
		return Identification{}, ErrInvalidIdentIndex
	}
	return m.identList[i], nil
}

// Idents returns all identifications in document order
func (m *MzIdentML) Idents() []Identification {
	return m.identList
}

// SpectraData returns the spectra files listed in the inputs
func (m *MzIdentML) SpectraData() []SpectraDataInfo {
	return m.spectraData
}

// IsFixedPeakList reports whether the input spectra are peak list files
// (MGF), in which case scan numbers come from a cvParam of the result
func (m *MzIdentML) IsFixedPeakList() bool {
	return m.fixedPeakList
}
