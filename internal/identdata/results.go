package identdata

import (
	"slices"

	"github.com/524D/mzidtool/internal/cv"
)

// SpectrumIdentificationList holds the results of one search
type SpectrumIdentificationList struct {
	base
	ID                   string
	Name                 string
	NumSequencesSearched *int64
	Measures             List[*Measure]
	Results              List[*SpectrumIdentificationResult]
	Params               cv.ParamList
}

func (l *SpectrumIdentificationList) SetContext(ctx *Context) {
	if l == nil || l.ctx == ctx {
		return
	}
	l.ctx = ctx
	l.Measures.SetContext(ctx)
	l.Results.SetContext(ctx)
}

func (l *SpectrumIdentificationList) Equal(o *SpectrumIdentificationList) bool {
	if l == nil || o == nil {
		return l == o
	}
	if l == o {
		return true
	}
	return l.Name == o.Name && eqPtr(l.NumSequencesSearched, o.NumSequencesSearched) &&
		l.Params.Equal(o.Params) && l.Measures.Equal(&o.Measures) && l.Results.Equal(&o.Results)
}

// Measure describes the values of a FragmentArray
type Measure struct {
	base
	ID     string
	Name   string
	Params cv.ParamList
}

func (m *Measure) SetContext(ctx *Context) {
	if m != nil {
		m.ctx = ctx
	}
}

func (m *Measure) Equal(o *Measure) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.Name == o.Name && m.Params.Equal(o.Params)
}

// SpectrumIdentificationResult holds the candidate peptides of one spectrum
type SpectrumIdentificationResult struct {
	base
	ID          string
	Name        string
	SpectrumID  string // native id of the spectrum
	SpectraData *SpectraData
	Items       List[*SpectrumIdentificationItem]
	Params      cv.ParamList
}

func (r *SpectrumIdentificationResult) SetContext(ctx *Context) {
	if r == nil || r.ctx == ctx {
		return
	}
	r.ctx = ctx
	r.SpectraData.SetContext(ctx)
	r.Items.SetContext(ctx)
}

func (r *SpectrumIdentificationResult) Equal(o *SpectrumIdentificationResult) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r == o {
		return true
	}
	return r.Name == o.Name && r.SpectrumID == o.SpectrumID && r.Params.Equal(o.Params) &&
		r.SpectraData.Equal(o.SpectraData) && r.Items.Equal(&o.Items)
}

// SpectrumIdentificationItem is one peptide-spectrum match
type SpectrumIdentificationItem struct {
	base
	ID                       string
	Name                     string
	ChargeState              int
	ExperimentalMassToCharge float64
	CalculatedMassToCharge   *float64
	CalculatedPI             *float64
	Peptide                  *Peptide
	Rank                     int
	PassThreshold            bool
	MassTable                *MassTable
	Sample                   *Sample
	PeptideEvidences         List[*PeptideEvidence]
	Fragmentation            List[*IonType]
	Params                   cv.ParamList
}

func (it *SpectrumIdentificationItem) SetContext(ctx *Context) {
	if it == nil || it.ctx == ctx {
		return
	}
	it.ctx = ctx
	it.Peptide.SetContext(ctx)
	it.MassTable.SetContext(ctx)
	it.Sample.SetContext(ctx)
	it.PeptideEvidences.SetContext(ctx)
	it.Fragmentation.SetContext(ctx)
}

func (it *SpectrumIdentificationItem) Equal(o *SpectrumIdentificationItem) bool {
	if it == nil || o == nil {
		return it == o
	}
	if it == o {
		return true
	}
	return it.Name == o.Name && it.ChargeState == o.ChargeState &&
		it.ExperimentalMassToCharge == o.ExperimentalMassToCharge &&
		eqPtr(it.CalculatedMassToCharge, o.CalculatedMassToCharge) &&
		eqPtr(it.CalculatedPI, o.CalculatedPI) &&
		it.Rank == o.Rank && it.PassThreshold == o.PassThreshold &&
		it.Params.Equal(o.Params) &&
		it.Peptide.Equal(o.Peptide) && it.MassTable.Equal(o.MassTable) && it.Sample.Equal(o.Sample) &&
		it.PeptideEvidences.Equal(&o.PeptideEvidences) && it.Fragmentation.Equal(&o.Fragmentation)
}

// IonType is a series of fragment ions annotated on the spectrum
type IonType struct {
	base
	Index          []int
	Charge         int
	FragmentArrays List[*FragmentArray]
	Params         cv.ParamList
}

func (t *IonType) SetContext(ctx *Context) {
	if t == nil || t.ctx == ctx {
		return
	}
	t.ctx = ctx
	t.FragmentArrays.SetContext(ctx)
}

func (t *IonType) Equal(o *IonType) bool {
	if t == nil || o == nil {
		return t == o
	}
	return slices.Equal(t.Index, o.Index) && t.Charge == o.Charge &&
		t.Params.Equal(o.Params) && t.FragmentArrays.Equal(&o.FragmentArrays)
}

// FragmentArray holds one measure for each ion of an IonType
type FragmentArray struct {
	base
	Values  []float64
	Measure *Measure
}

func (a *FragmentArray) SetContext(ctx *Context) {
	if a == nil || a.ctx == ctx {
		return
	}
	a.ctx = ctx
	a.Measure.SetContext(ctx)
}

func (a *FragmentArray) Equal(o *FragmentArray) bool {
	if a == nil || o == nil {
		return a == o
	}
	return slices.Equal(a.Values, o.Values) && a.Measure.Equal(o.Measure)
}

// ProteinDetectionList holds the protein inference result
type ProteinDetectionList struct {
	base
	ID     string
	Name   string
	Groups List[*ProteinAmbiguityGroup]
	Params cv.ParamList
}

func (l *ProteinDetectionList) SetContext(ctx *Context) {
	if l == nil || l.ctx == ctx {
		return
	}
	l.ctx = ctx
	l.Groups.SetContext(ctx)
}

func (l *ProteinDetectionList) Equal(o *ProteinDetectionList) bool {
	if l == nil || o == nil {
		return l == o
	}
	return l == o || (l.Name == o.Name && l.Params.Equal(o.Params) && l.Groups.Equal(&o.Groups))
}

// ProteinAmbiguityGroup holds proteins that can't be told apart
type ProteinAmbiguityGroup struct {
	base
	ID         string
	Name       string
	Hypotheses List[*ProteinDetectionHypothesis]
	Params     cv.ParamList
}

func (g *ProteinAmbiguityGroup) SetContext(ctx *Context) {
	if g == nil || g.ctx == ctx {
		return
	}
	g.ctx = ctx
	g.Hypotheses.SetContext(ctx)
}

func (g *ProteinAmbiguityGroup) Equal(o *ProteinAmbiguityGroup) bool {
	if g == nil || o == nil {
		return g == o
	}
	return g == o || (g.Name == o.Name && g.Params.Equal(o.Params) && g.Hypotheses.Equal(&o.Hypotheses))
}

// ProteinDetectionHypothesis is a protein supported by peptide hypotheses
type ProteinDetectionHypothesis struct {
	base
	ID                string
	Name              string
	DBSequence        *DBSequence
	PassThreshold     bool
	PeptideHypotheses List[*PeptideHypothesis]
	Params            cv.ParamList
}

func (h *ProteinDetectionHypothesis) SetContext(ctx *Context) {
	if h == nil || h.ctx == ctx {
		return
	}
	h.ctx = ctx
	h.DBSequence.SetContext(ctx)
	h.PeptideHypotheses.SetContext(ctx)
}

func (h *ProteinDetectionHypothesis) Equal(o *ProteinDetectionHypothesis) bool {
	if h == nil || o == nil {
		return h == o
	}
	if h == o {
		return true
	}
	return h.Name == o.Name && h.PassThreshold == o.PassThreshold && h.Params.Equal(o.Params) &&
		h.DBSequence.Equal(o.DBSequence) && h.PeptideHypotheses.Equal(&o.PeptideHypotheses)
}

// PeptideHypothesis links evidence to the items that support it
type PeptideHypothesis struct {
	base
	PeptideEvidence *PeptideEvidence
	Items           List[*SpectrumIdentificationItem]
}

func (h *PeptideHypothesis) SetContext(ctx *Context) {
	if h == nil || h.ctx == ctx {
		return
	}
	h.ctx = ctx
	h.PeptideEvidence.SetContext(ctx)
	h.Items.SetContext(ctx)
}

func (h *PeptideHypothesis) Equal(o *PeptideHypothesis) bool {
	if h == nil || o == nil {
		return h == o
	}
	return h == o || (h.PeptideEvidence.Equal(o.PeptideEvidence) && h.Items.Equal(&o.Items))
}

// SpectrumIdentification is one search run
type SpectrumIdentification struct {
	base
	ID              string
	Name            string
	ActivityDate    string
	Protocol        *SpectrumIdentificationProtocol
	List            *SpectrumIdentificationList
	InputSpectra    List[*SpectraData]
	SearchDatabases List[*SearchDatabase]
}

func (s *SpectrumIdentification) SetContext(ctx *Context) {
	if s == nil || s.ctx == ctx {
		return
	}
	s.ctx = ctx
	s.Protocol.SetContext(ctx)
	s.List.SetContext(ctx)
	s.InputSpectra.SetContext(ctx)
	s.SearchDatabases.SetContext(ctx)
}

func (s *SpectrumIdentification) Equal(o *SpectrumIdentification) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s == o {
		return true
	}
	return s.Name == o.Name && s.ActivityDate == o.ActivityDate &&
		s.Protocol.Equal(o.Protocol) && s.List.Equal(o.List) &&
		s.InputSpectra.Equal(&o.InputSpectra) && s.SearchDatabases.Equal(&o.SearchDatabases)
}

// ProteinDetection is the protein inference run
type ProteinDetection struct {
	base
	ID           string
	Name         string
	ActivityDate string
	Protocol     *ProteinDetectionProtocol
	List         *ProteinDetectionList
	Inputs       List[*SpectrumIdentificationList]
}

func (p *ProteinDetection) SetContext(ctx *Context) {
	if p == nil || p.ctx == ctx {
		return
	}
	p.ctx = ctx
	p.Protocol.SetContext(ctx)
	p.List.SetContext(ctx)
	p.Inputs.SetContext(ctx)
}

func (p *ProteinDetection) Equal(o *ProteinDetection) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p == o || (p.Name == o.Name && p.ActivityDate == o.ActivityDate &&
		p.Protocol.Equal(o.Protocol) && p.List.Equal(o.List) && p.Inputs.Equal(&o.Inputs))
}
