package identdata

import (
	"slices"

	"github.com/524D/mzidtool/internal/cv"
)

// SpectrumIdentificationProtocol holds the search settings of a run
type SpectrumIdentificationProtocol struct {
	base
	ID                     string
	Name                   string
	Software               *AnalysisSoftware
	SearchType             cv.Param
	AdditionalSearchParams cv.ParamList
	Modifications          List[*SearchModification]
	EnzymesIndependent     *bool
	Enzymes                List[*Enzyme]
	MassTables             List[*MassTable]
	FragmentTolerance      cv.ParamList
	ParentTolerance        cv.ParamList
	Threshold              cv.ParamList
	TranslationFrames      string
	TranslationTables      List[*TranslationTable]
}

func (p *SpectrumIdentificationProtocol) SetContext(ctx *Context) {
	if p == nil || p.ctx == ctx {
		return
	}
	p.ctx = ctx
	p.Software.SetContext(ctx)
	p.Modifications.SetContext(ctx)
	p.Enzymes.SetContext(ctx)
	p.MassTables.SetContext(ctx)
	p.TranslationTables.SetContext(ctx)
}

func (p *SpectrumIdentificationProtocol) Equal(o *SpectrumIdentificationProtocol) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p == o {
		return true
	}
	return p.Name == o.Name && p.TranslationFrames == o.TranslationFrames &&
		eqPtr(p.EnzymesIndependent, o.EnzymesIndependent) &&
		cv.ParamEqual(p.SearchType, o.SearchType) &&
		p.AdditionalSearchParams.Equal(o.AdditionalSearchParams) &&
		p.FragmentTolerance.Equal(o.FragmentTolerance) &&
		p.ParentTolerance.Equal(o.ParentTolerance) &&
		p.Threshold.Equal(o.Threshold) &&
		p.Software.Equal(o.Software) &&
		p.Modifications.Equal(&o.Modifications) &&
		p.Enzymes.Equal(&o.Enzymes) &&
		p.MassTables.Equal(&o.MassTables) &&
		p.TranslationTables.Equal(&o.TranslationTables)
}

// SearchModification is a fixed or variable modification searched for
type SearchModification struct {
	base
	FixedMod         bool
	MassDelta        float64
	Residues         string
	SpecificityRules cv.ParamList
	Params           cv.ParamList
}

func (m *SearchModification) SetContext(ctx *Context) {
	if m != nil {
		m.ctx = ctx
	}
}

func (m *SearchModification) Equal(o *SearchModification) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.FixedMod == o.FixedMod && m.MassDelta == o.MassDelta && m.Residues == o.Residues &&
		m.SpecificityRules.Equal(o.SpecificityRules) && m.Params.Equal(o.Params)
}

// Enzyme used for the digestion
type Enzyme struct {
	base
	ID              string
	Name            string
	CTermGain       string
	NTermGain       string
	MinDistance     *int
	MissedCleavages *int
	SemiSpecific    *bool
	SiteRegexp      string
	EnzymeName      cv.ParamList
}

func (e *Enzyme) SetContext(ctx *Context) {
	if e != nil {
		e.ctx = ctx
	}
}

func (e *Enzyme) Equal(o *Enzyme) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.Name == o.Name && e.CTermGain == o.CTermGain && e.NTermGain == o.NTermGain &&
		eqPtr(e.MinDistance, o.MinDistance) && eqPtr(e.MissedCleavages, o.MissedCleavages) &&
		eqPtr(e.SemiSpecific, o.SemiSpecific) && e.SiteRegexp == o.SiteRegexp &&
		e.EnzymeName.Equal(o.EnzymeName)
}

// Residue mass used by a MassTable
type Residue struct {
	Code string
	Mass float64
}

// MassTable lists the residue masses used for some MS levels
type MassTable struct {
	base
	ID       string
	Name     string
	MsLevel  string
	Residues []Residue
	Params   cv.ParamList
}

func (t *MassTable) SetContext(ctx *Context) {
	if t != nil {
		t.ctx = ctx
	}
}

func (t *MassTable) Equal(o *MassTable) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.Name == o.Name && t.MsLevel == o.MsLevel &&
		slices.Equal(t.Residues, o.Residues) && t.Params.Equal(o.Params)
}

// TranslationTable is a genetic code used to translate nucleic acid databases
type TranslationTable struct {
	base
	ID     string
	Name   string
	Params cv.ParamList
}

func (t *TranslationTable) SetContext(ctx *Context) {
	if t != nil {
		t.ctx = ctx
	}
}

func (t *TranslationTable) Equal(o *TranslationTable) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.Name == o.Name && t.Params.Equal(o.Params)
}

// ProteinDetectionProtocol holds the settings of the protein inference
type ProteinDetectionProtocol struct {
	base
	ID             string
	Name           string
	Software       *AnalysisSoftware
	AnalysisParams cv.ParamList
	Threshold      cv.ParamList
}

func (p *ProteinDetectionProtocol) SetContext(ctx *Context) {
	if p == nil || p.ctx == ctx {
		return
	}
	p.ctx = ctx
	p.Software.SetContext(ctx)
}

func (p *ProteinDetectionProtocol) Equal(o *ProteinDetectionProtocol) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p == o || (p.Name == o.Name && p.Software.Equal(o.Software) &&
		p.AnalysisParams.Equal(o.AnalysisParams) && p.Threshold.Equal(o.Threshold))
}
