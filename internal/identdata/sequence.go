package identdata

import (
	"github.com/524D/mzidtool/internal/cv"
)

// DBSequence is a protein (or nucleic acid) sequence of a search database
type DBSequence struct {
	base
	ID             string
	Name           string
	Accession      string
	Seq            string
	Length         *int
	SearchDatabase *SearchDatabase
	Params         cv.ParamList
}

func (s *DBSequence) SetContext(ctx *Context) {
	if s == nil || s.ctx == ctx {
		return
	}
	s.ctx = ctx
	s.SearchDatabase.SetContext(ctx)
}

func (s *DBSequence) Equal(o *DBSequence) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s == o {
		return true
	}
	return s.Name == o.Name && s.Accession == o.Accession && s.Seq == o.Seq &&
		eqPtr(s.Length, o.Length) && s.Params.Equal(o.Params) &&
		s.SearchDatabase.Equal(o.SearchDatabase)
}

// Peptide is a peptide sequence with its modifications
type Peptide struct {
	base
	ID            string
	Name          string
	Sequence      string
	Modifications List[*Modification]
	Substitutions List[*SubstitutionModification]
	Params        cv.ParamList
}

func (p *Peptide) SetContext(ctx *Context) {
	if p == nil || p.ctx == ctx {
		return
	}
	p.ctx = ctx
	p.Modifications.SetContext(ctx)
	p.Substitutions.SetContext(ctx)
}

func (p *Peptide) Equal(o *Peptide) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p == o {
		return true
	}
	return p.Name == o.Name && p.Sequence == o.Sequence && p.Params.Equal(o.Params) &&
		p.Modifications.Equal(&o.Modifications) && p.Substitutions.Equal(&o.Substitutions)
}

// Modification of a peptide. Location 0 is the N-terminus and
// len(sequence)+1 the C-terminus.
type Modification struct {
	base
	Location              *int
	Residues              string
	AvgMassDelta          *float64
	MonoisotopicMassDelta *float64
	Params                cv.ParamList // cvParams only
}

func (m *Modification) SetContext(ctx *Context) {
	if m != nil {
		m.ctx = ctx
	}
}

func (m *Modification) Equal(o *Modification) bool {
	if m == nil || o == nil {
		return m == o
	}
	return eqPtr(m.Location, o.Location) && m.Residues == o.Residues &&
		eqPtr(m.AvgMassDelta, o.AvgMassDelta) &&
		eqPtr(m.MonoisotopicMassDelta, o.MonoisotopicMassDelta) &&
		m.Params.Equal(o.Params)
}

// SubstitutionModification is a residue replaced by another
type SubstitutionModification struct {
	base
	OriginalResidue       string
	ReplacementResidue    string
	Location              *int
	AvgMassDelta          *float64
	MonoisotopicMassDelta *float64
}

func (m *SubstitutionModification) SetContext(ctx *Context) {
	if m != nil {
		m.ctx = ctx
	}
}

func (m *SubstitutionModification) Equal(o *SubstitutionModification) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.OriginalResidue == o.OriginalResidue && m.ReplacementResidue == o.ReplacementResidue &&
		eqPtr(m.Location, o.Location) && eqPtr(m.AvgMassDelta, o.AvgMassDelta) &&
		eqPtr(m.MonoisotopicMassDelta, o.MonoisotopicMassDelta)
}

// PeptideEvidence places a peptide in a DBSequence
type PeptideEvidence struct {
	base
	ID               string
	Name             string
	Peptide          *Peptide
	DBSequence       *DBSequence
	Start            *int
	End              *int
	Pre              string
	Post             string
	Frame            *int
	TranslationTable *TranslationTable
	IsDecoy          bool
	Params           cv.ParamList
}

func (e *PeptideEvidence) SetContext(ctx *Context) {
	if e == nil || e.ctx == ctx {
		return
	}
	e.ctx = ctx
	e.Peptide.SetContext(ctx)
	e.DBSequence.SetContext(ctx)
	e.TranslationTable.SetContext(ctx)
}

func (e *PeptideEvidence) Equal(o *PeptideEvidence) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e == o {
		return true
	}
	return e.Name == o.Name && e.Pre == o.Pre && e.Post == o.Post && e.IsDecoy == o.IsDecoy &&
		eqPtr(e.Start, o.Start) && eqPtr(e.End, o.End) && eqPtr(e.Frame, o.Frame) &&
		e.Params.Equal(o.Params) &&
		e.Peptide.Equal(o.Peptide) && e.DBSequence.Equal(o.DBSequence) &&
		e.TranslationTable.Equal(o.TranslationTable)
}
