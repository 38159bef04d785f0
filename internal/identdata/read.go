package identdata

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/524D/mzidtool/internal/cv"
	"github.com/524D/mzidtool/internal/metrics"
	"github.com/524D/mzidtool/internal/mzidentml"

	"github.com/pkg/errors"
)

// Option configures Read and FromDocument
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger of the document context. Dangling references
// are reported at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Read parses a complete mzIdentML document into a graph
func Read(r io.Reader, opts ...Option) (*IdentData, error) {
	start := time.Now()
	doc, err := mzidentml.Decode(r)
	if err != nil {
		return nil, err
	}
	d, err := FromDocument(doc, opts...)
	if err != nil {
		return nil, err
	}
	metrics.ReadDuration.WithLabelValues("graph").Observe(time.Since(start).Seconds())
	return d, nil
}

// FromDocument builds the graph of a decoded document. Entities are built
// leaves first, so each reference is resolved against entities that
// already exist. References to ids that are not declared are left nil.
func FromDocument(doc *mzidentml.Document, opts ...Option) (*IdentData, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	cvs := make([]cv.CV, len(doc.CvList.Cv))
	for i, c := range doc.CvList.Cv {
		cvs[i] = cv.CV{ID: c.ID, FullName: c.FullName, Version: c.Version, URI: c.URI}
	}
	b := &builder{ctx: NewContext(cv.NewTranslator(cvs), o.logger)}
	d := New(b.ctx)
	d.ID = doc.ID
	d.Name = doc.Name
	d.Version = doc.Version
	d.CreationDate = doc.CreationDate

	b.audit(d, doc.AuditCollection)
	if doc.AnalysisSoftwareList != nil {
		for _, s := range doc.AnalysisSoftwareList.AnalysisSoftware {
			d.Software.Add(b.software(s))
		}
	}
	if doc.Provider != nil {
		p := doc.Provider
		d.Provider = &Provider{
			base:        b.base(),
			ID:          p.ID,
			Name:        p.Name,
			Software:    lookup[*AnalysisSoftware](b.ctx, "AnalysisSoftware", p.AnalysisSoftwareRef),
			ContactRole: b.contactRole(p.ContactRole),
		}
	}
	b.samples(d, doc.AnalysisSampleCollection)
	b.protocols(d, &doc.AnalysisProtocolCollection)
	b.inputs(d, &doc.DataCollection.Inputs)
	b.sequences(d, doc.SequenceCollection)
	if err := b.analysisData(d, &doc.DataCollection.AnalysisData); err != nil {
		return nil, err
	}
	b.analysisCollection(d, &doc.AnalysisCollection)
	for _, r := range doc.BibliographicReference {
		d.BibliographicReferences.Add(&BibliographicReference{
			base: b.base(), ID: r.ID, Name: r.Name, Authors: r.Authors, DOI: r.DOI,
			Editor: r.Editor, Issue: r.Issue, Pages: r.Pages, Publication: r.Publication,
			Publisher: r.Publisher, Title: r.Title, Volume: r.Volume, Year: r.Year,
		})
	}
	b.ctx.forget()
	return d, nil
}

type builder struct {
	ctx *Context
}

func (b *builder) base() base {
	return base{ctx: b.ctx}
}

func (b *builder) cvParam(p mzidentml.CVParam) cv.CVParam {
	c := cv.CVParam{Term: b.ctx.Term(p.CvRef, p.Accession), Name: p.Name, Value: p.Value}
	if p.UnitAccession != "" {
		c.Unit = b.ctx.Term(p.UnitCvRef, p.UnitAccession)
	}
	return c
}

func (b *builder) userParam(p mzidentml.UserParam) cv.UserParam {
	u := cv.UserParam{Name: p.Name, Type: p.Type, Value: p.Value}
	if p.UnitAccession != "" {
		u.Unit = b.ctx.Term(p.UnitCvRef, p.UnitAccession)
	}
	return u
}

func (b *builder) cvParams(ps []mzidentml.CVParam) cv.ParamList {
	var l cv.ParamList
	for _, p := range ps {
		l = append(l, b.cvParam(p))
	}
	return l
}

func (b *builder) params(ps *mzidentml.Params) cv.ParamList {
	if ps == nil {
		return nil
	}
	l := b.cvParams(ps.CvParam)
	for _, p := range ps.UserParam {
		l = append(l, b.userParam(p))
	}
	return l
}

func (b *builder) choice(c *mzidentml.ParamChoice) cv.Param {
	switch {
	case c == nil:
		return nil
	case c.CvParam != nil:
		return b.cvParam(*c.CvParam)
	case c.UserParam != nil:
		return b.userParam(*c.UserParam)
	}
	return nil
}

func (b *builder) contactRole(r *mzidentml.ContactRole) *ContactRole {
	if r == nil {
		return nil
	}
	cr := &ContactRole{base: b.base(), Role: b.choice(&r.Role)}
	if p := lookupQuiet[*Person](b.ctx, "Person", r.ContactRef); p != nil {
		cr.Contact = p
	} else if o := lookup[*Organization](b.ctx, "Organization", r.ContactRef); o != nil {
		cr.Contact = o
	}
	return cr
}

// audit builds organizations before persons, persons are affiliated with
// organizations. Parent organizations may be declared later, so they are
// resolved in a second pass.
func (b *builder) audit(d *IdentData, ac *mzidentml.AuditCollection) {
	if ac == nil {
		return
	}
	orgs := make([]*Organization, len(ac.Organization))
	for i, o := range ac.Organization {
		orgs[i] = &Organization{base: b.base(), ID: o.ID, Name: o.Name, Params: b.params(&o.Params)}
		b.ctx.register("Organization", o.ID, orgs[i])
	}
	for i, o := range ac.Organization {
		if o.Parent != nil {
			orgs[i].Parent = lookup[*Organization](b.ctx, "Organization", o.Parent.OrganizationRef)
		}
	}
	d.Organizations.Add(orgs...)
	for _, p := range ac.Person {
		person := &Person{
			base:         b.base(),
			ID:           p.ID,
			Name:         p.Name,
			LastName:     p.LastName,
			FirstName:    p.FirstName,
			MidInitials:  p.MidInitials,
			Params:       b.params(&p.Params),
			Affiliations: NewList[*Organization](b.ctx),
		}
		for _, a := range p.Affiliation {
			if o := lookup[*Organization](b.ctx, "Organization", a.OrganizationRef); o != nil {
				person.Affiliations.Add(o)
			}
		}
		b.ctx.register("Person", p.ID, person)
		d.Persons.Add(person)
	}
}

func (b *builder) software(s mzidentml.AnalysisSoftware) *AnalysisSoftware {
	sw := &AnalysisSoftware{
		base:           b.base(),
		ID:             s.ID,
		Name:           s.Name,
		Version:        s.Version,
		URI:            s.URI,
		Customizations: s.Customizations,
		ContactRole:    b.contactRole(s.ContactRole),
		SoftwareName:   b.choice(s.SoftwareName),
	}
	b.ctx.register("AnalysisSoftware", s.ID, sw)
	return sw
}

func (b *builder) samples(d *IdentData, sc *mzidentml.AnalysisSampleCollection) {
	if sc == nil {
		return
	}
	samples := make([]*Sample, len(sc.Sample))
	for i, s := range sc.Sample {
		samples[i] = &Sample{
			base:         b.base(),
			ID:           s.ID,
			Name:         s.Name,
			Params:       b.params(&s.Params),
			ContactRoles: NewList[*ContactRole](b.ctx),
			SubSamples:   NewList[*Sample](b.ctx),
		}
		for j := range s.ContactRole {
			samples[i].ContactRoles.Add(b.contactRole(&s.ContactRole[j]))
		}
		b.ctx.register("Sample", s.ID, samples[i])
	}
	for i, s := range sc.Sample {
		for _, sub := range s.SubSample {
			if x := lookup[*Sample](b.ctx, "Sample", sub.SampleRef); x != nil {
				samples[i].SubSamples.Add(x)
			}
		}
	}
	d.Samples.Add(samples...)
}

func (b *builder) protocols(d *IdentData, pc *mzidentml.AnalysisProtocolCollection) {
	for _, p := range pc.SpectrumIdentificationProtocol {
		sip := &SpectrumIdentificationProtocol{
			base:                   b.base(),
			ID:                     p.ID,
			Name:                   p.Name,
			Software:               lookup[*AnalysisSoftware](b.ctx, "AnalysisSoftware", p.AnalysisSoftwareRef),
			SearchType:             b.choice(&p.SearchType),
			AdditionalSearchParams: b.params(p.AdditionalSearchParams),
			Modifications:          NewList[*SearchModification](b.ctx),
			Enzymes:                NewList[*Enzyme](b.ctx),
			MassTables:             NewList[*MassTable](b.ctx),
			FragmentTolerance:      b.params(p.FragmentTolerance),
			ParentTolerance:        b.params(p.ParentTolerance),
			Threshold:              b.params(&p.Threshold),
			TranslationTables:      NewList[*TranslationTable](b.ctx),
		}
		if p.ModificationParams != nil {
			for _, m := range p.ModificationParams.SearchModification {
				sm := &SearchModification{
					base:      b.base(),
					FixedMod:  m.FixedMod,
					MassDelta: m.MassDelta,
					Residues:  m.Residues,
					Params:    b.cvParams(m.CvParam),
				}
				for _, r := range m.SpecificityRules {
					sm.SpecificityRules = append(sm.SpecificityRules, b.cvParams(r.CvParam)...)
				}
				sip.Modifications.Add(sm)
			}
		}
		if p.Enzymes != nil {
			sip.EnzymesIndependent = p.Enzymes.Independent
			for _, e := range p.Enzymes.Enzyme {
				sip.Enzymes.Add(&Enzyme{
					base:            b.base(),
					ID:              e.ID,
					Name:            e.Name,
					CTermGain:       e.CTermGain,
					NTermGain:       e.NTermGain,
					MinDistance:     e.MinDistance,
					MissedCleavages: e.MissedCleavages,
					SemiSpecific:    e.SemiSpecific,
					SiteRegexp:      e.SiteRegexp,
					EnzymeName:      b.params(e.EnzymeName),
				})
			}
		}
		for _, m := range p.MassTable {
			mt := &MassTable{base: b.base(), ID: m.ID, Name: m.Name, MsLevel: m.MsLevel, Params: b.params(&m.Params)}
			for _, r := range m.Residue {
				mt.Residues = append(mt.Residues, Residue{Code: r.Code, Mass: r.Mass})
			}
			b.ctx.register("MassTable", m.ID, mt)
			sip.MassTables.Add(mt)
		}
		if p.DatabaseTranslation != nil {
			sip.TranslationFrames = p.DatabaseTranslation.Frames
			for _, t := range p.DatabaseTranslation.TranslationTable {
				tt := &TranslationTable{base: b.base(), ID: t.ID, Name: t.Name, Params: b.params(&t.Params)}
				b.ctx.register("TranslationTable", t.ID, tt)
				sip.TranslationTables.Add(tt)
			}
		}
		b.ctx.register("SpectrumIdentificationProtocol", p.ID, sip)
		d.SpectrumIdentificationProtocols.Add(sip)
	}
	if p := pc.ProteinDetectionProtocol; p != nil {
		d.ProteinDetectionProtocol = &ProteinDetectionProtocol{
			base:           b.base(),
			ID:             p.ID,
			Name:           p.Name,
			Software:       lookup[*AnalysisSoftware](b.ctx, "AnalysisSoftware", p.AnalysisSoftwareRef),
			AnalysisParams: b.params(p.AnalysisParams),
			Threshold:      b.params(&p.Threshold),
		}
		b.ctx.register("ProteinDetectionProtocol", p.ID, d.ProteinDetectionProtocol)
	}
}

func (b *builder) inputs(d *IdentData, in *mzidentml.Inputs) {
	for _, s := range in.SearchDatabase {
		db := &SearchDatabase{
			base:                        b.base(),
			ID:                          s.ID,
			Name:                        s.Name,
			Location:                    s.Location,
			Version:                     s.Version,
			ReleaseDate:                 s.ReleaseDate,
			NumDatabaseSequences:        s.NumDatabaseSequences,
			NumResidues:                 s.NumResidues,
			ExternalFormatDocumentation: s.ExternalFormatDocumentation,
			FileFormat:                  b.choice(s.FileFormat),
			DatabaseName:                b.choice(&s.DatabaseName),
			Params:                      b.params(&s.Params),
		}
		b.ctx.register("SearchDatabase", s.ID, db)
		d.SearchDatabases.Add(db)
	}
	for _, s := range in.SpectraData {
		sd := &SpectraData{
			base:                        b.base(),
			ID:                          s.ID,
			Name:                        s.Name,
			Location:                    s.Location,
			ExternalFormatDocumentation: s.ExternalFormatDocumentation,
			FileFormat:                  b.choice(s.FileFormat),
			SpectrumIDFormat:            b.choice(&s.SpectrumIDFormat),
		}
		b.ctx.register("SpectraData", s.ID, sd)
		d.SpectraData.Add(sd)
	}
	for _, s := range in.SourceFile {
		d.SourceFiles.Add(&SourceFile{
			base:                        b.base(),
			ID:                          s.ID,
			Name:                        s.Name,
			Location:                    s.Location,
			ExternalFormatDocumentation: s.ExternalFormatDocumentation,
			FileFormat:                  b.choice(s.FileFormat),
			Params:                      b.params(&s.Params),
		})
	}
}

func (b *builder) sequences(d *IdentData, sc *mzidentml.SequenceCollection) {
	if sc == nil {
		return
	}
	for _, s := range sc.DBSequence {
		seq := &DBSequence{
			base:           b.base(),
			ID:             s.ID,
			Name:           s.Name,
			Accession:      s.Accession,
			Seq:            s.Seq,
			Length:         s.Length,
			SearchDatabase: lookup[*SearchDatabase](b.ctx, "SearchDatabase", s.SearchDatabaseRef),
			Params:         b.params(&s.Params),
		}
		b.ctx.register("DBSequence", s.ID, seq)
		d.DBSequences.Add(seq)
	}
	for _, p := range sc.Peptide {
		pep := &Peptide{
			base:          b.base(),
			ID:            p.ID,
			Name:          p.Name,
			Sequence:      p.PeptideSequence,
			Modifications: NewList[*Modification](b.ctx),
			Substitutions: NewList[*SubstitutionModification](b.ctx),
			Params:        b.params(&p.Params),
		}
		for _, m := range p.Modification {
			pep.Modifications.Add(&Modification{
				base:                  b.base(),
				Location:              m.Location,
				Residues:              m.Residues,
				AvgMassDelta:          m.AvgMassDelta,
				MonoisotopicMassDelta: m.MonoisotopicMassDelta,
				Params:                b.cvParams(m.CvParam),
			})
		}
		for _, m := range p.SubstitutionModification {
			pep.Substitutions.Add(&SubstitutionModification{
				base:                  b.base(),
				OriginalResidue:       m.OriginalResidue,
				ReplacementResidue:    m.ReplacementResidue,
				Location:              m.Location,
				AvgMassDelta:          m.AvgMassDelta,
				MonoisotopicMassDelta: m.MonoisotopicMassDelta,
			})
		}
		b.ctx.register("Peptide", p.ID, pep)
		d.Peptides.Add(pep)
	}
	for _, e := range sc.PeptideEvidence {
		ev := &PeptideEvidence{
			base:             b.base(),
			ID:               e.ID,
			Name:             e.Name,
			Peptide:          lookup[*Peptide](b.ctx, "Peptide", e.PeptideRef),
			DBSequence:       lookup[*DBSequence](b.ctx, "DBSequence", e.DBSequenceRef),
			Start:            e.Start,
			End:              e.End,
			Pre:              e.Pre,
			Post:             e.Post,
			Frame:            e.Frame,
			TranslationTable: lookup[*TranslationTable](b.ctx, "TranslationTable", e.TranslationTableRef),
			IsDecoy:          e.IsDecoy,
			Params:           b.params(&e.Params),
		}
		b.ctx.register("PeptideEvidence", e.ID, ev)
		d.PeptideEvidences.Add(ev)
	}
}

func (b *builder) analysisData(d *IdentData, ad *mzidentml.AnalysisData) error {
	for i := range ad.SpectrumIdentificationList {
		l, err := b.specIdentList(&ad.SpectrumIdentificationList[i])
		if err != nil {
			return err
		}
		d.SpectrumIdentificationLists.Add(l)
	}
	if pdl := ad.ProteinDetectionList; pdl != nil {
		d.ProteinDetectionList = b.proteinDetectionList(pdl)
	}
	return nil
}

func (b *builder) specIdentList(l *mzidentml.SpectrumIdentificationList) (*SpectrumIdentificationList, error) {
	sil := &SpectrumIdentificationList{
		base:                 b.base(),
		ID:                   l.ID,
		Name:                 l.Name,
		NumSequencesSearched: l.NumSequencesSearched,
		Measures:             NewList[*Measure](b.ctx),
		Results:              NewList[*SpectrumIdentificationResult](b.ctx),
		Params:               b.params(&l.Params),
	}
	if l.FragmentationTable != nil {
		for _, m := range l.FragmentationTable.Measure {
			ms := &Measure{base: b.base(), ID: m.ID, Name: m.Name, Params: b.cvParams(m.CvParam)}
			b.ctx.register("Measure", m.ID, ms)
			sil.Measures.Add(ms)
		}
	}
	for _, r := range l.SpectrumIdentificationResult {
		sir := &SpectrumIdentificationResult{
			base:        b.base(),
			ID:          r.ID,
			Name:        r.Name,
			SpectrumID:  r.SpectrumID,
			SpectraData: lookup[*SpectraData](b.ctx, "SpectraData", r.SpectraDataRef),
			Items:       NewList[*SpectrumIdentificationItem](b.ctx),
			Params:      b.params(&r.Params),
		}
		for _, it := range r.SpectrumIdentificationItem {
			sii, err := b.specIdentItem(&it)
			if err != nil {
				return nil, errors.Wrapf(err, "result %s", r.ID)
			}
			sir.Items.Add(sii)
		}
		sil.Results.Add(sir)
	}
	b.ctx.register("SpectrumIdentificationList", l.ID, sil)
	return sil, nil
}

func (b *builder) specIdentItem(it *mzidentml.SpectrumIdentificationItem) (*SpectrumIdentificationItem, error) {
	sii := &SpectrumIdentificationItem{
		base:                     b.base(),
		ID:                       it.ID,
		Name:                     it.Name,
		ChargeState:              it.ChargeState,
		ExperimentalMassToCharge: it.ExperimentalMassToCharge,
		CalculatedMassToCharge:   it.CalculatedMassToCharge,
		CalculatedPI:             it.CalculatedPI,
		Peptide:                  lookup[*Peptide](b.ctx, "Peptide", it.PeptideRef),
		Rank:                     it.Rank,
		PassThreshold:            it.PassThreshold,
		MassTable:                lookup[*MassTable](b.ctx, "MassTable", it.MassTableRef),
		Sample:                   lookup[*Sample](b.ctx, "Sample", it.SampleRef),
		PeptideEvidences:         NewList[*PeptideEvidence](b.ctx),
		Fragmentation:            NewList[*IonType](b.ctx),
		Params:                   b.params(&it.Params),
	}
	for _, r := range it.PeptideEvidenceRef {
		if e := lookup[*PeptideEvidence](b.ctx, "PeptideEvidence", r.PeptideEvidenceRef); e != nil {
			sii.PeptideEvidences.Add(e)
		}
	}
	if it.Fragmentation != nil {
		for _, t := range it.Fragmentation.IonType {
			ion := &IonType{
				base:           b.base(),
				Charge:         t.Charge,
				FragmentArrays: NewList[*FragmentArray](b.ctx),
				Params:         b.params(&t.Params),
			}
			idx, err := parseInts(t.Index)
			if err != nil {
				return nil, errors.Wrapf(err, "item %s: IonType index", it.ID)
			}
			ion.Index = idx
			for _, a := range t.FragmentArray {
				vals, err := parseFloats(a.Values)
				if err != nil {
					return nil, errors.Wrapf(err, "item %s: FragmentArray values", it.ID)
				}
				ion.FragmentArrays.Add(&FragmentArray{
					base:    b.base(),
					Values:  vals,
					Measure: lookup[*Measure](b.ctx, "Measure", a.MeasureRef),
				})
			}
			sii.Fragmentation.Add(ion)
		}
	}
	b.ctx.register("SpectrumIdentificationItem", it.ID, sii)
	return sii, nil
}

func (b *builder) proteinDetectionList(l *mzidentml.ProteinDetectionList) *ProteinDetectionList {
	pdl := &ProteinDetectionList{
		base:   b.base(),
		ID:     l.ID,
		Name:   l.Name,
		Groups: NewList[*ProteinAmbiguityGroup](b.ctx),
		Params: b.params(&l.Params),
	}
	for _, g := range l.ProteinAmbiguityGroup {
		pag := &ProteinAmbiguityGroup{
			base:       b.base(),
			ID:         g.ID,
			Name:       g.Name,
			Hypotheses: NewList[*ProteinDetectionHypothesis](b.ctx),
			Params:     b.params(&g.Params),
		}
		for _, h := range g.ProteinDetectionHypothesis {
			pdh := &ProteinDetectionHypothesis{
				base:              b.base(),
				ID:                h.ID,
				Name:              h.Name,
				DBSequence:        lookup[*DBSequence](b.ctx, "DBSequence", h.DBSequenceRef),
				PassThreshold:     h.PassThreshold,
				PeptideHypotheses: NewList[*PeptideHypothesis](b.ctx),
				Params:            b.params(&h.Params),
			}
			for _, ph := range h.PeptideHypothesis {
				hyp := &PeptideHypothesis{
					base:            b.base(),
					PeptideEvidence: lookup[*PeptideEvidence](b.ctx, "PeptideEvidence", ph.PeptideEvidenceRef),
					Items:           NewList[*SpectrumIdentificationItem](b.ctx),
				}
				for _, r := range ph.SpectrumIdentificationItemRef {
					if it := lookup[*SpectrumIdentificationItem](b.ctx, "SpectrumIdentificationItem", r.SpectrumIdentificationItemRef); it != nil {
						hyp.Items.Add(it)
					}
				}
				pdh.PeptideHypotheses.Add(hyp)
			}
			pag.Hypotheses.Add(pdh)
		}
		pdl.Groups.Add(pag)
	}
	b.ctx.register("ProteinDetectionList", l.ID, pdl)
	return pdl
}

func (b *builder) analysisCollection(d *IdentData, ac *mzidentml.AnalysisCollection) {
	for _, s := range ac.SpectrumIdentification {
		si := &SpectrumIdentification{
			base:            b.base(),
			ID:              s.ID,
			Name:            s.Name,
			ActivityDate:    s.ActivityDate,
			Protocol:        lookup[*SpectrumIdentificationProtocol](b.ctx, "SpectrumIdentificationProtocol", s.SpectrumIdentificationProtocolRef),
			List:            lookup[*SpectrumIdentificationList](b.ctx, "SpectrumIdentificationList", s.SpectrumIdentificationListRef),
			InputSpectra:    NewList[*SpectraData](b.ctx),
			SearchDatabases: NewList[*SearchDatabase](b.ctx),
		}
		for _, in := range s.InputSpectra {
			if sd := lookup[*SpectraData](b.ctx, "SpectraData", in.SpectraDataRef); sd != nil {
				si.InputSpectra.Add(sd)
			}
		}
		for _, r := range s.SearchDatabaseRef {
			if db := lookup[*SearchDatabase](b.ctx, "SearchDatabase", r.SearchDatabaseRef); db != nil {
				si.SearchDatabases.Add(db)
			}
		}
		d.SpectrumIdentifications.Add(si)
	}
	if p := ac.ProteinDetection; p != nil {
		pd := &ProteinDetection{
			base:         b.base(),
			ID:           p.ID,
			Name:         p.Name,
			ActivityDate: p.ActivityDate,
			Protocol:     lookup[*ProteinDetectionProtocol](b.ctx, "ProteinDetectionProtocol", p.ProteinDetectionProtocolRef),
			List:         lookup[*ProteinDetectionList](b.ctx, "ProteinDetectionList", p.ProteinDetectionListRef),
			Inputs:       NewList[*SpectrumIdentificationList](b.ctx),
		}
		for _, in := range p.InputSpectrumIdentifications {
			if l := lookup[*SpectrumIdentificationList](b.ctx, "SpectrumIdentificationList", in.SpectrumIdentificationListRef); l != nil {
				pd.Inputs.Add(l)
			}
		}
		d.ProteinDetection = pd
	}
}

// lookupQuiet is lookup without reporting a miss, for references that may
// point to one of several kinds
func lookupQuiet[T any](c *Context, kind, id string) T {
	var zero T
	if c == nil {
		return zero
	}
	t, _ := c.ids[kind][id].(T)
	return t
}

func parseInts(s string) ([]int, error) {
	f := strings.Fields(s)
	if len(f) == 0 {
		return nil, nil
	}
	out := make([]int, len(f))
	for i, x := range f {
		v, err := strconv.Atoi(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	f := strings.Fields(s)
	if len(f) == 0 {
		return nil, nil
	}
	out := make([]float64, len(f))
	for i, x := range f {
		v, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
