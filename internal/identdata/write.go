package identdata

import (
	"io"
	"strconv"
	"strings"

	"github.com/524D/mzidtool/internal/cv"
	"github.com/524D/mzidtool/internal/mzidentml"
)

// Write rebuilds the canonical lists and writes the document as mzIdentML
func (d *IdentData) Write(w io.Writer) error {
	return mzidentml.Encode(w, d.Document())
}

// Document rebuilds the canonical lists and converts the graph back into
// the schema types. References to an entity that is value-equal to a
// canonical one are written with the id of the canonical entity.
// Entities without id get a generated one.
func (d *IdentData) Document() *mzidentml.Document {
	tr := d.Context().Translator()
	if tr == nil {
		tr = cv.NewTranslator(nil)
	}
	w := &writer{
		tr:    tr,
		canon: d.rebuild(),
		ids:   make(map[any]string),
		count: make(map[string]int),
	}
	doc := &mzidentml.Document{
		ID:           d.ID,
		Name:         d.Name,
		Version:      d.Version,
		CreationDate: d.CreationDate,
	}
	w.audit(doc, d)
	if d.Software.Len() > 0 {
		doc.AnalysisSoftwareList = &mzidentml.AnalysisSoftwareList{}
		for _, s := range d.Software.Items() {
			doc.AnalysisSoftwareList.AnalysisSoftware = append(doc.AnalysisSoftwareList.AnalysisSoftware, mzidentml.AnalysisSoftware{
				ID:             w.id(s, s.ID, "AS"),
				Name:           s.Name,
				Version:        s.Version,
				URI:            s.URI,
				Customizations: s.Customizations,
				ContactRole:    w.contactRole(s.ContactRole),
				SoftwareName:   w.choice(s.SoftwareName),
			})
		}
	}
	if p := d.Provider; p != nil {
		doc.Provider = &mzidentml.Provider{
			ID:          w.id(p, p.ID, "PROVIDER"),
			Name:        p.Name,
			ContactRole: w.contactRole(p.ContactRole),
		}
		if p.Software != nil {
			doc.Provider.AnalysisSoftwareRef = w.id(p.Software, p.Software.ID, "AS")
		}
	}
	w.samples(doc, d)
	w.sequences(doc, d)
	w.analysisCollection(doc, d)
	w.protocols(doc, d)
	w.inputs(doc, d)
	w.analysisData(doc, d)
	for _, r := range d.BibliographicReferences.Items() {
		doc.BibliographicReference = append(doc.BibliographicReference, mzidentml.BibliographicReference{
			ID: w.id(r, r.ID, "BIB"), Name: r.Name, Authors: r.Authors, DOI: r.DOI,
			Editor: r.Editor, Issue: r.Issue, Pages: r.Pages, Publication: r.Publication,
			Publisher: r.Publisher, Title: r.Title, Volume: r.Volume, Year: r.Year,
		})
	}
	// Last, converting parameters may have declared more vocabularies
	for _, c := range w.tr.CVs() {
		doc.CvList.Cv = append(doc.CvList.Cv, mzidentml.Cv{ID: c.ID, FullName: c.FullName, Version: c.Version, URI: c.URI})
	}
	return doc
}

type writer struct {
	tr    *cv.Translator
	canon *canonical
	ids   map[any]string
	count map[string]int
}

// id returns the id to write for entity e, generating prefix_n if it has none
func (w *writer) id(e any, id, prefix string) string {
	if id != "" {
		return id
	}
	if id, ok := w.ids[e]; ok {
		return id
	}
	w.count[prefix]++
	id = prefix + "_" + strconv.Itoa(w.count[prefix])
	w.ids[e] = id
	return id
}

// canonicalRef returns the id of the canonical entity value-equal to e
func canonicalRef[T entity[T]](idx *index[T], e T, id func(T) string) string {
	var zero T
	if e == zero {
		return ""
	}
	if c, ok := idx.find(e); ok {
		return id(c)
	}
	return id(e)
}

func (w *writer) evidenceRef(e *PeptideEvidence) string {
	return canonicalRef(w.canon.evidence, e, func(e *PeptideEvidence) string { return e.ID })
}

func (w *writer) peptideRef(p *Peptide) string {
	return canonicalRef(w.canon.peptides, p, func(p *Peptide) string { return p.ID })
}

func (w *writer) sequenceRef(s *DBSequence) string {
	return canonicalRef(w.canon.sequences, s, func(s *DBSequence) string { return s.ID })
}

func (w *writer) protocolRef(p *SpectrumIdentificationProtocol) string {
	return canonicalRef(w.canon.protocols, p, func(p *SpectrumIdentificationProtocol) string { return p.ID })
}

func (w *writer) databaseRef(s *SearchDatabase) string {
	return canonicalRef(w.canon.databases, s, func(s *SearchDatabase) string { return s.ID })
}

func (w *writer) spectraRef(s *SpectraData) string {
	return canonicalRef(w.canon.spectra, s, func(s *SpectraData) string { return s.ID })
}

// term returns the cvRef and accession of a term, declaring its
// vocabulary if the document didn't
func (w *writer) term(id cv.TermID) (string, string, bool) {
	if ref, acc, ok := w.tr.Ref(id); ok {
		return ref, acc, true
	}
	if w.tr.Declare(id) {
		return w.tr.Ref(id)
	}
	return "", "", false
}

func (w *writer) unit(u cv.TermID) (string, string) {
	if u == "" {
		return "", ""
	}
	ref, acc, _ := w.term(u)
	return ref, acc
}

// param converts p. A cvParam whose term can't be referenced is written
// as a userParam, so its name and value are kept.
func (w *writer) param(p cv.Param) (*mzidentml.CVParam, *mzidentml.UserParam) {
	switch p := p.(type) {
	case cv.CVParam:
		uref, uacc := w.unit(p.Unit)
		if ref, acc, ok := w.term(p.Term); ok {
			return &mzidentml.CVParam{CvRef: ref, Accession: acc, Name: p.Name, Value: p.Value,
				UnitCvRef: uref, UnitAccession: uacc}, nil
		}
		return nil, &mzidentml.UserParam{Name: p.Name, Value: p.Value, UnitCvRef: uref, UnitAccession: uacc}
	case cv.UserParam:
		uref, uacc := w.unit(p.Unit)
		return nil, &mzidentml.UserParam{Name: p.Name, Type: p.Type, Value: p.Value, UnitCvRef: uref, UnitAccession: uacc}
	}
	return nil, nil
}

func (w *writer) params(l cv.ParamList) mzidentml.Params {
	var out mzidentml.Params
	for _, p := range l {
		c, u := w.param(p)
		if c != nil {
			out.CvParam = append(out.CvParam, *c)
		}
		if u != nil {
			out.UserParam = append(out.UserParam, *u)
		}
	}
	return out
}

func (w *writer) optParams(l cv.ParamList) *mzidentml.Params {
	if len(l) == 0 {
		return nil
	}
	p := w.params(l)
	return &p
}

// cvParams is used where the schema allows cvParams only
func (w *writer) cvParams(l cv.ParamList) []mzidentml.CVParam {
	return w.params(l).CvParam
}

func (w *writer) choice(p cv.Param) *mzidentml.ParamChoice {
	if p == nil {
		return nil
	}
	c, u := w.param(p)
	return &mzidentml.ParamChoice{CvParam: c, UserParam: u}
}

func (w *writer) choiceValue(p cv.Param) mzidentml.ParamChoice {
	if c := w.choice(p); c != nil {
		return *c
	}
	return mzidentml.ParamChoice{}
}

func (w *writer) contactRole(r *ContactRole) *mzidentml.ContactRole {
	if r == nil {
		return nil
	}
	cr := &mzidentml.ContactRole{Role: w.choiceValue(r.Role)}
	switch c := r.Contact.(type) {
	case *Person:
		if c != nil {
			cr.ContactRef = w.id(c, c.ID, "PERSON")
		}
	case *Organization:
		if c != nil {
			cr.ContactRef = w.id(c, c.ID, "ORG")
		}
	}
	return cr
}

func (w *writer) audit(doc *mzidentml.Document, d *IdentData) {
	if d.Persons.Len() == 0 && d.Organizations.Len() == 0 {
		return
	}
	ac := &mzidentml.AuditCollection{}
	for _, p := range d.Persons.Items() {
		person := mzidentml.Person{
			ID:          w.id(p, p.ID, "PERSON"),
			Name:        p.Name,
			LastName:    p.LastName,
			FirstName:   p.FirstName,
			MidInitials: p.MidInitials,
			Params:      w.params(p.Params),
		}
		for _, o := range p.Affiliations.Items() {
			person.Affiliation = append(person.Affiliation, mzidentml.Affiliation{OrganizationRef: w.id(o, o.ID, "ORG")})
		}
		ac.Person = append(ac.Person, person)
	}
	for _, o := range d.Organizations.Items() {
		org := mzidentml.Organization{ID: w.id(o, o.ID, "ORG"), Name: o.Name, Params: w.params(o.Params)}
		if o.Parent != nil {
			org.Parent = &mzidentml.Affiliation{OrganizationRef: w.id(o.Parent, o.Parent.ID, "ORG")}
		}
		ac.Organization = append(ac.Organization, org)
	}
	doc.AuditCollection = ac
}

func (w *writer) samples(doc *mzidentml.Document, d *IdentData) {
	if d.Samples.Len() == 0 {
		return
	}
	sc := &mzidentml.AnalysisSampleCollection{}
	for _, s := range d.Samples.Items() {
		sample := mzidentml.Sample{ID: w.id(s, s.ID, "SAMPLE"), Name: s.Name, Params: w.params(s.Params)}
		for _, r := range s.ContactRoles.Items() {
			if cr := w.contactRole(r); cr != nil {
				sample.ContactRole = append(sample.ContactRole, *cr)
			}
		}
		for _, sub := range s.SubSamples.Items() {
			sample.SubSample = append(sample.SubSample, mzidentml.SubSample{SampleRef: w.id(sub, sub.ID, "SAMPLE")})
		}
		sc.Sample = append(sc.Sample, sample)
	}
	doc.AnalysisSampleCollection = sc
}

func (w *writer) sequences(doc *mzidentml.Document, d *IdentData) {
	sc := &mzidentml.SequenceCollection{}
	for _, s := range d.DBSequences.Items() {
		sc.DBSequence = append(sc.DBSequence, mzidentml.DBSequence{
			ID:                s.ID,
			Name:              s.Name,
			Length:            s.Length,
			Accession:         s.Accession,
			SearchDatabaseRef: w.databaseRef(s.SearchDatabase),
			Seq:               s.Seq,
			Params:            w.params(s.Params),
		})
	}
	for _, p := range d.Peptides.Items() {
		pep := mzidentml.Peptide{ID: p.ID, Name: p.Name, PeptideSequence: p.Sequence, Params: w.params(p.Params)}
		for _, m := range p.Modifications.Items() {
			pep.Modification = append(pep.Modification, mzidentml.Modification{
				Location:              m.Location,
				Residues:              m.Residues,
				AvgMassDelta:          m.AvgMassDelta,
				MonoisotopicMassDelta: m.MonoisotopicMassDelta,
				CvParam:               w.cvParams(m.Params),
			})
		}
		for _, m := range p.Substitutions.Items() {
			pep.SubstitutionModification = append(pep.SubstitutionModification, mzidentml.SubstitutionModification{
				OriginalResidue:       m.OriginalResidue,
				ReplacementResidue:    m.ReplacementResidue,
				Location:              m.Location,
				AvgMassDelta:          m.AvgMassDelta,
				MonoisotopicMassDelta: m.MonoisotopicMassDelta,
			})
		}
		sc.Peptide = append(sc.Peptide, pep)
	}
	for _, e := range d.PeptideEvidences.Items() {
		ev := mzidentml.PeptideEvidence{
			ID:            e.ID,
			Name:          e.Name,
			DBSequenceRef: w.sequenceRef(e.DBSequence),
			PeptideRef:    w.peptideRef(e.Peptide),
			Start:         e.Start,
			End:           e.End,
			Pre:           e.Pre,
			Post:          e.Post,
			Frame:         e.Frame,
			IsDecoy:       e.IsDecoy,
			Params:        w.params(e.Params),
		}
		if t := e.TranslationTable; t != nil {
			ev.TranslationTableRef = w.id(t, t.ID, "TT")
		}
		sc.PeptideEvidence = append(sc.PeptideEvidence, ev)
	}
	doc.SequenceCollection = sc
}

func (w *writer) analysisCollection(doc *mzidentml.Document, d *IdentData) {
	for _, si := range d.SpectrumIdentifications.Items() {
		s := mzidentml.SpectrumIdentification{
			ID:                                w.id(si, si.ID, "SpecIdent"),
			Name:                              si.Name,
			ActivityDate:                      si.ActivityDate,
			SpectrumIdentificationProtocolRef: w.protocolRef(si.Protocol),
		}
		if si.List != nil {
			s.SpectrumIdentificationListRef = w.id(si.List, si.List.ID, "SI_LIST")
		}
		for _, sd := range si.InputSpectra.Items() {
			s.InputSpectra = append(s.InputSpectra, mzidentml.InputSpectra{SpectraDataRef: w.spectraRef(sd)})
		}
		for _, db := range si.SearchDatabases.Items() {
			s.SearchDatabaseRef = append(s.SearchDatabaseRef, mzidentml.SearchDatabaseRef{SearchDatabaseRef: w.databaseRef(db)})
		}
		doc.AnalysisCollection.SpectrumIdentification = append(doc.AnalysisCollection.SpectrumIdentification, s)
	}
	if pd := d.ProteinDetection; pd != nil {
		p := &mzidentml.ProteinDetection{
			ID:           w.id(pd, pd.ID, "PD"),
			Name:         pd.Name,
			ActivityDate: pd.ActivityDate,
		}
		if pd.Protocol != nil {
			p.ProteinDetectionProtocolRef = w.id(pd.Protocol, pd.Protocol.ID, "PDP")
		}
		if pd.List != nil {
			p.ProteinDetectionListRef = w.id(pd.List, pd.List.ID, "PDL")
		}
		for _, l := range pd.Inputs.Items() {
			p.InputSpectrumIdentifications = append(p.InputSpectrumIdentifications,
				mzidentml.InputSpectrumIdentifications{SpectrumIdentificationListRef: w.id(l, l.ID, "SI_LIST")})
		}
		doc.AnalysisCollection.ProteinDetection = p
	}
}

func (w *writer) protocols(doc *mzidentml.Document, d *IdentData) {
	pc := &doc.AnalysisProtocolCollection
	for _, p := range d.SpectrumIdentificationProtocols.Items() {
		sip := mzidentml.SpectrumIdentificationProtocol{
			ID:                     p.ID,
			Name:                   p.Name,
			SearchType:             w.choiceValue(p.SearchType),
			AdditionalSearchParams: w.optParams(p.AdditionalSearchParams),
			FragmentTolerance:      w.optParams(p.FragmentTolerance),
			ParentTolerance:        w.optParams(p.ParentTolerance),
			Threshold:              w.params(p.Threshold),
		}
		if p.Software != nil {
			sip.AnalysisSoftwareRef = w.id(p.Software, p.Software.ID, "AS")
		}
		if p.Modifications.Len() > 0 {
			sip.ModificationParams = &mzidentml.ModificationParams{}
			for _, m := range p.Modifications.Items() {
				sm := mzidentml.SearchModification{
					FixedMod:  m.FixedMod,
					MassDelta: m.MassDelta,
					Residues:  m.Residues,
					CvParam:   w.cvParams(m.Params),
				}
				if len(m.SpecificityRules) > 0 {
					sm.SpecificityRules = []mzidentml.SpecificityRules{{CvParam: w.cvParams(m.SpecificityRules)}}
				}
				sip.ModificationParams.SearchModification = append(sip.ModificationParams.SearchModification, sm)
			}
		}
		if p.Enzymes.Len() > 0 || p.EnzymesIndependent != nil {
			sip.Enzymes = &mzidentml.Enzymes{Independent: p.EnzymesIndependent}
			for _, e := range p.Enzymes.Items() {
				sip.Enzymes.Enzyme = append(sip.Enzymes.Enzyme, mzidentml.Enzyme{
					ID:              w.id(e, e.ID, "Enz"),
					Name:            e.Name,
					CTermGain:       e.CTermGain,
					NTermGain:       e.NTermGain,
					MinDistance:     e.MinDistance,
					MissedCleavages: e.MissedCleavages,
					SemiSpecific:    e.SemiSpecific,
					SiteRegexp:      e.SiteRegexp,
					EnzymeName:      w.optParams(e.EnzymeName),
				})
			}
		}
		for _, m := range p.MassTables.Items() {
			mt := mzidentml.MassTable{ID: w.id(m, m.ID, "MT"), Name: m.Name, MsLevel: m.MsLevel, Params: w.params(m.Params)}
			for _, r := range m.Residues {
				mt.Residue = append(mt.Residue, mzidentml.Residue{Code: r.Code, Mass: r.Mass})
			}
			sip.MassTable = append(sip.MassTable, mt)
		}
		if p.TranslationFrames != "" || p.TranslationTables.Len() > 0 {
			sip.DatabaseTranslation = &mzidentml.DatabaseTranslation{Frames: p.TranslationFrames}
			for _, t := range p.TranslationTables.Items() {
				sip.DatabaseTranslation.TranslationTable = append(sip.DatabaseTranslation.TranslationTable,
					mzidentml.TranslationTable{ID: w.id(t, t.ID, "TT"), Name: t.Name, Params: w.params(t.Params)})
			}
		}
		pc.SpectrumIdentificationProtocol = append(pc.SpectrumIdentificationProtocol, sip)
	}
	if p := d.ProteinDetectionProtocol; p != nil {
		pdp := &mzidentml.ProteinDetectionProtocol{
			ID:             w.id(p, p.ID, "PDP"),
			Name:           p.Name,
			AnalysisParams: w.optParams(p.AnalysisParams),
			Threshold:      w.params(p.Threshold),
		}
		if p.Software != nil {
			pdp.AnalysisSoftwareRef = w.id(p.Software, p.Software.ID, "AS")
		}
		pc.ProteinDetectionProtocol = pdp
	}
}

func (w *writer) inputs(doc *mzidentml.Document, d *IdentData) {
	in := &doc.DataCollection.Inputs
	for _, s := range d.SourceFiles.Items() {
		in.SourceFile = append(in.SourceFile, mzidentml.SourceFile{
			ID:                          w.id(s, s.ID, "SF"),
			Name:                        s.Name,
			Location:                    s.Location,
			ExternalFormatDocumentation: s.ExternalFormatDocumentation,
			FileFormat:                  w.choice(s.FileFormat),
			Params:                      w.params(s.Params),
		})
	}
	for _, s := range d.SearchDatabases.Items() {
		in.SearchDatabase = append(in.SearchDatabase, mzidentml.SearchDatabase{
			ID:                          s.ID,
			Name:                        s.Name,
			Location:                    s.Location,
			Version:                     s.Version,
			ReleaseDate:                 s.ReleaseDate,
			NumDatabaseSequences:        s.NumDatabaseSequences,
			NumResidues:                 s.NumResidues,
			ExternalFormatDocumentation: s.ExternalFormatDocumentation,
			FileFormat:                  w.choice(s.FileFormat),
			DatabaseName:                w.choiceValue(s.DatabaseName),
			Params:                      w.params(s.Params),
		})
	}
	for _, s := range d.SpectraData.Items() {
		in.SpectraData = append(in.SpectraData, mzidentml.SpectraData{
			ID:                          s.ID,
			Name:                        s.Name,
			Location:                    s.Location,
			ExternalFormatDocumentation: s.ExternalFormatDocumentation,
			FileFormat:                  w.choice(s.FileFormat),
			SpectrumIDFormat:            w.choiceValue(s.SpectrumIDFormat),
		})
	}
}

func (w *writer) analysisData(doc *mzidentml.Document, d *IdentData) {
	ad := &doc.DataCollection.AnalysisData
	for _, l := range d.lists() {
		sil := mzidentml.SpectrumIdentificationList{
			ID:                   w.id(l, l.ID, "SI_LIST"),
			Name:                 l.Name,
			NumSequencesSearched: l.NumSequencesSearched,
			Params:               w.params(l.Params),
		}
		if l.Measures.Len() > 0 {
			sil.FragmentationTable = &mzidentml.FragmentationTable{}
			for _, m := range l.Measures.Items() {
				sil.FragmentationTable.Measure = append(sil.FragmentationTable.Measure,
					mzidentml.Measure{ID: w.id(m, m.ID, "Measure"), Name: m.Name, CvParam: w.cvParams(m.Params)})
			}
		}
		for _, r := range l.Results.Items() {
			sil.SpectrumIdentificationResult = append(sil.SpectrumIdentificationResult, w.result(r))
		}
		ad.SpectrumIdentificationList = append(ad.SpectrumIdentificationList, sil)
	}
	if l := d.ProteinDetectionList; l != nil {
		pdl := &mzidentml.ProteinDetectionList{ID: w.id(l, l.ID, "PDL"), Name: l.Name, Params: w.params(l.Params)}
		for _, g := range l.Groups.Items() {
			pag := mzidentml.ProteinAmbiguityGroup{ID: w.id(g, g.ID, "PAG"), Name: g.Name, Params: w.params(g.Params)}
			for _, h := range g.Hypotheses.Items() {
				pdh := mzidentml.ProteinDetectionHypothesis{
					ID:            w.id(h, h.ID, "PDH"),
					Name:          h.Name,
					DBSequenceRef: w.sequenceRef(h.DBSequence),
					PassThreshold: h.PassThreshold,
					Params:        w.params(h.Params),
				}
				for _, ph := range h.PeptideHypotheses.Items() {
					hyp := mzidentml.PeptideHypothesis{PeptideEvidenceRef: w.evidenceRef(ph.PeptideEvidence)}
					for _, it := range ph.Items.Items() {
						hyp.SpectrumIdentificationItemRef = append(hyp.SpectrumIdentificationItemRef,
							mzidentml.SpectrumIdentificationItemRef{SpectrumIdentificationItemRef: w.id(it, it.ID, "SII")})
					}
					pdh.PeptideHypothesis = append(pdh.PeptideHypothesis, hyp)
				}
				pag.ProteinDetectionHypothesis = append(pag.ProteinDetectionHypothesis, pdh)
			}
			pdl.ProteinAmbiguityGroup = append(pdl.ProteinAmbiguityGroup, pag)
		}
		ad.ProteinDetectionList = pdl
	}
}

func (w *writer) result(r *SpectrumIdentificationResult) mzidentml.SpectrumIdentificationResult {
	sir := mzidentml.SpectrumIdentificationResult{
		ID:             w.id(r, r.ID, "SIR"),
		Name:           r.Name,
		SpectrumID:     r.SpectrumID,
		SpectraDataRef: w.spectraRef(r.SpectraData),
		Params:         w.params(r.Params),
	}
	for _, it := range r.Items.Items() {
		sii := mzidentml.SpectrumIdentificationItem{
			ID:                       w.id(it, it.ID, "SII"),
			Name:                     it.Name,
			ChargeState:              it.ChargeState,
			ExperimentalMassToCharge: it.ExperimentalMassToCharge,
			CalculatedMassToCharge:   it.CalculatedMassToCharge,
			CalculatedPI:             it.CalculatedPI,
			PeptideRef:               w.peptideRef(it.Peptide),
			Rank:                     it.Rank,
			PassThreshold:            it.PassThreshold,
			Params:                   w.params(it.Params),
		}
		if it.MassTable != nil {
			sii.MassTableRef = w.id(it.MassTable, it.MassTable.ID, "MT")
		}
		if it.Sample != nil {
			sii.SampleRef = w.id(it.Sample, it.Sample.ID, "SAMPLE")
		}
		for _, e := range it.PeptideEvidences.Items() {
			sii.PeptideEvidenceRef = append(sii.PeptideEvidenceRef, mzidentml.PeptideEvidenceRef{PeptideEvidenceRef: w.evidenceRef(e)})
		}
		if it.Fragmentation.Len() > 0 {
			sii.Fragmentation = &mzidentml.Fragmentation{}
			for _, t := range it.Fragmentation.Items() {
				ion := mzidentml.IonType{Index: joinInts(t.Index), Charge: t.Charge, Params: w.params(t.Params)}
				for _, a := range t.FragmentArrays.Items() {
					fa := mzidentml.FragmentArray{Values: joinFloats(a.Values)}
					if a.Measure != nil {
						fa.MeasureRef = w.id(a.Measure, a.Measure.ID, "Measure")
					}
					ion.FragmentArray = append(ion.FragmentArray, fa)
				}
				sii.Fragmentation.IonType = append(sii.Fragmentation.IonType, ion)
			}
		}
		sir.SpectrumIdentificationItem = append(sir.SpectrumIdentificationItem, sii)
	}
	return sir
}

func joinInts(v []int) string {
	s := make([]string, len(v))
	for i, x := range v {
		s[i] = strconv.Itoa(x)
	}
	return strings.Join(s, " ")
}

func joinFloats(v []float64) string {
	s := make([]string, len(v))
	for i, x := range v {
		s[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(s, " ")
}
