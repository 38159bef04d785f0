package identdata

// IdentData is the root of a document graph. The six canonical lists
// (DBSequences, Peptides, PeptideEvidences, SearchDatabases, SpectraData
// and SpectrumIdentificationProtocols) are recreated by Rebuild, the other
// lists hold the document's declarations as read.
type IdentData struct {
	base
	ID           string
	Name         string
	Version      string
	CreationDate string

	Software      List[*AnalysisSoftware]
	Provider      *Provider
	Persons       List[*Person]
	Organizations List[*Organization]
	Samples       List[*Sample]

	DBSequences      List[*DBSequence]
	Peptides         List[*Peptide]
	PeptideEvidences List[*PeptideEvidence]

	SpectrumIdentifications List[*SpectrumIdentification]
	ProteinDetection        *ProteinDetection

	SpectrumIdentificationProtocols List[*SpectrumIdentificationProtocol]
	ProteinDetectionProtocol        *ProteinDetectionProtocol

	SourceFiles     List[*SourceFile]
	SearchDatabases List[*SearchDatabase]
	SpectraData     List[*SpectraData]

	SpectrumIdentificationLists List[*SpectrumIdentificationList]
	ProteinDetectionList        *ProteinDetectionList

	BibliographicReferences List[*BibliographicReference]
}

// New creates an empty document attached to ctx
func New(ctx *Context) *IdentData {
	d := &IdentData{Version: "1.1.0"}
	d.ctx = ctx
	d.setListContexts(ctx)
	return d
}

// SetContext attaches the document and everything reachable from it to ctx
func (d *IdentData) SetContext(ctx *Context) {
	if d == nil || d.ctx == ctx {
		return
	}
	d.ctx = ctx
	d.Provider.SetContext(ctx)
	d.ProteinDetection.SetContext(ctx)
	d.ProteinDetectionProtocol.SetContext(ctx)
	d.ProteinDetectionList.SetContext(ctx)
	d.setListContexts(ctx)
}

func (d *IdentData) setListContexts(ctx *Context) {
	d.Software.SetContext(ctx)
	d.Persons.SetContext(ctx)
	d.Organizations.SetContext(ctx)
	d.Samples.SetContext(ctx)
	d.DBSequences.SetContext(ctx)
	d.Peptides.SetContext(ctx)
	d.PeptideEvidences.SetContext(ctx)
	d.SpectrumIdentifications.SetContext(ctx)
	d.SpectrumIdentificationProtocols.SetContext(ctx)
	d.SourceFiles.SetContext(ctx)
	d.SearchDatabases.SetContext(ctx)
	d.SpectraData.SetContext(ctx)
	d.SpectrumIdentificationLists.SetContext(ctx)
	d.BibliographicReferences.SetContext(ctx)
}
