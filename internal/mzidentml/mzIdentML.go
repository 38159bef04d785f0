package mzidentml

import (
	"encoding/xml"

	"github.com/pkg/errors"
)

// Types mirroring the mzIdentML 1.1 schema. They carry no cross reference
// logic, ids are plain strings here.

// Namespace of mzIdentML 1.1
const Namespace = "http://psidev.info/psi/pi/mzIdentML/1.1"

// SchemaLocation is written on the root element
const SchemaLocation = "http://psidev.info/psi/pi/mzIdentML/1.1 ../../schema/mzIdentML1.1.0.xsd"

// Document is the complete content of an mzIdentML file
type Document struct {
	XMLName                    xml.Name                   `xml:"MzIdentML"`
	ID                         string                     `xml:"id,attr,omitempty"`
	Name                       string                     `xml:"name,attr,omitempty"`
	Version                    string                     `xml:"version,attr"`
	CreationDate               string                     `xml:"creationDate,attr,omitempty"`
	CvList                     CvList                     `xml:"cvList"`
	AnalysisSoftwareList       *AnalysisSoftwareList      `xml:"AnalysisSoftwareList"`
	Provider                   *Provider                  `xml:"Provider"`
	AuditCollection            *AuditCollection           `xml:"AuditCollection"`
	AnalysisSampleCollection   *AnalysisSampleCollection  `xml:"AnalysisSampleCollection"`
	SequenceCollection         *SequenceCollection        `xml:"SequenceCollection"`
	AnalysisCollection         AnalysisCollection         `xml:"AnalysisCollection"`
	AnalysisProtocolCollection AnalysisProtocolCollection `xml:"AnalysisProtocolCollection"`
	DataCollection             DataCollection             `xml:"DataCollection"`
	BibliographicReference     []BibliographicReference   `xml:"BibliographicReference"`
}

// We define a separate struct for writing XML because it is not possible
// to write namespace info otherwise
type documentWrite struct {
	XMLName        xml.Name `xml:"MzIdentML"`
	Xmlns          string   `xml:"xmlns,attr"`
	Xsi            string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr"`
	*Document
}

type CvList struct {
	Cv []Cv `xml:"cv"`
}

type Cv struct {
	ID       string `xml:"id,attr"`
	FullName string `xml:"fullName,attr"`
	Version  string `xml:"version,attr,omitempty"`
	URI      string `xml:"uri,attr"`
}

// CVParam contains values and attributes of a Controlled Vocabulary term
type CVParam struct {
	CvRef         string `xml:"cvRef,attr"`
	Accession     string `xml:"accession,attr"`
	Name          string `xml:"name,attr"`
	Value         string `xml:"value,attr,omitempty"`
	UnitCvRef     string `xml:"unitCvRef,attr,omitempty"`
	UnitAccession string `xml:"unitAccession,attr,omitempty"`
	UnitName      string `xml:"unitName,attr,omitempty"`
}

type UserParam struct {
	Name          string `xml:"name,attr"`
	Type          string `xml:"type,attr,omitempty"`
	Value         string `xml:"value,attr,omitempty"`
	UnitCvRef     string `xml:"unitCvRef,attr,omitempty"`
	UnitAccession string `xml:"unitAccession,attr,omitempty"`
	UnitName      string `xml:"unitName,attr,omitempty"`
}

// Params holds the cvParam/userParam pairs that most elements carry.
// The schema allows them to be interleaved, the order between the two
// kinds is not preserved.
type Params struct {
	CvParam   []CVParam   `xml:"cvParam"`
	UserParam []UserParam `xml:"userParam"`
}

// ParamChoice is an element holding exactly one cvParam or userParam
type ParamChoice struct {
	CvParam   *CVParam   `xml:"cvParam"`
	UserParam *UserParam `xml:"userParam"`
}

type AnalysisSoftwareList struct {
	AnalysisSoftware []AnalysisSoftware `xml:"AnalysisSoftware"`
}

type AnalysisSoftware struct {
	ID             string       `xml:"id,attr"`
	Name           string       `xml:"name,attr,omitempty"`
	Version        string       `xml:"version,attr,omitempty"`
	URI            string       `xml:"uri,attr,omitempty"`
	ContactRole    *ContactRole `xml:"ContactRole"`
	SoftwareName   *ParamChoice `xml:"SoftwareName"`
	Customizations string       `xml:"Customizations,omitempty"`
}

type ContactRole struct {
	ContactRef string      `xml:"contact_ref,attr"`
	Role       ParamChoice `xml:"Role"`
}

type Provider struct {
	ID                  string       `xml:"id,attr"`
	Name                string       `xml:"name,attr,omitempty"`
	AnalysisSoftwareRef string       `xml:"analysisSoftware_ref,attr,omitempty"`
	ContactRole         *ContactRole `xml:"ContactRole"`
}

type AuditCollection struct {
	Person       []Person       `xml:"Person"`
	Organization []Organization `xml:"Organization"`
}

type Person struct {
	ID          string `xml:"id,attr"`
	Name        string `xml:"name,attr,omitempty"`
	LastName    string `xml:"lastName,attr,omitempty"`
	FirstName   string `xml:"firstName,attr,omitempty"`
	MidInitials string `xml:"midInitials,attr,omitempty"`
	Params
	Affiliation []Affiliation `xml:"Affiliation"`
}

type Affiliation struct {
	OrganizationRef string `xml:"organization_ref,attr"`
}

type Organization struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr,omitempty"`
	Params
	Parent *Affiliation `xml:"Parent"`
}

type AnalysisSampleCollection struct {
	Sample []Sample `xml:"Sample"`
}

type Sample struct {
	ID          string        `xml:"id,attr"`
	Name        string        `xml:"name,attr,omitempty"`
	ContactRole []ContactRole `xml:"ContactRole"`
	SubSample   []SubSample   `xml:"SubSample"`
	Params
}

type SubSample struct {
	SampleRef string `xml:"sample_ref,attr"`
}

type SequenceCollection struct {
	DBSequence      []DBSequence      `xml:"DBSequence"`
	Peptide         []Peptide         `xml:"Peptide"`
	PeptideEvidence []PeptideEvidence `xml:"PeptideEvidence"`
}

type DBSequence struct {
	ID                string `xml:"id,attr"`
	Name              string `xml:"name,attr,omitempty"`
	Length            *int   `xml:"length,attr"`
	Accession         string `xml:"accession,attr"`
	SearchDatabaseRef string `xml:"searchDatabase_ref,attr"`
	Seq               string `xml:"Seq,omitempty"`
	Params
}

type Peptide struct {
	ID                       string                     `xml:"id,attr"`
	Name                     string                     `xml:"name,attr,omitempty"`
	PeptideSequence          string                     `xml:"PeptideSequence"`
	Modification             []Modification             `xml:"Modification"`
	SubstitutionModification []SubstitutionModification `xml:"SubstitutionModification"`
	Params
}

type Modification struct {
	Location              *int      `xml:"location,attr"`
	Residues              string    `xml:"residues,attr,omitempty"`
	AvgMassDelta          *float64  `xml:"avgMassDelta,attr"`
	MonoisotopicMassDelta *float64  `xml:"monoisotopicMassDelta,attr"`
	CvParam               []CVParam `xml:"cvParam"`
}

type SubstitutionModification struct {
	OriginalResidue       string   `xml:"originalResidue,attr"`
	ReplacementResidue    string   `xml:"replacementResidue,attr"`
	Location              *int     `xml:"location,attr"`
	AvgMassDelta          *float64 `xml:"avgMassDelta,attr"`
	MonoisotopicMassDelta *float64 `xml:"monoisotopicMassDelta,attr"`
}

type PeptideEvidence struct {
	ID                  string `xml:"id,attr"`
	Name                string `xml:"name,attr,omitempty"`
	DBSequenceRef       string `xml:"dBSequence_ref,attr"`
	PeptideRef          string `xml:"peptide_ref,attr"`
	Start               *int   `xml:"start,attr"`
	End                 *int   `xml:"end,attr"`
	Pre                 string `xml:"pre,attr,omitempty"`
	Post                string `xml:"post,attr,omitempty"`
	TranslationTableRef string `xml:"translationTable_ref,attr,omitempty"`
	Frame               *int   `xml:"frame,attr"`
	IsDecoy             bool   `xml:"isDecoy,attr"`
	Params
}

type AnalysisCollection struct {
	SpectrumIdentification []SpectrumIdentification `xml:"SpectrumIdentification"`
	ProteinDetection       *ProteinDetection        `xml:"ProteinDetection"`
}

type SpectrumIdentification struct {
	ID                                string              `xml:"id,attr"`
	Name                              string              `xml:"name,attr,omitempty"`
	SpectrumIdentificationProtocolRef string              `xml:"spectrumIdentificationProtocol_ref,attr"`
	SpectrumIdentificationListRef     string              `xml:"spectrumIdentificationList_ref,attr"`
	ActivityDate                      string              `xml:"activityDate,attr,omitempty"`
	InputSpectra                      []InputSpectra      `xml:"InputSpectra"`
	SearchDatabaseRef                 []SearchDatabaseRef `xml:"SearchDatabaseRef"`
}

type InputSpectra struct {
	SpectraDataRef string `xml:"spectraData_ref,attr"`
}

type SearchDatabaseRef struct {
	SearchDatabaseRef string `xml:"searchDatabase_ref,attr"`
}

type ProteinDetection struct {
	ID                           string                         `xml:"id,attr"`
	Name                         string                         `xml:"name,attr,omitempty"`
	ProteinDetectionProtocolRef  string                         `xml:"proteinDetectionProtocol_ref,attr"`
	ProteinDetectionListRef      string                         `xml:"proteinDetectionList_ref,attr"`
	ActivityDate                 string                         `xml:"activityDate,attr,omitempty"`
	InputSpectrumIdentifications []InputSpectrumIdentifications `xml:"InputSpectrumIdentifications"`
}

type InputSpectrumIdentifications struct {
	SpectrumIdentificationListRef string `xml:"spectrumIdentificationList_ref,attr"`
}

type AnalysisProtocolCollection struct {
	SpectrumIdentificationProtocol []SpectrumIdentificationProtocol `xml:"SpectrumIdentificationProtocol"`
	ProteinDetectionProtocol       *ProteinDetectionProtocol        `xml:"ProteinDetectionProtocol"`
}

type SpectrumIdentificationProtocol struct {
	ID                     string               `xml:"id,attr"`
	Name                   string               `xml:"name,attr,omitempty"`
	AnalysisSoftwareRef    string               `xml:"analysisSoftware_ref,attr"`
	SearchType             ParamChoice          `xml:"SearchType"`
	AdditionalSearchParams *Params              `xml:"AdditionalSearchParams"`
	ModificationParams     *ModificationParams  `xml:"ModificationParams"`
	Enzymes                *Enzymes             `xml:"Enzymes"`
	MassTable              []MassTable          `xml:"MassTable"`
	FragmentTolerance      *Params              `xml:"FragmentTolerance"`
	ParentTolerance        *Params              `xml:"ParentTolerance"`
	Threshold              Params               `xml:"Threshold"`
	DatabaseTranslation    *DatabaseTranslation `xml:"DatabaseTranslation"`
}

type ModificationParams struct {
	SearchModification []SearchModification `xml:"SearchModification"`
}

type SearchModification struct {
	FixedMod         bool               `xml:"fixedMod,attr"`
	MassDelta        float64            `xml:"massDelta,attr"`
	Residues         string             `xml:"residues,attr"`
	SpecificityRules []SpecificityRules `xml:"SpecificityRules"`
	CvParam          []CVParam          `xml:"cvParam"`
}

type SpecificityRules struct {
	CvParam []CVParam `xml:"cvParam"`
}

type Enzymes struct {
	Independent *bool    `xml:"independent,attr"`
	Enzyme      []Enzyme `xml:"Enzyme"`
}

type Enzyme struct {
	ID              string  `xml:"id,attr"`
	Name            string  `xml:"name,attr,omitempty"`
	CTermGain       string  `xml:"cTermGain,attr,omitempty"`
	NTermGain       string  `xml:"nTermGain,attr,omitempty"`
	MinDistance     *int    `xml:"minDistance,attr"`
	MissedCleavages *int    `xml:"missedCleavages,attr"`
	SemiSpecific    *bool   `xml:"semiSpecific,attr"`
	SiteRegexp      string  `xml:"SiteRegexp,omitempty"`
	EnzymeName      *Params `xml:"EnzymeName"`
}

type MassTable struct {
	ID      string    `xml:"id,attr"`
	Name    string    `xml:"name,attr,omitempty"`
	MsLevel string    `xml:"msLevel,attr"`
	Residue []Residue `xml:"Residue"`
	Params
}

type Residue struct {
	Code string  `xml:"code,attr"`
	Mass float64 `xml:"mass,attr"`
}

type DatabaseTranslation struct {
	Frames           string             `xml:"frames,attr,omitempty"`
	TranslationTable []TranslationTable `xml:"TranslationTable"`
}

type TranslationTable struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr,omitempty"`
	Params
}

type ProteinDetectionProtocol struct {
	ID                  string  `xml:"id,attr"`
	Name                string  `xml:"name,attr,omitempty"`
	AnalysisSoftwareRef string  `xml:"analysisSoftware_ref,attr"`
	AnalysisParams      *Params `xml:"AnalysisParams"`
	Threshold           Params  `xml:"Threshold"`
}

type DataCollection struct {
	Inputs       Inputs       `xml:"Inputs"`
	AnalysisData AnalysisData `xml:"AnalysisData"`
}

type Inputs struct {
	SourceFile     []SourceFile     `xml:"SourceFile"`
	SearchDatabase []SearchDatabase `xml:"SearchDatabase"`
	SpectraData    []SpectraData    `xml:"SpectraData"`
}

type SourceFile struct {
	ID                          string       `xml:"id,attr"`
	Name                        string       `xml:"name,attr,omitempty"`
	Location                    string       `xml:"location,attr"`
	ExternalFormatDocumentation string       `xml:"ExternalFormatDocumentation,omitempty"`
	FileFormat                  *ParamChoice `xml:"FileFormat"`
	Params
}

type SearchDatabase struct {
	ID                          string       `xml:"id,attr"`
	Name                        string       `xml:"name,attr,omitempty"`
	Location                    string       `xml:"location,attr"`
	Version                     string       `xml:"version,attr,omitempty"`
	ReleaseDate                 string       `xml:"releaseDate,attr,omitempty"`
	NumDatabaseSequences        *int64       `xml:"numDatabaseSequences,attr"`
	NumResidues                 *int64       `xml:"numResidues,attr"`
	ExternalFormatDocumentation string       `xml:"ExternalFormatDocumentation,omitempty"`
	FileFormat                  *ParamChoice `xml:"FileFormat"`
	DatabaseName                ParamChoice  `xml:"DatabaseName"`
	Params
}

type SpectraData struct {
	ID                          string       `xml:"id,attr"`
	Name                        string       `xml:"name,attr,omitempty"`
	Location                    string       `xml:"location,attr"`
	ExternalFormatDocumentation string       `xml:"ExternalFormatDocumentation,omitempty"`
	FileFormat                  *ParamChoice `xml:"FileFormat"`
	SpectrumIDFormat            ParamChoice  `xml:"SpectrumIDFormat"`
}

type AnalysisData struct {
	SpectrumIdentificationList []SpectrumIdentificationList `xml:"SpectrumIdentificationList"`
	ProteinDetectionList       *ProteinDetectionList        `xml:"ProteinDetectionList"`
}

type SpectrumIdentificationList struct {
	ID                           string                         `xml:"id,attr"`
	Name                         string                         `xml:"name,attr,omitempty"`
	NumSequencesSearched         *int64                         `xml:"numSequencesSearched,attr"`
	FragmentationTable           *FragmentationTable            `xml:"FragmentationTable"`
	SpectrumIdentificationResult []SpectrumIdentificationResult `xml:"SpectrumIdentificationResult"`
	Params
}

type FragmentationTable struct {
	Measure []Measure `xml:"Measure"`
}

type Measure struct {
	ID      string    `xml:"id,attr"`
	Name    string    `xml:"name,attr,omitempty"`
	CvParam []CVParam `xml:"cvParam"`
}

type SpectrumIdentificationResult struct {
	ID                         string                       `xml:"id,attr"`
	Name                       string                       `xml:"name,attr,omitempty"`
	SpectrumID                 string                       `xml:"spectrumID,attr"`
	SpectraDataRef             string                       `xml:"spectraData_ref,attr"`
	SpectrumIdentificationItem []SpectrumIdentificationItem `xml:"SpectrumIdentificationItem"`
	Params
}

type SpectrumIdentificationItem struct {
	ID                       string               `xml:"id,attr"`
	Name                     string               `xml:"name,attr,omitempty"`
	ChargeState              int                  `xml:"chargeState,attr"`
	ExperimentalMassToCharge float64              `xml:"experimentalMassToCharge,attr"`
	CalculatedMassToCharge   *float64             `xml:"calculatedMassToCharge,attr"`
	CalculatedPI             *float64             `xml:"calculatedPI,attr"`
	PeptideRef               string               `xml:"peptide_ref,attr,omitempty"`
	Rank                     int                  `xml:"rank,attr"`
	PassThreshold            bool                 `xml:"passThreshold,attr"`
	MassTableRef             string               `xml:"massTable_ref,attr,omitempty"`
	SampleRef                string               `xml:"sample_ref,attr,omitempty"`
	PeptideEvidenceRef       []PeptideEvidenceRef `xml:"PeptideEvidenceRef"`
	Fragmentation            *Fragmentation       `xml:"Fragmentation"`
	Params
}

type PeptideEvidenceRef struct {
	PeptideEvidenceRef string `xml:"peptideEvidence_ref,attr"`
}

type Fragmentation struct {
	IonType []IonType `xml:"IonType"`
}

type IonType struct {
	Index         string          `xml:"index,attr,omitempty"`
	Charge        int             `xml:"charge,attr"`
	FragmentArray []FragmentArray `xml:"FragmentArray"`
	Params
}

type FragmentArray struct {
	Values     string `xml:"values,attr"`
	MeasureRef string `xml:"measure_ref,attr"`
}

type ProteinDetectionList struct {
	ID                    string                  `xml:"id,attr"`
	Name                  string                  `xml:"name,attr,omitempty"`
	ProteinAmbiguityGroup []ProteinAmbiguityGroup `xml:"ProteinAmbiguityGroup"`
	Params
}

type ProteinAmbiguityGroup struct {
	ID                         string                       `xml:"id,attr"`
	Name                       string                       `xml:"name,attr,omitempty"`
	ProteinDetectionHypothesis []ProteinDetectionHypothesis `xml:"ProteinDetectionHypothesis"`
	Params
}

type ProteinDetectionHypothesis struct {
	ID                string              `xml:"id,attr"`
	Name              string              `xml:"name,attr,omitempty"`
	DBSequenceRef     string              `xml:"dBSequence_ref,attr,omitempty"`
	PassThreshold     bool                `xml:"passThreshold,attr"`
	PeptideHypothesis []PeptideHypothesis `xml:"PeptideHypothesis"`
	Params
}

type PeptideHypothesis struct {
	PeptideEvidenceRef            string                          `xml:"peptideEvidence_ref,attr"`
	SpectrumIdentificationItemRef []SpectrumIdentificationItemRef `xml:"SpectrumIdentificationItemRef"`
}

type SpectrumIdentificationItemRef struct {
	SpectrumIdentificationItemRef string `xml:"spectrumIdentificationItem_ref,attr"`
}

type BibliographicReference struct {
	ID          string `xml:"id,attr"`
	Name        string `xml:"name,attr,omitempty"`
	Authors     string `xml:"authors,attr,omitempty"`
	DOI         string `xml:"doi,attr,omitempty"`
	Editor      string `xml:"editor,attr,omitempty"`
	Issue       string `xml:"issue,attr,omitempty"`
	Pages       string `xml:"pages,attr,omitempty"`
	Publication string `xml:"publication,attr,omitempty"`
	Publisher   string `xml:"publisher,attr,omitempty"`
	Title       string `xml:"title,attr,omitempty"`
	Volume      string `xml:"volume,attr,omitempty"`
	Year        *int   `xml:"year,attr"`
}

var (
	// ErrInvalidIdentIndex means an identification index out of range was requested
	ErrInvalidIdentIndex = errors.New("mzIdentML: invalid identification index")
	// ErrNoRootElement means the input has no MzIdentML element
	ErrNoRootElement = errors.New("mzIdentML: missing MzIdentML root element")
	// ErrUnresolvedReference means the streaming reader met an id that was not declared before
	ErrUnresolvedReference = errors.New("mzIdentML: unresolved reference")
)
