// Package cv translates document-local controlled vocabulary references
// into stable term ids and holds the parameter model (cvParam/userParam)
// shared by all mzIdentML entities.
package cv

import (
	"strings"
)

// CV is one entry of the cvList at the top of an mzIdentML document.
type CV struct {
	ID       string
	FullName string
	Version  string
	URI      string
}

// TermID is a document independent term identifier of the form
// <ontology prefix>:<local id>, e.g. MS:1001115.
type TermID string

// Unknown is returned when a (cvRef, accession) pair cannot be resolved.
const Unknown TermID = "UNKNOWN"

// Prefix returns the ontology prefix of the term id
func (t TermID) Prefix() string {
	if i := strings.IndexByte(string(t), ':'); i >= 0 {
		return string(t[:i])
	}
	return ""
}

// ontology describes a vocabulary that we recognize independent of the
// id a document gives it.
type ontology struct {
	prefix   string
	ids      []string // Known cv ids, compared case-insensitive
	names    []string // Substrings of the full name, lower case
	uris     []string // Substrings of the URI, lower case
	fullName string   // Used when we need to declare it ourselves
	uri      string
}

// Ontologies that are commonly declared in mzIdentML files
var knownOntologies = []ontology{
	{
		prefix:   "MS",
		ids:      []string{"PSI-MS", "MS"},
		names:    []string{"mass spectrometry", "psi-ms"},
		uris:     []string{"psi-ms.obo", "psi-ms"},
		fullName: "Proteomics Standards Initiative Mass Spectrometry Vocabularies",
		uri:      "https://raw.githubusercontent.com/HUPO-PSI/psi-ms-CV/master/psi-ms.obo",
	},
	{
		prefix:   "MOD",
		ids:      []string{"PSI-MOD", "MOD"},
		names:    []string{"psi-mod", "protein modifications"},
		uris:     []string{"psi-mod.obo"},
		fullName: "Proteomics Standards Initiative PSI-MOD",
		uri:      "https://raw.githubusercontent.com/HUPO-PSI/psi-mod-CV/master/PSI-MOD.obo",
	},
	{
		prefix:   "UNIMOD",
		ids:      []string{"UNIMOD"},
		names:    []string{"unimod"},
		uris:     []string{"unimod"},
		fullName: "UNIMOD",
		uri:      "http://www.unimod.org/obo/unimod.obo",
	},
	{
		prefix:   "UO",
		ids:      []string{"UO", "UNIT-ONTOLOGY"},
		names:    []string{"unit ontology", "unit-ontology"},
		uris:     []string{"unit.obo", "/uo.owl"},
		fullName: "UNIT-ONTOLOGY",
		uri:      "https://raw.githubusercontent.com/bio-ontology-research-group/unit-ontology/master/unit.obo",
	},
	{
		prefix:   "NCBITaxon",
		ids:      []string{"NCBI-TAXONOMY", "NCBITAXON", "NCBI_TAXONOMY"},
		names:    []string{"ncbi taxonomy", "ncbi-taxonomy"},
		uris:     []string{"ncbitaxon"},
		fullName: "NCBI Taxonomy",
		uri:      "http://purl.obolibrary.org/obo/ncbitaxon.obo",
	},
	{
		prefix:   "PATO",
		ids:      []string{"PATO"},
		names:    []string{"phenotype and trait"},
		uris:     []string{"pato.obo"},
		fullName: "Phenotype And Trait Ontology",
		uri:      "http://purl.obolibrary.org/obo/pato.obo",
	},
}

func matchOntology(c CV) (ontology, bool) {
	for _, o := range knownOntologies {
		for _, id := range o.ids {
			if strings.EqualFold(c.ID, id) {
				return o, true
			}
		}
	}
	name := strings.ToLower(c.FullName)
	uri := strings.ToLower(c.URI)
	for _, o := range knownOntologies {
		for _, n := range o.names {
			if name != "" && strings.Contains(name, n) {
				return o, true
			}
		}
		for _, u := range o.uris {
			if uri != "" && strings.Contains(uri, u) {
				return o, true
			}
		}
	}
	return ontology{}, false
}

// Translator converts document-local cvRef/accession pairs into stable
// term ids and back. It is built once per document.
type Translator struct {
	cvs     []CV
	ref2pfx map[string]string // cvRef -> ontology prefix
	pfx2ref map[string]string // ontology prefix -> cvRef (first declaration wins)
}

// NewTranslator builds a translator from the ordered cvList of a document
func NewTranslator(cvs []CV) *Translator {
	t := &Translator{
		ref2pfx: make(map[string]string, len(cvs)),
		pfx2ref: make(map[string]string, len(cvs)),
	}
	for _, c := range cvs {
		t.add(c)
	}
	return t
}

func (t *Translator) add(c CV) {
	pfx := c.ID
	if o, ok := matchOntology(c); ok {
		pfx = o.prefix
	}
	t.ref2pfx[c.ID] = pfx
	if _, ok := t.pfx2ref[pfx]; !ok {
		t.pfx2ref[pfx] = c.ID
	}
	t.cvs = append(t.cvs, c)
}

// CVs returns the declarations in document order
func (t *Translator) CVs() []CV {
	if t == nil {
		return nil
	}
	return append([]CV(nil), t.cvs...)
}

// Resolve converts a cvRef and accession into a stable term id.
// Unknown is returned if the cvRef was never declared.
func (t *Translator) Resolve(cvRef, accession string) TermID {
	if t == nil || accession == "" {
		return Unknown
	}
	pfx, ok := t.ref2pfx[cvRef]
	if !ok {
		return Unknown
	}
	local := accession
	if i := strings.IndexByte(accession, ':'); i >= 0 {
		local = accession[i+1:]
	}
	return TermID(pfx + ":" + local)
}

// Ref converts a term id back into the cvRef and accession used by this
// document. ok is false if the term's ontology is not declared.
func (t *Translator) Ref(id TermID) (cvRef string, accession string, ok bool) {
	if t == nil || id == Unknown {
		return "", "", false
	}
	ref, ok := t.pfx2ref[id.Prefix()]
	if !ok {
		return "", "", false
	}
	return ref, string(id), true
}

// Declare makes sure the ontology of id is declared, adding one of the
// bundled ontologies if needed. It returns false if the ontology is not
// known to us.
func (t *Translator) Declare(id TermID) bool {
	if t == nil {
		return false
	}
	pfx := id.Prefix()
	if _, ok := t.pfx2ref[pfx]; ok {
		return true
	}
	for _, o := range knownOntologies {
		if o.prefix == pfx {
			ref := o.ids[0]
			if _, used := t.ref2pfx[ref]; used {
				ref = o.prefix
			}
			t.add(CV{ID: ref, FullName: o.fullName, URI: o.uri})
			return true
		}
	}
	return false
}
