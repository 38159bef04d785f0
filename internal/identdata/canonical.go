package identdata

import (
	"encoding/binary"
	"strconv"

	"github.com/524D/mzidtool/internal/metrics"

	"github.com/cespare/xxhash/v2"
)

// Prefixes of the ids assigned by Rebuild
const (
	PeptideEvidencePrefix = "PepEv"
	PeptidePrefix         = "Pep"
	DBSequencePrefix      = "DBSeq"
	ProtocolPrefix        = "SpecIdentProtocol"
	SearchDatabasePrefix  = "SearchDB"
	SpectraDataPrefix     = "SID"
)

// index finds value-equal entities. Entities are bucketed by a hash of
// their scalar fields, only entities in the same bucket are compared
// with Equal. Equal entities must hash the same.
type index[T entity[T]] struct {
	hash    func(T) uint64
	buckets map[uint64][]T
}

func newIndex[T entity[T]](hash func(T) uint64) *index[T] {
	return &index[T]{hash: hash, buckets: make(map[uint64][]T)}
}

func (x *index[T]) find(e T) (T, bool) {
	for _, c := range x.buckets[x.hash(e)] {
		if c == e || c.Equal(e) {
			return c, true
		}
	}
	var zero T
	return zero, false
}

func (x *index[T]) add(e T) {
	h := x.hash(e)
	x.buckets[h] = append(x.buckets[h], e)
}

// canonical holds the indexes of the canonical lists after a rebuild
type canonical struct {
	evidence  *index[*PeptideEvidence]
	peptides  *index[*Peptide]
	sequences *index[*DBSequence]
	protocols *index[*SpectrumIdentificationProtocol]
	databases *index[*SearchDatabase]
	spectra   *index[*SpectraData]
}

// canonicalize clears l and refills it with the entities walk visits,
// skipping nil and anything value-equal to an entity already in l. Each
// entity added gets the next id prefix_n.
func canonicalize[T entity[T]](l *List[T], kind, prefix string, hash func(T) uint64, setID func(T, string), walk func(visit func(T))) *index[T] {
	l.Clear()
	idx := newIndex(hash)
	var zero T
	walk(func(e T) {
		if e == zero {
			return
		}
		if _, ok := idx.find(e); ok {
			return
		}
		idx.add(e)
		l.Add(e)
		setID(e, prefix+"_"+strconv.Itoa(l.Len()))
	})
	metrics.CanonicalEntities.WithLabelValues(kind).Set(float64(l.Len()))
	return idx
}

// Rebuild recreates the canonical lists from what the analysis results
// reference, and assigns new sequential ids to their members. Entities
// that are no longer referenced disappear. References to a value-equal
// duplicate of a canonical entity are left as they are.
func (d *IdentData) Rebuild() {
	d.rebuild()
}

func (d *IdentData) rebuild() *canonical {
	var c canonical
	c.evidence = canonicalize(&d.PeptideEvidences, "PeptideEvidence", PeptideEvidencePrefix, hashEvidence,
		func(e *PeptideEvidence, id string) { e.ID = id },
		func(visit func(*PeptideEvidence)) {
			d.eachItem(func(it *SpectrumIdentificationItem) {
				for _, e := range it.PeptideEvidences.Items() {
					visit(e)
				}
			})
			d.eachPeptideHypothesis(func(h *PeptideHypothesis) {
				visit(h.PeptideEvidence)
			})
		})
	c.peptides = canonicalize(&d.Peptides, "Peptide", PeptidePrefix, hashPeptide,
		func(p *Peptide, id string) { p.ID = id },
		func(visit func(*Peptide)) {
			d.eachItem(func(it *SpectrumIdentificationItem) {
				visit(it.Peptide)
			})
			for _, e := range d.PeptideEvidences.Items() {
				visit(e.Peptide)
			}
		})
	c.sequences = canonicalize(&d.DBSequences, "DBSequence", DBSequencePrefix, hashSequence,
		func(s *DBSequence, id string) { s.ID = id },
		func(visit func(*DBSequence)) {
			for _, e := range d.PeptideEvidences.Items() {
				visit(e.DBSequence)
			}
			d.eachHypothesis(func(h *ProteinDetectionHypothesis) {
				visit(h.DBSequence)
			})
		})
	c.protocols = canonicalize(&d.SpectrumIdentificationProtocols, "SpectrumIdentificationProtocol", ProtocolPrefix, hashProtocol,
		func(p *SpectrumIdentificationProtocol, id string) { p.ID = id },
		func(visit func(*SpectrumIdentificationProtocol)) {
			for _, si := range d.SpectrumIdentifications.Items() {
				visit(si.Protocol)
			}
		})
	c.databases = canonicalize(&d.SearchDatabases, "SearchDatabase", SearchDatabasePrefix, hashDatabase,
		func(s *SearchDatabase, id string) { s.ID = id },
		func(visit func(*SearchDatabase)) {
			for _, si := range d.SpectrumIdentifications.Items() {
				for _, db := range si.SearchDatabases.Items() {
					visit(db)
				}
			}
			for _, s := range d.DBSequences.Items() {
				visit(s.SearchDatabase)
			}
		})
	c.spectra = canonicalize(&d.SpectraData, "SpectraData", SpectraDataPrefix, hashSpectra,
		func(s *SpectraData, id string) { s.ID = id },
		func(visit func(*SpectraData)) {
			d.eachResult(func(r *SpectrumIdentificationResult) {
				visit(r.SpectraData)
			})
			for _, si := range d.SpectrumIdentifications.Items() {
				for _, sd := range si.InputSpectra.Items() {
					visit(sd)
				}
			}
		})
	return &c
}

// lists returns the declared result lists followed by those only
// reachable through a SpectrumIdentification
func (d *IdentData) lists() []*SpectrumIdentificationList {
	out := append([]*SpectrumIdentificationList(nil), d.SpectrumIdentificationLists.Items()...)
	for _, si := range d.SpectrumIdentifications.Items() {
		if si.List != nil && !containsPtr(out, si.List) {
			out = append(out, si.List)
		}
	}
	return out
}

func (d *IdentData) eachResult(f func(*SpectrumIdentificationResult)) {
	for _, l := range d.lists() {
		for _, r := range l.Results.Items() {
			f(r)
		}
	}
}

func (d *IdentData) eachItem(f func(*SpectrumIdentificationItem)) {
	d.eachResult(func(r *SpectrumIdentificationResult) {
		for _, it := range r.Items.Items() {
			f(it)
		}
	})
}

func (d *IdentData) eachHypothesis(f func(*ProteinDetectionHypothesis)) {
	pdl := d.ProteinDetectionList
	if pdl == nil && d.ProteinDetection != nil {
		pdl = d.ProteinDetection.List
	}
	if pdl == nil {
		return
	}
	for _, g := range pdl.Groups.Items() {
		for _, h := range g.Hypotheses.Items() {
			f(h)
		}
	}
}

func (d *IdentData) eachPeptideHypothesis(f func(*PeptideHypothesis)) {
	d.eachHypothesis(func(h *ProteinDetectionHypothesis) {
		for _, ph := range h.PeptideHypotheses.Items() {
			f(ph)
		}
	})
}

func containsPtr[T comparable](s []T, e T) bool {
	for _, x := range s {
		if x == e {
			return true
		}
	}
	return false
}

// hasher accumulates scalar fields into an xxhash digest
type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newHasher() *hasher {
	return &hasher{d: xxhash.New()}
}

func (h *hasher) addString(s string) *hasher {
	h.d.WriteString(s)
	h.d.Write([]byte{0})
	return h
}

func (h *hasher) addInt(v int64) *hasher {
	binary.LittleEndian.PutUint64(h.buf[:], uint64(v))
	h.d.Write(h.buf[:])
	return h
}

func (h *hasher) addIntPtr(v *int) *hasher {
	if v == nil {
		return h.addString("nil")
	}
	return h.addInt(int64(*v))
}

func (h *hasher) addBool(v bool) *hasher {
	if v {
		return h.addInt(1)
	}
	return h.addInt(0)
}

func (h *hasher) sum() uint64 {
	return h.d.Sum64()
}

func hashSequence(s *DBSequence) uint64 {
	return newHasher().addString(s.Accession).addString(s.Name).addString(s.Seq).addIntPtr(s.Length).sum()
}

func hashPeptide(p *Peptide) uint64 {
	return newHasher().addString(p.Sequence).addString(p.Name).addInt(int64(p.Modifications.Len())).
		addInt(int64(p.Substitutions.Len())).sum()
}

func hashEvidence(e *PeptideEvidence) uint64 {
	h := newHasher().addString(e.Name).addString(e.Pre).addString(e.Post).addBool(e.IsDecoy).
		addIntPtr(e.Start).addIntPtr(e.End).addIntPtr(e.Frame)
	if e.Peptide != nil {
		h.addString(e.Peptide.Sequence)
	}
	if e.DBSequence != nil {
		h.addString(e.DBSequence.Accession)
	}
	return h.sum()
}

func hashProtocol(p *SpectrumIdentificationProtocol) uint64 {
	return newHasher().addString(p.Name).addString(p.TranslationFrames).
		addInt(int64(p.Modifications.Len())).addInt(int64(p.Enzymes.Len())).sum()
}

func hashDatabase(s *SearchDatabase) uint64 {
	return newHasher().addString(s.Location).addString(s.Name).addString(s.Version).addString(s.ReleaseDate).sum()
}

func hashSpectra(s *SpectraData) uint64 {
	return newHasher().addString(s.Location).addString(s.Name).sum()
}
