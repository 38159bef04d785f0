package identdata

import (
	"math"
	"strconv"
	"strings"

	"github.com/524D/mzidtool/internal/cv"

	"gonum.org/v1/gonum/floats"
)

// ScoreFunc returns the score of an item. Lower scores are better.
type ScoreFunc func(*SpectrumIdentificationItem) float64

// TermScore returns a ScoreFunc reading the cvParam with the given term.
// Items without a parsable value score +Inf.
func TermScore(id cv.TermID) ScoreFunc {
	return func(it *SpectrumIdentificationItem) float64 {
		v, err := cv.Value[float64](it.Params, id)
		if err != nil || math.IsNaN(v) {
			return math.Inf(1)
		}
		return v
	}
}

// SpecEValue scores items by their MS-GF+ spectral E-value
var SpecEValue = TermScore(cv.MSGFSpecEValue)

func scores(items []*SpectrumIdentificationItem, score ScoreFunc) []float64 {
	s := make([]float64, len(items))
	for i, it := range items {
		s[i] = score(it)
	}
	return s
}

// bestScore returns +Inf for a result without items
func (r *SpectrumIdentificationResult) bestScore(score ScoreFunc) float64 {
	if r.Items.Len() == 0 {
		return math.Inf(1)
	}
	return floats.Min(scores(r.Items.Items(), score))
}

// Sort orders the items by ascending rank
func (r *SpectrumIdentificationResult) Sort() {
	r.Items.Sort(func(a, b *SpectrumIdentificationItem) bool { return a.Rank < b.Rank })
}

// ReRank sorts the items by score, sets their rank and id. Items with
// equal scores share the rank, the next rank skips the shared places.
// The id of an item is the id of the result with SIR replaced by SII,
// followed by _rank.
func (r *SpectrumIdentificationResult) ReRank(score ScoreFunc) {
	if score == nil {
		score = SpecEValue
	}
	items := r.Items.Items()
	s := scores(items, score)
	byItem := make(map[*SpectrumIdentificationItem]float64, len(items))
	for i, it := range items {
		byItem[it] = s[i]
	}
	r.Items.Sort(func(a, b *SpectrumIdentificationItem) bool { return byItem[a] < byItem[b] })
	items = r.Items.Items()
	base := strings.Replace(r.ID, "SIR", "SII", 1)
	for i, it := range items {
		if i == 0 || byItem[it] > byItem[items[i-1]] {
			it.Rank = i + 1
		} else {
			it.Rank = items[i-1].Rank
		}
		it.ID = base + "_" + strconv.Itoa(it.Rank)
	}
	r.Sort()
}

// PruneToBest re-ranks the items and keeps only those with the best score
func (r *SpectrumIdentificationResult) PruneToBest(score ScoreFunc) {
	if score == nil {
		score = SpecEValue
	}
	r.ReRank(score)
	if r.Items.Len() == 0 {
		return
	}
	best := r.bestScore(score)
	r.Items.Filter(func(it *SpectrumIdentificationItem) bool { return score(it) <= best })
}

// Sort orders the items of each result by rank, and the results by the
// best score of their items
func (l *SpectrumIdentificationList) Sort(score ScoreFunc) {
	if score == nil {
		score = SpecEValue
	}
	best := make(map[*SpectrumIdentificationResult]float64, l.Results.Len())
	for _, r := range l.Results.Items() {
		r.Sort()
		best[r] = r.bestScore(score)
	}
	l.Results.Sort(func(a, b *SpectrumIdentificationResult) bool { return best[a] < best[b] })
}

// ReRank re-ranks every result and sorts the list
func (l *SpectrumIdentificationList) ReRank(score ScoreFunc) {
	for _, r := range l.Results.Items() {
		r.ReRank(score)
	}
	l.Sort(score)
}

// PruneToBest prunes every result and sorts the list
func (l *SpectrumIdentificationList) PruneToBest(score ScoreFunc) {
	for _, r := range l.Results.Items() {
		r.PruneToBest(score)
	}
	l.Sort(score)
}
