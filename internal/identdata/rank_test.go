package identdata

import (
	"math"
	"testing"

	"github.com/524D/mzidtool/internal/cv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(name, value string) *SpectrumIdentificationItem {
	it := &SpectrumIdentificationItem{Name: name}
	if value != "" {
		it.Params = cv.ParamList{cv.CVParam{Term: cv.MSGFSpecEValue, Name: "MS-GF:SpecEValue", Value: value}}
	}
	return it
}

func TestReRank(t *testing.T) {
	a, b, c := scored("a", "0.01"), scored("b", "0.3"), scored("c", "0.01")
	r := &SpectrumIdentificationResult{ID: "SIR_7", Items: NewList(nil, a, b, c)}

	r.ReRank(nil)

	assert.Equal(t, []int{1, 3, 1}, []int{a.Rank, b.Rank, c.Rank})
	assert.Equal(t, []*SpectrumIdentificationItem{a, c, b}, r.Items.Items())
	assert.Equal(t, "SII_7_1", a.ID)
	assert.Equal(t, "SII_7_3", b.ID)

	r.PruneToBest(nil)
	assert.Equal(t, []*SpectrumIdentificationItem{a, c}, r.Items.Items())
}

func TestReRankMissingScore(t *testing.T) {
	a, b := scored("a", ""), scored("b", "2")
	r := &SpectrumIdentificationResult{ID: "SIR_1", Items: NewList(nil, a, b)}
	assert.True(t, math.IsInf(SpecEValue(a), 1))

	r.ReRank(SpecEValue)
	assert.Equal(t, 1, b.Rank)
	assert.Equal(t, 2, a.Rank)

	// Nothing scores better than +Inf, so all of these are kept
	n1, n2 := scored("n1", ""), scored("n2", "")
	r = &SpectrumIdentificationResult{ID: "SIR_2", Items: NewList(nil, n1, n2)}
	r.PruneToBest(nil)
	assert.Equal(t, 2, r.Items.Len())
	assert.Equal(t, 1, n2.Rank)
}

func TestSortResult(t *testing.T) {
	a, b, c := scored("a", "1"), scored("b", "2"), scored("c", "3")
	a.Rank, b.Rank, c.Rank = 3, 1, 2
	r := &SpectrumIdentificationResult{Items: NewList(nil, a, b, c)}
	r.Sort()
	assert.Equal(t, []*SpectrumIdentificationItem{b, c, a}, r.Items.Items())
}

func TestSortList(t *testing.T) {
	r1 := &SpectrumIdentificationResult{ID: "SIR_1", Items: NewList(nil, scored("x", "0.5"), scored("y", "0.7"))}
	r2 := &SpectrumIdentificationResult{ID: "SIR_2", Items: NewList(nil, scored("z", "0.1"))}
	r3 := &SpectrumIdentificationResult{ID: "SIR_3"}
	l := &SpectrumIdentificationList{Results: NewList(nil, r1, r3, r2)}
	l.Sort(nil)
	assert.Equal(t, []*SpectrumIdentificationResult{r2, r1, r3}, l.Results.Items())
}

func TestListPruneToBest(t *testing.T) {
	d := readTestFile(t)
	l := d.SpectrumIdentificationLists.At(0)
	l.PruneToBest(TermScore(cv.MSGFSpecEValue))

	require.Equal(t, 2, l.Results.Len())
	// SIR_1 has the best item (0.01), SIR_2 is next (0.02)
	first := l.Results.At(0)
	assert.Equal(t, "SIR_1", first.ID)
	require.Equal(t, 1, first.Items.Len())
	assert.Equal(t, "SII_1_1", first.Items.At(0).ID)
	assert.Equal(t, "PEPTIDEK", first.Items.At(0).Peptide.Sequence)
}
