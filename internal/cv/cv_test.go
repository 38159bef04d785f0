package cv

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIndependentOfOrder(t *testing.T) {
	doc1 := NewTranslator([]CV{
		{ID: "PSI-MS", FullName: "Proteomics Standards Initiative Mass Spectrometry Vocabularies"},
		{ID: "UNIMOD", FullName: "UNIMOD"},
		{ID: "UO", FullName: "UNIT-ONTOLOGY"},
	})
	doc2 := NewTranslator([]CV{
		{ID: "UO", FullName: "UNIT-ONTOLOGY"},
		{ID: "UNIMOD", FullName: "UNIMOD"},
		{ID: "PSI-MS", FullName: "Proteomics Standards Initiative Mass Spectrometry Vocabularies"},
	})

	id1 := doc1.Resolve("PSI-MS", "MS:1002052")
	id2 := doc2.Resolve("PSI-MS", "MS:1002052")
	assert.Equal(t, MSGFSpecEValue, id1)
	assert.Equal(t, id1, id2)
	assert.Equal(t, TermID("UO:0000031"), doc2.Resolve("UO", "UO:0000031"))
}

func TestResolveByURIWithOddLocalID(t *testing.T) {
	tr := NewTranslator([]CV{
		{ID: "cv0", URI: "https://raw.githubusercontent.com/HUPO-PSI/psi-ms-CV/master/psi-ms.obo"},
	})
	assert.Equal(t, ScanNumbers, tr.Resolve("cv0", "MS:1001115"))

	ref, acc, ok := tr.Ref(ScanNumbers)
	require.True(t, ok)
	assert.Equal(t, "cv0", ref)
	assert.Equal(t, "MS:1001115", acc)
}

func TestResolveUnknown(t *testing.T) {
	tr := NewTranslator([]CV{{ID: "PSI-MS"}})
	assert.Equal(t, Unknown, tr.Resolve("NOPE", "MS:1001115"))
	assert.Equal(t, Unknown, tr.Resolve("PSI-MS", ""))

	var nilTr *Translator
	assert.Equal(t, Unknown, nilTr.Resolve("PSI-MS", "MS:1001115"))
	_, _, ok := nilTr.Ref(ScanNumbers)
	assert.False(t, ok)
}

func TestResolveUndeclaredOntologyKeepsOwnPrefix(t *testing.T) {
	tr := NewTranslator([]CV{{ID: "LAB", FullName: "In-house terms"}})
	assert.Equal(t, TermID("LAB:42"), tr.Resolve("LAB", "X:42"))
}

func TestDeclare(t *testing.T) {
	tr := NewTranslator(nil)
	_, _, ok := tr.Ref(UnitMinute)
	require.False(t, ok)
	require.True(t, tr.Declare(UnitMinute))
	ref, _, ok := tr.Ref(UnitMinute)
	require.True(t, ok)
	assert.Equal(t, "UO", ref)
	assert.Len(t, tr.CVs(), 1)
	// Second call doesn't add another declaration
	require.True(t, tr.Declare("UO:0000010"))
	assert.Len(t, tr.CVs(), 1)
	assert.False(t, tr.Declare("FOO:1"))
}

func TestValue(t *testing.T) {
	params := ParamList{
		CVParam{Term: MSGFSpecEValue, Name: "MS-GF:SpecEValue", Value: "1.5e-10"},
		CVParam{Term: MSGFRawScore, Name: "MS-GF:RawScore", Value: "abc"},
		UserParam{Name: "IsotopeError", Value: "0"},
	}

	f, err := Value[float64](params, MSGFSpecEValue)
	require.NoError(t, err)
	assert.InDelta(t, 1.5e-10, f, 1e-20)

	_, err = Value[int](params, MSGFRawScore)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConversion))
	assert.False(t, errors.Is(err, ErrTermNotFound))
	var convErr *ConversionError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, MSGFRawScore, convErr.Term)

	_, err = Value[float64](params, MSGFQValue)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTermNotFound))
	assert.False(t, errors.Is(err, ErrConversion))

	s, err := Value[string](params, MSGFRawScore)
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	u, ok := params.User("IsotopeError")
	require.True(t, ok)
	assert.Equal(t, "0", u.RawValue())
}

func TestParamListEqual(t *testing.T) {
	a := ParamList{
		CVParam{Term: MSGFSpecEValue, Value: "1"},
		UserParam{Name: "x", Value: "2"},
	}
	b := ParamList{
		UserParam{Name: "x", Value: "2"},
		CVParam{Term: MSGFSpecEValue, Name: "other label", Value: "1"},
	}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(b[:1]))
	c := ParamList{
		UserParam{Name: "x", Value: "2"},
		UserParam{Name: "x", Value: "2"},
	}
	assert.False(t, a.Equal(c))
}
