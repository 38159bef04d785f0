package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextfile(t *testing.T) {
	before := testutil.ToFloat64(DanglingReferences.WithLabelValues("Peptide"))
	DanglingReferences.WithLabelValues("Peptide").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(DanglingReferences.WithLabelValues("Peptide")))

	name := filepath.Join(t.TempDir(), "mzid.prom")
	require.NoError(t, WriteTextfile(name))
	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `mzid_dangling_references_total{kind="Peptide"}`))
}
