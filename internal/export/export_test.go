package export

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/524D/mzidtool/internal/mzidentml"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readIdents(t *testing.T) []mzidentml.Identification {
	t.Helper()
	f, err := os.Open("../mzidentml/testdata/msgf_small.mzid")
	require.NoError(t, err)
	defer f.Close()
	m, err := mzidentml.Read(f)
	require.NoError(t, err)
	return m.Idents()
}

func TestTSV(t *testing.T) {
	var buf bytes.Buffer
	s := NewTSV(&buf)
	for _, id := range readIdents(t) {
		require.NoError(t, s.Write("small.mzid", id))
	}
	require.NoError(t, s.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(columns, "\t"), lines[0])

	row := strings.Split(lines[1], "\t")
	require.Len(t, row, len(columns))
	get := func(col string) string {
		for i, c := range columns {
			if c == col {
				return row[i]
			}
		}
		t.Fatalf("no column %s", col)
		return ""
	}
	assert.Equal(t, "small.mzid", get("source"))
	assert.Equal(t, "SII_1_1", get("spec_item_id"))
	assert.Equal(t, "482", get("scan"))
	assert.Equal(t, "PEPTIDEK", get("peptide"))
	assert.Equal(t, "2:15.994915:Oxidation", get("mods"))
	assert.Equal(t, "P1;XXX_P1", get("proteins"))
	assert.Equal(t, "false", get("decoy"))
	assert.Equal(t, "0.01", get("spec_evalue"))

	// Missing scores are empty
	row = strings.Split(lines[2], "\t")
	assert.Equal(t, "", get("evalue"))
}

func TestTSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTSV(&buf).Close())
	assert.Equal(t, strings.Join(columns, "\t")+"\n", buf.String())
}

func TestSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "psm.db")
	s, err := NewSQLite(ctx, path, "psm")
	require.NoError(t, err)
	for _, id := range readIdents(t) {
		require.NoError(t, s.Write("small.mzid", id))
	}
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM psm`).Scan(&n))
	assert.Equal(t, 3, n)

	var pep string
	var evalue sql.NullFloat64
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT peptide, evalue FROM psm WHERE spec_item_id = ?`, "SII_1_2").Scan(&pep, &evalue))
	assert.Equal(t, "ELVISK", pep)
	assert.False(t, evalue.Valid)
}

func TestOpen(t *testing.T) {
	_, err := Open(context.Background(), "xlsx", &bytes.Buffer{}, "", "")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = NewSQLite(context.Background(), filepath.Join(t.TempDir(), "x.db"), "psm; DROP TABLE x")
	assert.Error(t, err)

	s, err := Open(context.Background(), "tsv", &bytes.Buffer{}, "", "")
	require.NoError(t, err)
	assert.IsType(t, &TSV{}, s)
}
