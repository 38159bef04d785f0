// Package export writes the flat identifications of the streaming reader
// to a tab separated file or an SQLite table.
package export

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/524D/mzidtool/internal/mzidentml"

	"github.com/pkg/errors"
)

// Sink receives identifications. Close must be called to flush them.
type Sink interface {
	// Write stores one identification, source names the file it came from
	Write(source string, id mzidentml.Identification) error
	Close() error
}

// ErrUnknownFormat is returned by Open for a format other than tsv or sqlite
var ErrUnknownFormat = errors.New("export: unknown format")

// Open creates a sink of the given format, "tsv" writing to w or
// "sqlite" writing to table in the database at path
func Open(ctx context.Context, format string, w io.Writer, path, table string) (Sink, error) {
	switch format {
	case "tsv":
		return NewTSV(w), nil
	case "sqlite":
		s, err := NewSQLite(ctx, path, table)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
}

// columns of both output formats, in order
var columns = []string{
	"source", "spec_item_id", "result_id", "spectrum_id", "spectra_data", "scan", "rt",
	"peptide", "mods", "mod_mass", "proteins", "decoy", "charge", "exp_mz", "calc_mz",
	"rank", "pass_threshold", "raw_score", "denovo_score", "spec_evalue", "evalue",
	"qvalue", "pep_qvalue", "isotope_error",
}

// values returns the column values of an identification. Missing scores
// (NaN) are nil.
func values(source string, id mzidentml.Identification) []any {
	return []any{
		source, id.SpecItemID, id.ResultID, id.SpecID, id.SpectraDataRef, id.ScanNum, id.RetentionTime,
		id.PepSeq, formatMods(id.Mods), id.ModMass, formatProteins(id.Evidence), isDecoy(id.Evidence),
		id.Charge, id.ExperimentalMz, id.CalculatedMz, id.Rank, id.PassThreshold,
		id.RawScore, id.DeNovoScore, nullable(id.SpecEValue), nullable(id.EValue),
		nullable(id.QValue), nullable(id.PepQValue), id.IsotopeError,
	}
}

func nullable(f float64) any {
	if math.IsNaN(f) {
		return nil
	}
	return f
}

// formatMods writes modifications as location:mass:name separated by ';'
func formatMods(mods []mzidentml.Mod) string {
	s := make([]string, len(mods))
	for i, m := range mods {
		s[i] = strconv.Itoa(m.Location) + ":" + strconv.FormatFloat(m.Mass, 'f', -1, 64) + ":" + m.Name
	}
	return strings.Join(s, ";")
}

func formatProteins(ev []mzidentml.Evidence) string {
	s := make([]string, len(ev))
	for i, e := range ev {
		s[i] = e.Accession
	}
	return strings.Join(s, ";")
}

// isDecoy is true if the peptide only occurs in decoy proteins
func isDecoy(ev []mzidentml.Evidence) bool {
	if len(ev) == 0 {
		return false
	}
	for _, e := range ev {
		if !e.IsDecoy {
			return false
		}
	}
	return true
}

// TSV writes identifications as tab separated values with a header line
type TSV struct {
	w      *csv.Writer
	header bool
}

// NewTSV creates a TSV sink writing to w
func NewTSV(w io.Writer) *TSV {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return &TSV{w: cw}
}

func (t *TSV) Write(source string, id mzidentml.Identification) error {
	if !t.header {
		t.header = true
		if err := t.w.Write(columns); err != nil {
			return err
		}
	}
	vals := values(source, id)
	rec := make([]string, len(vals))
	for i, v := range vals {
		rec[i] = formatValue(v)
	}
	return t.w.Write(rec)
}

// Close flushes the output. It doesn't close the underlying writer.
func (t *TSV) Close() error {
	if !t.header {
		t.header = true
		if err := t.w.Write(columns); err != nil {
			return err
		}
	}
	t.w.Flush()
	return t.w.Error()
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}
