package main

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const smallMzid = "internal/mzidentml/testdata/msgf_small.mzid"

func TestNewScoreStats(t *testing.T) {
	st := newScoreStats([]float64{0.3, math.NaN(), 0.1, math.Inf(1), 0.2})
	if st.n != 3 {
		t.Errorf("Expected 3 finite scores, got: %d", st.n)
	}
	if math.Abs(st.mean-0.2) > 1e-12 {
		t.Errorf("Expected mean 0.2, got: %g", st.mean)
	}
	if st.median != 0.2 {
		t.Errorf("Expected median 0.2, got: %g", st.median)
	}

	st = newScoreStats(nil)
	if st.n != 0 || !math.IsNaN(st.mean) {
		t.Errorf("Expected no statistics, got: %+v", st)
	}
}

func TestReadSummariesOrder(t *testing.T) {
	files := []string{smallMzid, smallMzid, smallMzid}
	all, err := readSummaries(context.Background(), files, 2)
	if err != nil {
		t.Fatalf("readSummaries: %v", err)
	}
	if len(all) != len(files) {
		t.Fatalf("Expected %d results, got: %d", len(files), len(all))
	}
	for i := range all {
		if diff := cmp.Diff(all[0].Idents(), all[i].Idents()); diff != "" {
			t.Errorf("file %d differs (-want +got):\n%s", i, diff)
		}
	}

	_, err = readSummaries(context.Background(), []string{smallMzid, "no_such_file.mzid"}, 1)
	if err == nil {
		t.Errorf("Expected error for missing file, got nil")
	}
}

func TestRebuildCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rebuilt.mzid")
	rootCmd.SetArgs([]string{"rebuild", smallMzid, out})
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`id="DBSeq_1"`)) {
		t.Errorf("Expected canonical sequence ids in output")
	}
}

func TestStatsCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"stats", smallMzid})
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("stats: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header and one line, got: %q", buf.String())
	}
	if !strings.HasPrefix(lines[1], "msgf_small.mzid\t3\t") {
		t.Errorf("Unexpected stats line: %q", lines[1])
	}
}
