// Copyright 2018 Rob Marissen.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/524D/mzidtool/internal/config"
	"github.com/524D/mzidtool/internal/cv"
	"github.com/524D/mzidtool/internal/export"
	"github.com/524D/mzidtool/internal/identdata"
	"github.com/524D/mzidtool/internal/metrics"
	"github.com/524D/mzidtool/internal/mzidentml"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Program name and version
const progName = "mzidtool"

var progVersion = `Unknown`

// Command line parameters
var (
	configFile string
	logLevel   string
	workers    int
	outFile    string
	format     string
	prune      bool
	scoreTerm  string
)

var rootCmd = &cobra.Command{
	Use:   progName,
	Short: "Read, rebuild, re-rank and summarize mzIdentML files",
	Long: `mzidtool works on mzIdentML peptide identification files.

Commands:
  summary  - Write one line per peptide-spectrum match as TSV or SQLite
  rebuild  - Read a complete file, deduplicate its sequences and write it back
  rerank   - Re-rank the items of each spectrum by a score
  stats    - Print score statistics per file

Gzip compressed input is detected automatically.`,
	Version:       progVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var summaryCmd = &cobra.Command{
	Use:   "summary FILE...",
	Short: "Write the identifications of one or more files as a table",
	Long: `Read the identifications of each file with the streaming reader and
write them as one table. Files are read in parallel, rows are written in
the order of the files on the command line.

Examples:
  mzidtool summary -o psm.tsv yeast.mzid human.mzid.gz
  mzidtool summary --format sqlite -o psm.db yeast.mzid`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummary,
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild IN OUT",
	Short: "Read a complete file and write it with canonical ids",
	Args:  cobra.ExactArgs(2),
	RunE:  runRebuild,
}

var rerankCmd = &cobra.Command{
	Use:   "rerank IN OUT",
	Short: "Re-rank the items of each spectrum identification result",
	Long: `Rank the items of each result by a score where lower is better, e.g.
MS:1002052 (MS-GF:SpecEValue). Items with equal scores share a rank.
With --prune only the best items of each result are kept.`,
	Args: cobra.ExactArgs(2),
	RunE: runRerank,
}

var statsCmd = &cobra.Command{
	Use:   "stats FILE...",
	Short: "Print the number of identifications and score statistics",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config `file`")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "number of files read in parallel")

	summaryCmd.Flags().StringVarP(&outFile, "output", "o", "", "output `file` (default stdout for tsv)")
	summaryCmd.Flags().StringVar(&format, "format", "", "tsv or sqlite")

	rerankCmd.Flags().BoolVar(&prune, "prune", false, "keep only the best items of each result")
	rerankCmd.Flags().StringVar(&scoreTerm, "score", "", "term id of the score")

	rootCmd.AddCommand(summaryCmd, rebuildCmd, rerankCmd, statsCmd)
}

// loadConfig reads the config file and applies the flags that were set
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return cfg, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if format != "" {
		cfg.Export.Format = format
	}
	if scoreTerm != "" {
		cfg.Rerank.ScoreTerm = scoreTerm
	}
	if prune {
		cfg.Rerank.Prune = true
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	lvl, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	return cfg, logger, nil
}

// writeMetrics writes the metrics file if one is configured
func writeMetrics(cfg config.Config, logger *slog.Logger) {
	if cfg.Metrics.Textfile == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Warn("writing metrics failed", "file", cfg.Metrics.Textfile, "err", err)
	}
}

// readSummaries reads the files with at most n concurrent readers. The
// result has the same order as files.
func readSummaries(ctx context.Context, files []string, n int) ([]mzidentml.MzIdentML, error) {
	res := make([]mzidentml.MzIdentML, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(n)
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rc, err := mzidentml.Open(name)
			if err != nil {
				return err
			}
			defer rc.Close()
			m, err := mzidentml.Read(rc)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			res[i] = m
			return nil
		})
	}
	return res, g.Wait()
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer writeMetrics(cfg, logger)

	var w io.Writer = os.Stdout
	if cfg.Export.Format == "sqlite" {
		if outFile == "" {
			return fmt.Errorf("summary: --output is required for sqlite")
		}
	} else if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	ctx := cmd.Context()
	all, err := readSummaries(ctx, args, cfg.Workers)
	if err != nil {
		return err
	}
	sink, err := export.Open(ctx, cfg.Export.Format, w, outFile, cfg.Export.Table)
	if err != nil {
		return err
	}
	n := 0
	for i, m := range all {
		source := filepath.Base(args[i])
		if m.IsFixedPeakList() {
			logger.Debug("spectra are referenced by index", "file", source)
		}
		for _, id := range m.Idents() {
			if err := sink.Write(source, id); err != nil {
				sink.Close()
				return err
			}
			n++
		}
		logger.Info("read identifications", "file", source, "count", m.NumIdents())
	}
	if err := sink.Close(); err != nil {
		return err
	}
	logger.Info("summary written", "rows", n, "format", cfg.Export.Format)
	return nil
}

// readGraph reads a complete document
func readGraph(name string, logger *slog.Logger) (*identdata.IdentData, error) {
	rc, err := mzidentml.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	d, err := identdata.Read(rc, identdata.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

// writeGraph writes d to the file name
func writeGraph(d *identdata.IdentData, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runRebuild(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer writeMetrics(cfg, logger)

	d, err := readGraph(args[0], logger)
	if err != nil {
		return err
	}
	d.Rebuild()
	logger.Info("rebuilt",
		"sequences", d.DBSequences.Len(),
		"peptides", d.Peptides.Len(),
		"evidence", d.PeptideEvidences.Len())
	return writeGraph(d, args[1])
}

func runRerank(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer writeMetrics(cfg, logger)

	d, err := readGraph(args[0], logger)
	if err != nil {
		return err
	}
	score := identdata.TermScore(cv.TermID(cfg.Rerank.ScoreTerm))
	for _, l := range d.SpectrumIdentificationLists.Items() {
		if cfg.Rerank.Prune {
			l.PruneToBest(score)
		} else {
			l.ReRank(score)
		}
		logger.Debug("re-ranked", "list", l.ID, "results", l.Results.Len())
	}
	return writeGraph(d, args[1])
}

// scoreStats holds statistics of the finite scores of one file
type scoreStats struct {
	n                    int
	mean, stdDev, median float64
}

func newScoreStats(scores []float64) scoreStats {
	s := make([]float64, 0, len(scores))
	for _, v := range scores {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			s = append(s, v)
		}
	}
	st := scoreStats{n: len(s), mean: math.NaN(), stdDev: math.NaN(), median: math.NaN()}
	if len(s) == 0 {
		return st
	}
	sort.Float64s(s)
	st.mean, st.stdDev = stat.MeanStdDev(s, nil)
	st.median = stat.Quantile(0.5, stat.Empirical, s, nil)
	return st
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer writeMetrics(cfg, logger)

	all, err := readSummaries(cmd.Context(), args, cfg.Workers)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "file\tidents\tscored\tmean\tstddev\tmedian\n")
	for i, m := range all {
		scores := make([]float64, 0, m.NumIdents())
		for _, id := range m.Idents() {
			scores = append(scores, id.SpecEValue)
		}
		st := newScoreStats(scores)
		fmt.Fprintf(out, "%s\t%d\t%d\t%g\t%g\t%g\n",
			filepath.Base(args[i]), m.NumIdents(), st.n, st.mean, st.stdDev, st.median)
	}
	return nil
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("%s: %v", progName, err)
	}
}
