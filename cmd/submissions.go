package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/kalgen-innolab/dnacare/internal/scorer"
	"github.com/kalgen-innolab/dnacare/internal/store"
	"github.com/kalgen-innolab/dnacare/internal/submission"
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Inspect and export stored submissions",
	Long:  "Commands for listing, viewing, exporting and summarizing stored submissions.",
}

// -- submissions list --

var submissionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored submissions, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		filter, err := submissionFilter(cmd)
		if err != nil {
			return err
		}
		recs, err := st.ListSubmissions(ctx, filter)
		if err != nil {
			return eris.Wrap(err, "submissions list")
		}

		if len(recs) == 0 {
			fmt.Fprintln(os.Stderr, "No submissions found.")
			return nil
		}

		formatSubmissionsList(os.Stdout, recs)
		return nil
	},
}

// -- submissions show --

var submissionsShowCmd = &cobra.Command{
	Use:   "show <submission-id>",
	Short: "Show the full stored record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		rec, err := st.GetSubmission(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "submissions show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

// -- submissions export --

var submissionsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored submissions as CSV, XLSX or JSON lines",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		if format == "xlsx" && output == "" {
			return eris.New("submissions export: --output is required for xlsx")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		filter, err := submissionFilter(cmd)
		if err != nil {
			return err
		}
		recs, err := st.ListSubmissions(ctx, filter)
		if err != nil {
			return eris.Wrap(err, "submissions export")
		}

		if format == "xlsx" {
			return submission.WriteXLSX(output, cfg.Submissions.XLSXSheet, recs)
		}

		out := io.Writer(os.Stdout)
		if output != "" {
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return eris.Wrap(err, "submissions export: create dir")
				}
			}
			f, err := os.Create(output)
			if err != nil {
				return eris.Wrap(err, "submissions export: create output")
			}
			defer f.Close() //nolint:errcheck
			out = f
		}
		return exportSubmissions(out, format, recs)
	},
}

// -- submissions stats --

var submissionsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mean risk per category",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		filter, err := submissionFilter(cmd)
		if err != nil {
			return err
		}
		stats, err := st.Stats(ctx, filter)
		if err != nil {
			return eris.Wrap(err, "submissions stats")
		}

		formatSubmissionStats(os.Stdout, stats)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{submissionsListCmd, submissionsExportCmd, submissionsStatsCmd} {
		c.Flags().Duration("since", 0, "only submissions newer than this (e.g. 24h, 168h)")
		c.Flags().String("filter-variant", "", "only submissions scored with this variant")
	}
	submissionsListCmd.Flags().Int("limit", 50, "max number of submissions to display")
	submissionsListCmd.Flags().Int("offset", 0, "skip this many submissions")
	submissionsExportCmd.Flags().String("format", "csv", "export format: csv, xlsx or jsonl")
	submissionsExportCmd.Flags().String("output", "", "output path (stdout when empty; required for xlsx)")
	submissionsExportCmd.Flags().Int("limit", 100000, "max number of submissions to export")

	submissionsCmd.AddCommand(submissionsListCmd)
	submissionsCmd.AddCommand(submissionsShowCmd)
	submissionsCmd.AddCommand(submissionsExportCmd)
	submissionsCmd.AddCommand(submissionsStatsCmd)
	rootCmd.AddCommand(submissionsCmd)
}

func openStore(cmd *cobra.Command) (store.Store, error) {
	ctx := cmd.Context()
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

func submissionFilter(cmd *cobra.Command) (store.Filter, error) {
	var f store.Filter
	if since, _ := cmd.Flags().GetDuration("since"); since > 0 {
		f.Since = time.Now().Add(-since)
	}
	f.Variant, _ = cmd.Flags().GetString("filter-variant")
	if fl := cmd.Flags().Lookup("limit"); fl != nil {
		f.Limit, _ = cmd.Flags().GetInt("limit")
	}
	if fl := cmd.Flags().Lookup("offset"); fl != nil {
		f.Offset, _ = cmd.Flags().GetInt("offset")
	}
	if f.Limit < 0 || f.Offset < 0 {
		return store.Filter{}, eris.New("limit and offset must be >= 0")
	}
	return f, nil
}

func exportSubmissions(out io.Writer, format string, recs []submission.Record) error {
	switch format {
	case "csv":
		return submission.WriteCSV(out, recs)
	case "jsonl":
		enc := json.NewEncoder(out)
		for i := range recs {
			if err := enc.Encode(&recs[i]); err != nil {
				return eris.Wrapf(err, "submissions export: encode %s", recs[i].ID)
			}
		}
		return nil
	default:
		return eris.Errorf("submissions export: unknown format %q", format)
	}
}

// formatSubmissionsList writes a tabular list of submissions to w.
func formatSubmissionsList(out io.Writer, recs []submission.Record) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := []string{"ID", "SUBMITTED", "NAME", "VARIANT"}
	for _, c := range scorer.Categories {
		header = append(header, strings.ToUpper(string(c)))
	}
	_, _ = fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, r := range recs {
		name := r.Answers.Personal.Name
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		cols := []string{
			truncateID(r.ID),
			r.SubmittedAt.Format("2006-01-02 15:04"),
			name,
			r.Variant,
		}
		for _, c := range scorer.Categories {
			cols = append(cols, r.Scores.PercentString(c))
		}
		_, _ = fmt.Fprintln(w, strings.Join(cols, "\t"))
	}
	_ = w.Flush()
}

// formatSubmissionStats writes aggregate stats to w.
func formatSubmissionStats(out io.Writer, s *store.Stats) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Submissions:\t%d\n", s.Count)
	for _, c := range scorer.Categories {
		mean, ok := s.Mean[c]
		if !ok {
			_, _ = fmt.Fprintf(w, "%s:\tN/A\t(0 scored)\n", c)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s:\t%.1f%%\t(%d scored)\n", c, mean*100, s.Scored[c])
	}
	_ = w.Flush()
}
