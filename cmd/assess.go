package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/kalgen-innolab/dnacare/internal/assessment"
	"github.com/kalgen-innolab/dnacare/internal/locale"
	"github.com/kalgen-innolab/dnacare/internal/questionnaire"
)

var assessCmd = &cobra.Command{
	Use:   "assess <answers-file>",
	Short: "Score one questionnaire",
	Long: `Score a questionnaire stored as YAML or JSON and print the localized
report.

Examples:
  # Print the report in Indonesian
  assess answers.yaml --lang id

  # Score with the linear variant and record the submission
  assess answers.json --variant linear --save`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

func init() {
	f := assessCmd.Flags()
	f.String("lang", "en", "report language (en or id, or an Accept-Language value)")
	f.String("format", "table", "output format: table or json")
	f.Bool("save", false, "persist the submission to the configured sinks")
	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	lang, _ := cmd.Flags().GetString("lang")
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")

	if format != "table" && format != "json" {
		return eris.Errorf("assess: unknown format %q", format)
	}

	answers, err := questionnaire.ReadFile(args[0])
	if err != nil {
		return err
	}

	mode := "score"
	if save {
		mode = "persist"
	}
	env, err := initEnv(ctx, mode)
	if err != nil {
		return err
	}
	defer env.Close()

	res, err := env.Service.Submit(ctx, answers, lang)
	if fields, ok := assessment.InvalidFields(err); ok {
		return eris.New(locale.Lookup(lang).MandatoryFields(fields))
	}
	var pe *assessment.PersistError
	if err != nil && !errors.As(err, &pe) {
		return eris.Wrap(err, "assess")
	}

	// A persist failure still prints the result before exiting non-zero.
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(res); encErr != nil {
			return eris.Wrap(encErr, "assess: encode result")
		}
	} else {
		formatReport(os.Stdout, res)
	}
	if pe != nil {
		fmt.Fprintln(os.Stderr, locale.Lookup(lang).Message(locale.MsgSaveError))
		return pe
	}
	return nil
}

// formatReport writes the localized report as plain text.
func formatReport(out io.Writer, res *assessment.Result) {
	rep := res.Report
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "%s\n", rep.Header)
	if res.ID != "" {
		_, _ = fmt.Fprintf(w, "ID:\t%s\n", res.ID)
	}
	_, _ = fmt.Fprintf(w, "%s\n\n", rep.Subtext)
	for _, r := range rep.Risks {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", r.Label, r.Display, r.Level)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(out, "\n%s\n", rep.RecommendHeader)
	if rep.Note != "" {
		_, _ = fmt.Fprintf(out, "%s\n", rep.Note)
	}
	for _, r := range rep.Recommendations {
		_, _ = fmt.Fprintf(out, "\n%s\n", r.Label)
		for _, a := range r.Advice {
			_, _ = fmt.Fprintf(out, "  - %s\n", a)
		}
		if r.Product != nil {
			_, _ = fmt.Fprintf(out, "  %s: %s\n", r.Product.Caption, r.Product.Link)
		}
	}
}
