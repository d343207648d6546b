package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kalgen-innolab/dnacare/internal/assessment"
	"github.com/kalgen-innolab/dnacare/internal/questionnaire"
	"github.com/kalgen-innolab/dnacare/internal/scorer"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file-or-dir>...",
	Short: "Score many questionnaires concurrently",
	Long: `Score every answers file given, expanding directories to their .yaml,
.yml and .json files. Files are independent; one failure does not stop the
batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		save, _ := cmd.Flags().GetBool("save")
		lang, _ := cmd.Flags().GetString("lang")
		limit, _ := cmd.Flags().GetInt("limit")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		if concurrency > 0 {
			cfg.Batch.Concurrency = concurrency
		}

		files, err := collectAnswerFiles(args)
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

		results, err := processBatch(ctx, files, limit, cfg.Batch.Concurrency, func(ctx context.Context, a *questionnaire.Answers) (*assessment.Result, error) {
			return env.Service.Submit(ctx, a, lang)
		})
		if err != nil {
			return err
		}
		formatBatchResults(os.Stdout, results)
		return nil
	},
}

func init() {
	f := batchCmd.Flags()
	f.Bool("save", false, "persist submissions to the configured sinks")
	f.String("lang", "en", "report language stored with each submission")
	f.Int("limit", 0, "max number of files to process (0 = all)")
	f.Int("concurrency", 0, "parallel assessments (default from config)")
	rootCmd.AddCommand(batchCmd)
}

var answerExts = []string{".yaml", ".yml", ".json"}

// collectAnswerFiles expands directories one level deep and returns the
// paths sorted.
func collectAnswerFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, eris.Wrapf(err, "batch: stat %s", arg)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, eris.Wrapf(err, "batch: read dir %s", arg)
		}
		for _, e := range entries {
			if e.IsDir() || !slices.Contains(answerExts, strings.ToLower(filepath.Ext(e.Name()))) {
				continue
			}
			files = append(files, filepath.Join(arg, e.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}

// assessFunc is the callback signature for scoring one questionnaire.
type assessFunc func(ctx context.Context, a *questionnaire.Answers) (*assessment.Result, error)

// batchResult is the outcome for one file. Result may be set even when Err
// is, for a persist failure.
type batchResult struct {
	File   string
	Result *assessment.Result
	Err    error
}

// processBatch applies limit, then scores files concurrently. Results keep
// the input order.
func processBatch(ctx context.Context, files []string, limit, concurrency int, assess assessFunc) ([]batchResult, error) {
	if len(files) == 0 {
		zap.L().Info("no answer files found")
		return nil, nil
	}
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	if concurrency < 1 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("files", len(files)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	results := make([]batchResult, len(files))
	var succeeded, failed atomic.Int64

	for i, file := range files {
		g.Go(func() error {
			log := zap.L().With(zap.String("file", file))
			results[i].File = file

			if err := gctx.Err(); err != nil {
				results[i].Err = err
				failed.Add(1)
				return nil
			}

			answers, err := questionnaire.ReadFile(file)
			if err != nil {
				results[i].Err = err
				failed.Add(1)
				log.Error("read answers failed", zap.Error(err))
				return nil
			}

			res, err := assess(gctx, answers)
			results[i].Result = res
			results[i].Err = err
			if err != nil {
				failed.Add(1)
				log.Error("assessment failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			log.Debug("assessment complete", zap.String("id", res.ID))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return results, nil
}

// formatBatchResults writes one line per file with the four risk
// percentages or the error.
func formatBatchResults(out io.Writer, results []batchResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := []string{"FILE", "ID"}
	for _, c := range scorer.Categories {
		header = append(header, strings.ToUpper(string(c)))
	}
	header = append(header, "ERROR")
	_, _ = fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, r := range results {
		cols := []string{filepath.Base(r.File), ""}
		if r.Result != nil {
			cols[1] = truncateID(r.Result.ID)
			for _, c := range scorer.Categories {
				cols = append(cols, r.Result.Scores.PercentString(c))
			}
		} else {
			for range scorer.Categories {
				cols = append(cols, "-")
			}
		}
		errMsg := ""
		if r.Err != nil {
			errMsg = r.Err.Error()
			if len(errMsg) > 60 {
				errMsg = errMsg[:57] + "..."
			}
		}
		cols = append(cols, errMsg)
		_, _ = fmt.Fprintln(w, strings.Join(cols, "\t"))
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
