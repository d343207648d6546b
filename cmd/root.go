package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kalgen-innolab/dnacare/internal/config"
)

var (
	cfg *config.Config

	variantFlag       string
	scoringConfigFlag string
)

var rootCmd = &cobra.Command{
	Use:   "dnacare",
	Short: "Health questionnaire risk assessment",
	Long:  "Scores lifestyle questionnaires for metabolic, cardiovascular, diabetes and cancer risk, recommends follow-up screening and records submissions.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if variantFlag != "" {
			c.Scoring.Variant = variantFlag
		}
		if scoringConfigFlag != "" {
			c.Scoring.File = scoringConfigFlag
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&variantFlag, "variant", "", "scoring variant: calibrated or linear (default from config)")
	rootCmd.PersistentFlags().StringVar(&scoringConfigFlag, "scoring-config", "", "YAML file layered over the variant preset")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
