package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kalgen-innolab/dnacare/internal/config"
	"github.com/kalgen-innolab/dnacare/internal/scorer"
)

var scoringCmd = &cobra.Command{
	Use:   "scoring",
	Short: "Inspect scoring configurations",
}

var scoringShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active scoring config as YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sc, err := initScoring()
		if err != nil {
			return err
		}
		fmt.Printf("# hash: %s\n", scorer.ConfigHash(sc))
		return writeScoringYAML(sc)
	},
}

var scoringValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a scoring config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := scorer.Resolve(config.ScoringSettings{Variant: cfg.Scoring.Variant, File: args[0]})
		if err != nil {
			return eris.Wrap(err, "scoring validate")
		}
		fmt.Printf("%s: ok (variant %s, hash %s)\n", args[0], sc.Variant, scorer.ConfigHash(sc))
		return nil
	},
}

func writeScoringYAML(sc config.ScoringConfig) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return eris.Wrap(err, "scoring: encode yaml")
	}
	return enc.Close()
}

func init() {
	scoringCmd.AddCommand(scoringShowCmd)
	scoringCmd.AddCommand(scoringValidateCmd)
	rootCmd.AddCommand(scoringCmd)
}
