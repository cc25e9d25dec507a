package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/catalog"
	"github.com/spigell/vc-sourcer/internal/logger"
	"github.com/spigell/vc-sourcer/internal/scoring"
)

var qualityCmd = &cobra.Command{
	Use:   "quality <startups file>",
	Short: "Print quality score breakdowns for startups from a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		quality(args[0])
	},
}

func init() {
	rootCmd.AddCommand(qualityCmd)
}

func quality(path string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	startups, err := catalog.LoadStartupsFile(path)
	if err != nil {
		logger.Fatal("reading startups", zap.String("path", path), zap.Error(err))
	}

	scorer := scoring.NewQualityScorer(logger)
	breakdowns := make([]*scoring.QualityBreakdown, 0, len(startups))
	for _, s := range startups {
		if s == nil {
			continue
		}
		breakdowns = append(breakdowns, scorer.Breakdown(s))
	}

	pretty, err := json.MarshalIndent(breakdowns, "", "  ")
	if err != nil {
		logger.Fatal("encoding breakdowns", zap.Error(err))
	}
	fmt.Println(string(pretty))
}
