package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/logger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [vc firm]",
	Short: "Source startups and portfolio talent together and print the top matches",
	Args:  cobra.MaximumNArgs(1),
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, map[string]string{
			"max-startups": "max-startups",
			"max-talent":   "max-talent",
			"platforms":    "platforms",
		})
	},
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntP("max-startups", "n", 0, "maximum number of startups to score")
	analyzeCmd.Flags().IntP("max-talent", "t", 0, "maximum people per portfolio company")
	analyzeCmd.Flags().StringSlice("platforms", nil, "platforms to search, may be repeated")
	analyzeCmd.Flags().BoolP("dump", "o", false, "also dump the analysis to a temporary file")
}

func analyze(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	vcFirm := firmFromArgs(config, args)
	if vcFirm == "" {
		logger.Fatal("vc firm is required", zap.String("hint", firmHint))
	}

	comps, err := buildComponents(ctx, config, logger)
	if err != nil {
		logger.Fatal("building components", zap.Error(err))
	}
	defer comps.Close(logger)

	logger.Info("starting the analysis", zap.String("vc_firm", vcFirm), zap.String("version", version))

	analysis, err := comps.agent(config, logger).Analyze(ctx, vcFirm, config.MaxStartups, config.MaxTalent, config.Platforms)
	if err != nil {
		logger.Fatal("analyzing", zap.String("vc_firm", vcFirm), zap.Error(err))
	}

	logger.Info("analysis finished",
		zap.Int("startups", analysis.Startups.TotalFound),
		zap.Int("people", analysis.Talent.TotalFound),
	)

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		filename, err := analysis.DumpToTmpFile()
		if err != nil {
			logger.Fatal("dump analysis to file", zap.Error(err))
		}
		logger.Info("dumping analysis to file", zap.String("filename", filename))
	}

	pretty, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		logger.Fatal("encoding analysis", zap.Error(err))
	}
	fmt.Println(string(pretty))
}
