package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/logger"
	"github.com/spigell/vc-sourcer/internal/venture"
)

var talentCmd = &cobra.Command{
	Use:   "talent [vc firm]",
	Short: "Find candidate talent for the portfolio companies of a venture firm",
	Args:  cobra.MaximumNArgs(1),
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, map[string]string{
			"max-talent": "max-talent",
			"platforms":  "platforms",
		})
	},
	Run: func(_ *cobra.Command, args []string) {
		talent(args)
	},
}

func init() {
	rootCmd.AddCommand(talentCmd)

	talentCmd.Flags().IntP("max-talent", "t", 0, "maximum people per portfolio company")
	talentCmd.Flags().StringSlice("platforms", nil, "platforms to search, may be repeated")
}

func talent(args []string) {
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

	// Talent search does not embed text.
	config.Embedding = nil
	comps, err := buildComponents(ctx, config, logger)
	if err != nil {
		logger.Fatal("building components", zap.Error(err))
	}
	defer comps.Close(logger)

	result, err := comps.agent(config, logger).SourceTalent(ctx, vcFirm, config.MaxTalent, config.Platforms)
	if err != nil {
		logger.Fatal("sourcing talent", zap.String("vc_firm", vcFirm), zap.Error(err))
	}

	logger.Info("talent sourcing finished",
		zap.Int("portfolio_companies", len(result.PortfolioCompanies)),
		zap.Int("people", result.Len()),
		zap.Float64("processing_time", result.ProcessingTime),
	)
	showTopTalent(logger, result, topResults)

	filename, err := result.DumpToTmpFile()
	if err != nil {
		logger.Fatal("dump results to file", zap.Error(err))
	}
	logger.Info("dumping result to file", zap.String("filename", filename))
}

func showTopTalent(logger *zap.Logger, result *venture.TalentResult, n int) {
	for i, p := range result.Results {
		if i == n {
			break
		}
		logger.Info(p.Name,
			zap.Int("rank", i+1),
			zap.String("title", p.Title),
			zap.String("company", p.Company),
			zap.String("platform", p.Platform),
			zap.Float64("match_score", p.MatchScore),
			zap.String("profile_url", p.ProfileURL),
		)
	}
}
