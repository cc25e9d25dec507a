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

var portfolioCmd = &cobra.Command{
	Use:   "portfolio <vc firm>",
	Short: "Print the resolved portfolio of a venture firm",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		showPortfolio(args[0])
	},
}

func init() {
	rootCmd.AddCommand(portfolioCmd)
}

func showPortfolio(vcFirm string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// Embeddings are not needed to resolve a portfolio.
	config.Embedding = nil
	comps, err := buildComponents(ctx, config, logger)
	if err != nil {
		logger.Fatal("building components", zap.Error(err))
	}
	defer comps.Close(logger)

	summary, err := comps.agent(config, logger).Portfolio(ctx, vcFirm)
	if err != nil {
		logger.Fatal("resolving portfolio", zap.String("vc_firm", vcFirm), zap.Error(err))
	}

	pretty, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		logger.Fatal("encoding portfolio", zap.Error(err))
	}
	fmt.Println(string(pretty))
}
