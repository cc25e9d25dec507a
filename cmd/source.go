package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/logger"
	"github.com/spigell/vc-sourcer/internal/sourcing"
	"github.com/spigell/vc-sourcer/internal/venture"
)

const (
	PromptShowTop             = "Show top results"
	PromptReport              = "Report by recommendation"
	PromptResultsToFile       = "Dump results to file"
	PromptAppendToExcludeFile = "Append results to exclude file"
	PromptExit                = "Exit"

	topResults = 10
)

var errExit = errors.New("exit requested")

var sourceCmd = &cobra.Command{
	Use:   "source [vc firm]",
	Short: "Source and rank startups for a venture firm",
	Args:  cobra.MaximumNArgs(1),
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, map[string]string{
			"exclude-file":      "exclude-file",
			"max-startups":      "max-startups",
			"minimum-score":     "minimum-score",
			"optimized":         "optimized",
			"exclude-portfolio": "exclude-portfolio",
			"disabled-filters":  "disable-filter",
		})
	},
	Run: func(cmd *cobra.Command, args []string) {
		source(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(sourceCmd)

	sourceCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for actions, dump results to a file and exit")
	sourceCmd.Flags().StringP("exclude-file", "e", "", "file with already reviewed startups to exclude. Default is unset.")
	sourceCmd.Flags().IntP("max-startups", "n", 0, "maximum number of startups to score")
	sourceCmd.Flags().Float64("minimum-score", 0, "drop results with a combined score below this value")
	sourceCmd.Flags().Bool("optimized", false, "embed shortened startup and firm texts")
	sourceCmd.Flags().Bool("exclude-portfolio", false, "drop startups the firm has already backed")
	sourceCmd.Flags().StringSlice("disable-filter", nil, "filter to skip, may be repeated")
}

func source(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting the vc-sourcer", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	vcFirm := firmFromArgs(config, args)
	if vcFirm == "" {
		logger.Fatal("vc firm is required", zap.String("hint", firmHint))
	}

	comps, err := buildComponents(ctx, config, logger)
	if err != nil {
		logger.Fatal("building components", zap.Error(err))
	}
	defer comps.Close(logger)

	agent := comps.agent(config, logger)

	logger.Info("starting the sourcing", zap.String("vc_firm", vcFirm))

	result, err := agent.SourceStartups(ctx, vcFirm, config.MaxStartups)
	if err != nil {
		logger.Fatal("sourcing startups", zap.Error(err))
	}

	if result.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no startups found"))
		return
	}

	logger.Info("sourcing finished",
		zap.Int("results", result.Len()),
		zap.Float64("processing_time", result.ProcessingTime),
	)

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := handleAction(PromptResultsToFile, logger, config, result); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	for {
		items := []string{PromptShowTop, PromptReport, PromptResultsToFile}
		if config.ExcludeFile != "" && result.Len() != 0 {
			items = append(items, PromptAppendToExcludeFile)
		}
		prompt := promptui.Select{
			Label: "What next?",
			Items: append(items, PromptExit),
		}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, config, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, result *venture.SourcingResult) error {
	switch action {
	case PromptShowTop:
		showTop(logger, result, topResults)
		return nil
	case PromptReport:
		return sourcing.Report(os.Stdout, result)
	case PromptResultsToFile:
		filename, err := result.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(logger, config.ExcludeFile, result)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showTop(logger *zap.Logger, result *venture.SourcingResult, n int) {
	for i, r := range result.Results {
		if i == n {
			break
		}
		logger.Info(r.CompanyName,
			zap.Int("rank", i+1),
			zap.String("recommendation", r.Recommendation),
			zap.Float64("score", r.FitMetrics.OverallScore),
			zap.Float64("fit", r.FitMetrics.FitScore),
			zap.Float64("quality", r.FitMetrics.QualityScore),
			zap.Float64("portfolio_fit", r.FitMetrics.PortfolioFitScore),
			zap.Strings("pros", r.Pros),
			zap.Strings("cons", r.Cons),
		)
	}
}

func appendToExcludeFile(logger *zap.Logger, path string, result *venture.SourcingResult) error {
	reviewed, err := venture.ReviewedFromFile(path)
	if err != nil {
		return err
	}

	reviewed.Append(result.ToReviewed())

	if err := reviewed.ToFile(path); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("startups", result.Len()))
	return nil
}
