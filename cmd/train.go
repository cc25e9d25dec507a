package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/catalog"
	"github.com/spigell/vc-sourcer/internal/logger"
	"github.com/spigell/vc-sourcer/internal/scoring"
)

var trainCmd = &cobra.Command{
	Use:   "train <samples file>",
	Short: "Train the fit model from labeled startup samples",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		train(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().StringP("output", "o", "", "where to write the model (default is model.path from the config)")
}

func train(cmd *cobra.Command, path string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	output := cmd.Flag("output").Value.String()
	if output == "" && config.Model != nil {
		output = config.Model.Path
	}
	if output == "" {
		logger.Fatal("model output path is required", zap.String("hint", "pass --output or set model.path"))
	}

	samples, err := catalog.LoadSamples(path)
	if err != nil {
		logger.Fatal("reading samples", zap.String("path", path), zap.Error(err))
	}

	// Features come from the fixed-weight calculator so a stale model never feeds itself.
	config.Model = nil
	comps, err := buildComponents(ctx, config, logger)
	if err != nil {
		logger.Fatal("building components", zap.Error(err))
	}
	defer comps.Close(logger)

	x := make([][]float64, 0, len(samples))
	y := make([]float64, 0, len(samples))
	unknown := 0
	for _, s := range samples {
		vc, known := comps.catalog.VCProfile(s.VC)
		if !known {
			unknown++
		}
		x = append(x, comps.calculator.Features(ctx, s.Startup, vc))
		y = append(y, s.Score)
	}
	if unknown > 0 {
		logger.Warn("some samples use generic firm profiles", zap.Int("samples", unknown))
	}

	model, err := scoring.Train(x, y)
	if err != nil {
		logger.Fatal("training fit model", zap.Error(err))
	}

	if err := model.Save(output); err != nil {
		logger.Fatal("saving fit model", zap.String("path", output), zap.Error(err))
	}

	logger.Info("fit model trained",
		zap.String("path", output),
		zap.Int("samples", model.Samples),
		zap.Float64("intercept", model.Intercept),
		zap.Float64s("coefficients", model.Coefficients),
	)
}
