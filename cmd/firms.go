package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/catalog"
	"github.com/spigell/vc-sourcer/internal/logger"
	"github.com/spigell/vc-sourcer/internal/venture"
)

var firmsCmd = &cobra.Command{
	Use:   "firms [keyword...]",
	Short: "List catalog venture firms, optionally matching keywords",
	Run: func(_ *cobra.Command, args []string) {
		listFirms(args)
	},
}

func init() {
	rootCmd.AddCommand(firmsCmd)
}

func listFirms(keywords []string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	cat, err := catalog.Load(config.Catalog)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}

	var profiles []*venture.VCProfile
	if len(keywords) == 0 {
		profiles = cat.VCProfiles()
	} else {
		profiles = cat.SearchVCs(keywords)
	}
	if len(profiles) == 0 {
		logger.Info("no firms found", zap.Strings("keywords", keywords))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIRM\tFOCUS\tSTAGES")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, strings.Join(p.FocusAreas, ", "), strings.Join(p.InvestmentStages, ", "))
	}
	w.Flush()
}
