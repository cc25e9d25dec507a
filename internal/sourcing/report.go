package sourcing

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/spigell/vc-sourcer/internal/ranking"
	"github.com/spigell/vc-sourcer/internal/venture"
)

var tierOrder = []string{
	ranking.StrongMatch,
	ranking.GoodMatch,
	ranking.ModerateMatch,
	ranking.WeakMatch,
	ranking.ModerateConflict,
	ranking.HighConflict,
}

// Report writes results grouped by recommendation tier, best tiers first.
func Report(w io.Writer, result *venture.SourcingResult) error {
	groups := result.ReportByRecommendation()

	tiers := make([]string, 0, len(groups))
	for _, t := range tierOrder {
		if _, ok := groups[t]; ok {
			tiers = append(tiers, t)
		}
	}
	var extra []string
	for t := range groups {
		if !slices.Contains(tierOrder, t) {
			extra = append(extra, t)
		}
	}
	sort.Strings(extra)
	tiers = append(tiers, extra...)

	if _, err := fmt.Fprintf(w, "%s: %d startups, %d portfolio companies\n",
		result.VCFirm, result.Len(), len(result.PortfolioCompanies)); err != nil {
		return err
	}

	for _, tier := range tiers {
		if _, err := fmt.Fprintf(w, "\n%s (%d)\n", tier, len(groups[tier])); err != nil {
			return err
		}
		for _, row := range groups[tier] {
			line := fmt.Sprintf("  %-30s score=%s fit=%s quality=%s  %s",
				row["company"], row["score"], row["fit"], row["quality"],
				strings.Join(nonEmpty(row["industry"], row["stage"], row["location"]), " | "))
			if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
