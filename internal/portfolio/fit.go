package portfolio

import (
	"fmt"

	"github.com/spigell/vc-sourcer/internal/venture"
)

// EstimateFit favours industries the portfolio lacks. Industry counts are
// case-sensitive.
func EstimateFit(startup *venture.StartupProfile, companies []venture.PortfolioCompany) *venture.PortfolioFit {
	if len(companies) == 0 {
		return &venture.PortfolioFit{Score: 50, Reasoning: []string{"No portfolio data available"}}
	}

	counts := make(map[string]int)
	for _, pc := range companies {
		counts[pc.Industry]++
	}

	industry := ""
	if startup != nil {
		industry = startup.Company.Industry
	}

	count, ok := counts[industry]
	switch {
	case !ok:
		return &venture.PortfolioFit{Score: 75, Reasoning: []string{"New industry for portfolio"}}
	case count > 5:
		return &venture.PortfolioFit{Score: 30, Reasoning: []string{fmt.Sprintf("Industry over-represented (%d companies)", count)}}
	case count > 2:
		return &venture.PortfolioFit{Score: 50, Reasoning: []string{fmt.Sprintf("Industry well-represented (%d companies)", count)}}
	default:
		return &venture.PortfolioFit{Score: 65, Reasoning: []string{fmt.Sprintf("Industry under-represented (%d companies)", count)}}
	}
}
