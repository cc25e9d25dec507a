package venture

import "time"

const (
	AnalysisStartups = "startup_sourcing"
	AnalysisTalent   = "talent_sourcing"
)

// TalentProfile is a person found for a portfolio company on one platform.
type TalentProfile struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Platform     string   `json:"platform"`
	ProfileURL   string   `json:"profile_url"`
	Experience   string   `json:"experience"`
	Education    string   `json:"education,omitempty"`
	Location     string   `json:"location"`
	Endorsements int      `json:"endorsements,omitempty"`
	Connections  int      `json:"connections,omitempty"`
	MatchScore   float64  `json:"match_score"`
	Pros         []string `json:"pros"`
	Cons         []string `json:"cons"`
}

type TalentResult struct {
	VCFirm             string           `json:"vc_firm"`
	AnalysisType       string           `json:"analysis_type"`
	PortfolioCompanies []string         `json:"portfolio_companies"`
	Results            []*TalentProfile `json:"results"`
	ProcessingTime     float64          `json:"processing_time"`
	Timestamp          time.Time        `json:"timestamp"`
}

func (r *TalentResult) Len() int {
	return len(r.Results)
}

func (r *TalentResult) DumpToTmpFile() (string, error) {
	return dumpToTmpFile("talent_*.json", r)
}

// Analysis combines startup and talent sourcing for one firm. Each section
// keeps the top results and the total found.
type Analysis struct {
	VCFirm    string         `json:"vc_firm"`
	Timestamp time.Time      `json:"analysis_timestamp"`
	Startups  StartupSection `json:"startup_sourcing"`
	Talent    TalentSection  `json:"talent_sourcing"`
}

type StartupSection struct {
	PortfolioCompanies []string  `json:"portfolio_companies"`
	TotalFound         int       `json:"total_startups_found"`
	ProcessingTime     float64   `json:"processing_time"`
	Results            []*Result `json:"results"`
}

type TalentSection struct {
	PortfolioCompanies []string         `json:"portfolio_companies"`
	TotalFound         int              `json:"total_talent_found"`
	ProcessingTime     float64          `json:"processing_time"`
	Results            []*TalentProfile `json:"results"`
}

func (a *Analysis) DumpToTmpFile() (string, error) {
	return dumpToTmpFile("analysis_*.json", a)
}
