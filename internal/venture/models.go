package venture

import "time"

const (
	ConflictNameSimilarity = "name_similarity"
	ConflictIndustry       = "industry_conflict"
	ConflictBusinessModel  = "business_model_conflict"

	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityNone   = "none"
)

type CompanyProfile struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Website       string  `json:"website,omitempty"`
	Industry      string  `json:"industry,omitempty"`
	Location      string  `json:"location,omitempty"`
	Size          string  `json:"company_size,omitempty"`
	FoundedYear   int     `json:"founded_year,omitempty"`
	FundingStage  string  `json:"funding_stage,omitempty"`
	TotalFunding  float64 `json:"total_funding,omitempty"`
	LinkedInURL   string  `json:"linkedin_url,omitempty"`
	CrunchbaseURL string  `json:"crunchbase_url,omitempty"`
}

type FounderProfile struct {
	Name                string  `json:"name"`
	Title               string  `json:"title,omitempty"`
	Company             string  `json:"company,omitempty"`
	Location            string  `json:"location,omitempty"`
	Experience          string  `json:"experience,omitempty"`
	Education           string  `json:"education,omitempty"`
	LinkedInURL         string  `json:"linkedin_url,omitempty"`
	LinkedInConnections int     `json:"linkedin_connections,omitempty"`
	Endorsements        int     `json:"endorsements,omitempty"`
	ActivityScore       float64 `json:"activity_score,omitempty"`
}

// StartupProfile is a company with its founders. Score fields are filled in
// by the pipeline and are never inputs.
type StartupProfile struct {
	Company  CompanyProfile   `json:"company"`
	Founders []FounderProfile `json:"founders"`

	FitScore           float64         `json:"fit_score,omitempty"`
	QualityScore       float64         `json:"quality_score,omitempty"`
	MarketScore        float64         `json:"market_score,omitempty"`
	PortfolioConflicts *ConflictReport `json:"portfolio_conflicts,omitempty"`
	PortfolioFit       *PortfolioFit   `json:"portfolio_fit,omitempty"`

	ScrapedAt time.Time `json:"scraped_at,omitempty"`
	Source    string    `json:"source,omitempty"`
}

// VCProfile describes a venture firm. FundSize stays a string so values like "$35B+" survive.
type VCProfile struct {
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	Website            string   `json:"website,omitempty"`
	LinkedInURL        string   `json:"linkedin_url,omitempty"`
	InvestmentThesis   string   `json:"investment_thesis,omitempty"`
	FocusAreas         []string `json:"focus_areas"`
	InvestmentStages   []string `json:"investment_stages"`
	GeographicFocus    []string `json:"geographic_focus"`
	PortfolioCompanies []string `json:"portfolio_companies"`
	FundSize           string   `json:"fund_size,omitempty"`
}

type PortfolioCompany struct {
	Name        string `json:"name"`
	Industry    string `json:"industry,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Stage       string `json:"stage,omitempty"`
	Location    string `json:"location,omitempty"`
}

// FitMetrics is keyed by StartupID, which is the company display name.
// Two companies sharing a name collide.
type FitMetrics struct {
	StartupID           string    `json:"startup_id"`
	VCFirm              string    `json:"vc_firm"`
	OverallScore        float64   `json:"overall_score"`
	TextSimilarity      float64   `json:"text_similarity"`
	IndustryAlignment   float64   `json:"industry_alignment"`
	StageAlignment      float64   `json:"stage_alignment"`
	GeographicAlignment float64   `json:"geographic_alignment"`
	NetworkProximity    float64   `json:"network_proximity"`
	CalculatedAt        time.Time `json:"calculated_at"`
}

type ConflictReport struct {
	HasConflicts      bool     `json:"has_conflicts"`
	ConflictCompanies []string `json:"conflict_companies"`
	ConflictTypes     []string `json:"conflict_types"`
	Severity          string   `json:"severity"`
}

// NewConflictReport returns an empty report with every key populated.
func NewConflictReport() *ConflictReport {
	return &ConflictReport{
		ConflictCompanies: []string{},
		ConflictTypes:     []string{},
		Severity:          SeverityNone,
	}
}

type PortfolioFit struct {
	Score     float64  `json:"portfolio_fit_score"`
	Reasoning []string `json:"reasoning"`
}

type FounderSummary struct {
	Name                string `json:"name"`
	Title               string `json:"title"`
	Experience          string `json:"experience"`
	Education           string `json:"education"`
	LinkedInConnections int    `json:"linkedin_connections"`
	Endorsements        int    `json:"endorsements"`
	LinkedInURL         string `json:"linkedin_url"`
}

type ResultMetrics struct {
	OverallScore        float64         `json:"overall_score"`
	FitScore            float64         `json:"fit_score"`
	QualityScore        float64         `json:"quality_score"`
	PortfolioFitScore   float64         `json:"portfolio_fit_score"`
	PortfolioConflicts  *ConflictReport `json:"portfolio_conflicts"`
	TextSimilarity      float64         `json:"text_similarity"`
	IndustryAlignment   float64         `json:"industry_alignment"`
	StageAlignment      float64         `json:"stage_alignment"`
	GeographicAlignment float64         `json:"geographic_alignment"`
	NetworkProximity    float64         `json:"network_proximity"`
}

// Result is one ranked, annotated startup.
type Result struct {
	CompanyName              string           `json:"company_name"`
	Website                  string           `json:"website"`
	Industry                 string           `json:"industry"`
	Location                 string           `json:"location"`
	FundingStage             string           `json:"funding_stage"`
	ProductDescription       string           `json:"product_description"`
	Founders                 []FounderSummary `json:"founders"`
	FitMetrics               ResultMetrics    `json:"fit_metrics"`
	Recommendation           string           `json:"recommendation"`
	Pros                     []string         `json:"pros"`
	Cons                     []string         `json:"cons"`
	PortfolioConflictDetails *ConflictReport  `json:"portfolio_conflict_details"`
	PortfolioFitDetails      *PortfolioFit    `json:"portfolio_fit_details"`
}

type SourcingResult struct {
	VCFirm             string    `json:"vc_firm"`
	AnalysisType       string    `json:"analysis_type"`
	PortfolioCompanies []string  `json:"portfolio_companies"`
	Results            []*Result `json:"results"`
	ProcessingTime     float64   `json:"processing_time"`
	Timestamp          time.Time `json:"timestamp"`
}

// Summaries converts founders into their result representation.
func Summaries(founders []FounderProfile) []FounderSummary {
	out := make([]FounderSummary, 0, len(founders))
	for _, f := range founders {
		out = append(out, FounderSummary{
			Name:                f.Name,
			Title:               f.Title,
			Experience:          f.Experience,
			Education:           f.Education,
			LinkedInConnections: f.LinkedInConnections,
			Endorsements:        f.Endorsements,
			LinkedInURL:         f.LinkedInURL,
		})
	}
	return out
}
