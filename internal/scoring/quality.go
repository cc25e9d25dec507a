package scoring

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/venture"
)

// Year used for company age. Scores stay reproducible across runs.
const ReferenceYear = 2024

const (
	founderWeight = 0.6
	companyWeight = 0.25
	teamWeight    = 0.15
)

var yearsRe = regexp.MustCompile(`(\d+)\s*(?:years?|yrs?)`)

// FounderBreakdown explains one founder's contribution.
type FounderBreakdown struct {
	Name            string  `json:"name"`
	OverallScore    float64 `json:"overall_score"`
	ExperienceScore float64 `json:"experience_score"`
	EducationScore  float64 `json:"education_score"`
	HonorsScore     float64 `json:"honors_score"`
	NetworkScore    float64 `json:"network_score"`
	TitleScore      float64 `json:"title_score"`
}

type QualityBreakdown struct {
	Startup          string             `json:"startup"`
	OverallScore     float64            `json:"overall_score"`
	Founders         []FounderBreakdown `json:"founders"`
	CompanyScore     float64            `json:"company_score"`
	TeamCompleteness float64            `json:"team_completeness"`
}

// QualityScorer rates a startup from its founders and company alone.
type QualityScorer struct {
	logger *zap.Logger
}

func NewQualityScorer(logger *zap.Logger) *QualityScorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QualityScorer{logger: logger}
}

// Score is 0.6 x mean founder score + 0.25 x company + 0.15 x team,
// rounded to two decimals. No founders scores 0.
func (q *QualityScorer) Score(startup *venture.StartupProfile) float64 {
	if startup == nil || len(startup.Founders) == 0 {
		return 0
	}

	sum := 0.0
	for _, f := range startup.Founders {
		sum += FounderQuality(f)
	}
	mean := sum / float64(len(startup.Founders))

	score := Round2(mean*founderWeight + CompanyQuality(startup.Company)*companyWeight + TeamCompleteness(startup.Founders)*teamWeight)

	q.logger.Debug("quality scored",
		zap.String("startup", startup.Company.Name),
		zap.Int("founders", len(startup.Founders)),
		zap.Float64("score", score),
	)
	return score
}

func (q *QualityScorer) Breakdown(startup *venture.StartupProfile) *QualityBreakdown {
	if startup == nil {
		return &QualityBreakdown{Founders: []FounderBreakdown{}}
	}

	b := &QualityBreakdown{
		Startup:          startup.Company.Name,
		OverallScore:     q.Score(startup),
		Founders:         make([]FounderBreakdown, 0, len(startup.Founders)),
		CompanyScore:     CompanyQuality(startup.Company),
		TeamCompleteness: TeamCompleteness(startup.Founders),
	}
	for _, f := range startup.Founders {
		b.Founders = append(b.Founders, FounderBreakdown{
			Name:            f.Name,
			OverallScore:    FounderQuality(f),
			ExperienceScore: ExperienceQuality(f.Experience),
			EducationScore:  EducationQuality(f.Education),
			HonorsScore:     HonorsQuality(f),
			NetworkScore:    NetworkStrength(f),
			TitleScore:      TitleQuality(f.Title),
		})
	}
	return b
}

// FounderQuality sums experience, education, honors and network, capped at 100.
func FounderQuality(f venture.FounderProfile) float64 {
	return min(100, ExperienceQuality(f.Experience)+EducationQuality(f.Education)+HonorsQuality(f)+NetworkStrength(f))
}

func ExperienceQuality(experience string) float64 {
	if experience == "" {
		return 0
	}
	text := strings.ToLower(experience)
	t := tables.Quality

	score := float64(12*countMatches(text, t.PrestigiousCompanies) + 3*countMatches(text, t.ExperienceKeywords))

	if strings.Contains(text, "years") || strings.Contains(text, "yr") {
		years := -1
		for _, m := range yearsRe.FindAllStringSubmatch(text, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n > years {
				years = n
			}
		}
		switch {
		case years >= 10:
			score += 15
		case years >= 5:
			score += 12
		case years >= 3:
			score += 8
		case years >= 1:
			score += 4
		}
	}
	return min(35, score)
}

func EducationQuality(education string) float64 {
	if education == "" {
		return 0
	}
	text := strings.ToLower(education)
	t := tables.Quality

	score := float64(12*countMatches(text, t.Universities) + 8*countMatches(text, t.Degrees) + 3*countMatches(text, t.Fields))
	return min(20, score)
}

// HonorsQuality adds honor points found in experience and again in
// education, plus 10 for a "dr." name. Capped at 30.
func HonorsQuality(f venture.FounderProfile) float64 {
	score := 0
	for _, text := range []string{f.Experience, f.Education} {
		if text == "" {
			continue
		}
		lower := strings.ToLower(text)
		for honor, points := range tables.Quality.Honors {
			if strings.Contains(lower, honor) {
				score += points
			}
		}
	}
	if strings.Contains(strings.ToLower(f.Name), "dr.") {
		score += 10
	}
	return min(30, float64(score))
}

func NetworkStrength(f venture.FounderProfile) float64 {
	score := 0.0

	switch c := f.LinkedInConnections; {
	case c > 1000:
		score += 10
	case c > 500:
		score += 8
	case c > 200:
		score += 6
	case c > 100:
		score += 4
	}

	switch e := f.Endorsements; {
	case e > 50:
		score += 5
	case e > 20:
		score += 4
	case e > 10:
		score += 3
	}
	return min(15, score)
}

// TitleQuality is reported in breakdowns only and does not feed the founder score.
func TitleQuality(title string) float64 {
	if title == "" {
		return 0
	}
	text := strings.ToLower(title)
	if containsAny(text, tables.Quality.FounderTitles) {
		return 15
	}
	if containsAny(text, tables.Quality.SeniorTitles) {
		return 8
	}
	return 0
}

func CompanyQuality(c venture.CompanyProfile) float64 {
	score := 0.0

	switch n := len([]rune(c.Description)); {
	case n > 200:
		score += 20
	case n > 100:
		score += 15
	case n > 50:
		score += 10
	}

	if c.Industry != "" && containsAny(strings.ToLower(c.Industry), tables.Quality.CompanyIndustries) {
		score += 15
	}
	if c.Location != "" && containsAny(strings.ToLower(c.Location), tables.Quality.CompanyLocations) {
		score += 10
	}

	if c.FoundedYear != 0 {
		switch age := ReferenceYear - c.FoundedYear; {
		case age <= 3:
			score += 15
		case age <= 5:
			score += 10
		case age <= 10:
			score += 5
		}
	}
	return min(100, score)
}

// TeamCompleteness rewards founder count, distinct C-level roles and
// coverage of the ceo/cto/cpo trio.
func TeamCompleteness(founders []venture.FounderProfile) float64 {
	score := 0.0

	switch n := len(founders); {
	case n >= 3:
		score += 30
	case n == 2:
		score += 25
	case n == 1:
		score += 15
	}

	roles := make(map[string]struct{})
	for _, f := range founders {
		if role := inferRole(f.Title); role != "" {
			roles[role] = struct{}{}
		}
	}

	switch n := len(roles); {
	case n >= 3:
		score += 40
	case n == 2:
		score += 30
	case n == 1:
		score += 20
	}

	key := 0
	for _, role := range []string{"ceo", "cto", "cpo"} {
		if _, ok := roles[role]; ok {
			key++
		}
	}
	switch {
	case key == 3:
		score += 30
	case key >= 2:
		score += 20
	case key >= 1:
		score += 10
	}
	return min(100, score)
}

// inferRole maps a title onto one role; earlier rules win.
func inferRole(title string) string {
	t := strings.ToLower(title)
	switch {
	case t == "":
		return ""
	case strings.Contains(t, "ceo") || strings.Contains(t, "founder"):
		return "ceo"
	case strings.Contains(t, "cto") || strings.Contains(t, "tech"):
		return "cto"
	case strings.Contains(t, "cpo") || strings.Contains(t, "product"):
		return "cpo"
	case strings.Contains(t, "cmo") || strings.Contains(t, "marketing"):
		return "cmo"
	case strings.Contains(t, "cfo") || strings.Contains(t, "finance"):
		return "cfo"
	}
	return ""
}
