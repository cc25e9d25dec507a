package scoring

import (
	"context"
	"errors"
	"sync"

	"github.com/spigell/vc-sourcer/internal/venture"
)

type stubEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	def     []float32
	err     error
	calls   int
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	if s.def == nil {
		return nil, errors.New("no vector")
	}
	return s.def, nil
}

func (s *stubEmbedder) Model() string { return "stub" }

func (s *stubEmbedder) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func sampleStartup() *venture.StartupProfile {
	return &venture.StartupProfile{
		Company: venture.CompanyProfile{
			Name:         "Vector Labs",
			Industry:     "AI/ML",
			FundingStage: "Seed",
			Location:     "San Francisco, CA",
		},
		Founders: []venture.FounderProfile{{
			Name:                "Jane Doe",
			Title:               "Founder & CEO",
			Experience:          "Former engineer at Google and founder",
			LinkedInConnections: 1200,
			Endorsements:        60,
		}},
	}
}

func sampleVC() *venture.VCProfile {
	return &venture.VCProfile{
		Name:             "Example Ventures",
		InvestmentThesis: "We back technical founders building AI products.",
		FocusAreas:       []string{"AI/ML", "Fintech"},
		InvestmentStages: []string{"Seed", "Series A"},
		GeographicFocus:  []string{"San Francisco"},
	}
}
