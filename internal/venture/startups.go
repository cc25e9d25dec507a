package venture

import (
	"encoding/json"
	"os"
	"strings"
)

type Startups struct {
	Items []*StartupProfile
}

func (s *Startups) Len() int {
	return len(s.Items)
}

// Names returns company names in list order.
func (s *Startups) Names() []string {
	names := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		names = append(names, item.Company.Name)
	}
	return names
}

// Dedupe keeps the first startup for every normalized company name and returns the dropped names.
func (s *Startups) Dedupe() []string {
	seen := make(map[string]struct{}, len(s.Items))
	kept := s.Items[:0]
	var dropped []string
	for _, item := range s.Items {
		key := NormalizeName(item.Company.Name)
		if _, ok := seen[key]; ok {
			dropped = append(dropped, item.Company.Name)
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, item)
	}
	s.Items = kept
	return dropped
}

// Exclude removes startups whose normalized name is in targets, preserving order.
func (s *Startups) Exclude(targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		set[NormalizeName(t)] = struct{}{}
	}

	kept := s.Items[:0]
	var excluded []string
	for _, item := range s.Items {
		if _, ok := set[NormalizeName(item.Company.Name)]; ok {
			excluded = append(excluded, item.Company.Name)
			continue
		}
		kept = append(kept, item)
	}
	s.Items = kept
	return excluded
}

// RemoveUnnamed drops startups without a company name.
func (s *Startups) RemoveUnnamed() int {
	kept := s.Items[:0]
	dropped := 0
	for _, item := range s.Items {
		if item == nil || strings.TrimSpace(item.Company.Name) == "" {
			dropped++
			continue
		}
		kept = append(kept, item)
	}
	s.Items = kept
	return dropped
}

// NormalizeName is the key used to compare company names.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func dumpToTmpFile(pattern string, v any) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
