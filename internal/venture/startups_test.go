package venture

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func startupsNamed(names ...string) *Startups {
	s := &Startups{}
	for _, n := range names {
		s.Items = append(s.Items, &StartupProfile{Company: CompanyProfile{Name: n}})
	}
	return s
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	s := startupsNamed("AI Solutions 1", " ai solutions 1 ", "CloudWorks 1", "AI SOLUTIONS 1")

	dropped := s.Dedupe()

	if got := s.Names(); !reflect.DeepEqual(got, []string{"AI Solutions 1", "CloudWorks 1"}) {
		t.Fatalf("unexpected kept names: %v", got)
	}
	if len(dropped) != 2 {
		t.Fatalf("expected 2 dropped, got %v", dropped)
	}
}

func TestExcludePreservesOrder(t *testing.T) {
	s := startupsNamed("A", "B", "C", "D")

	excluded := s.Exclude([]string{"c", " a "})

	if !reflect.DeepEqual(excluded, []string{"A", "C"}) {
		t.Fatalf("unexpected excluded: %v", excluded)
	}
	if got := s.Names(); !reflect.DeepEqual(got, []string{"B", "D"}) {
		t.Fatalf("unexpected remaining: %v", got)
	}
	if s.Exclude(nil) != nil {
		t.Fatalf("expected nil for empty targets")
	}
}

func TestRemoveUnnamed(t *testing.T) {
	s := startupsNamed("A", "  ", "B")
	s.Items = append(s.Items, nil)

	if dropped := s.RemoveUnnamed(); dropped != 2 {
		t.Fatalf("expected 2 dropped, got %d", dropped)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 left, got %d", s.Len())
	}
}

func TestNewConflictReportHasAllKeys(t *testing.T) {
	data, err := json.Marshal(NewConflictReport())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"has_conflicts", "conflict_companies", "conflict_types", "severity"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("expected key %q in %s", key, data)
		}
	}
	if decoded["severity"] != SeverityNone {
		t.Fatalf("expected severity none, got %v", decoded["severity"])
	}
}

func TestReviewedFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviewed.json")

	empty, err := ReviewedFromFile(path)
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if len(empty.Items) != 0 {
		t.Fatalf("expected empty list")
	}

	result := &SourcingResult{
		VCFirm:    "Sequoia Capital",
		Timestamp: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Results: []*Result{
			{CompanyName: "AI Solutions 1", Recommendation: "Good Match - Worth considering"},
		},
	}
	empty.Append(result.ToReviewed())

	if err := empty.ToFile(path); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := ReviewedFromFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(loaded.Names(), []string{"AI Solutions 1"}) {
		t.Fatalf("unexpected names: %v", loaded.Names())
	}
	if loaded.Items[0].VCFirm != "Sequoia Capital" {
		t.Fatalf("unexpected firm: %q", loaded.Items[0].VCFirm)
	}

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if again, err := ReviewedFromFile(path); err != nil || len(again.Items) != 0 {
		t.Fatalf("expected empty list for empty file, got %v %v", again, err)
	}
}

func TestReportByRecommendation(t *testing.T) {
	result := &SourcingResult{Results: []*Result{
		{CompanyName: "A", Recommendation: "Strong Match - Highly recommend", FitMetrics: ResultMetrics{OverallScore: 81.5}},
		{CompanyName: "B", Recommendation: "Strong Match - Highly recommend"},
		{CompanyName: "C", Recommendation: "High Conflict - Avoid"},
	}}

	report := result.ReportByRecommendation()
	strong := report["Strong Match - Highly recommend"]
	if len(strong) != 2 {
		t.Fatalf("expected 2 strong matches, got %d", len(strong))
	}
	if strong[0]["score"] != "81.50" {
		t.Fatalf("unexpected score: %q", strong[0]["score"])
	}
	if len(report["High Conflict - Avoid"]) != 1 {
		t.Fatalf("expected conflict entry")
	}
}
