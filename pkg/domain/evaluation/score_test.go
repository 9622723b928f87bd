package evaluation_test

import (
	"math"
	"testing"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		found    int
		keywords int
		want     evaluation.FeatureStatus
	}{
		{0, 3, evaluation.StatusNotImplemented},
		{1, 3, evaluation.StatusPartial},
		{2, 3, evaluation.StatusPartial},
		{3, 3, evaluation.StatusImplemented},
		{1, 2, evaluation.StatusPartial},
		{2, 2, evaluation.StatusImplemented},
		{4, 5, evaluation.StatusImplemented},
		{3, 5, evaluation.StatusPartial},
		{1, 1, evaluation.StatusImplemented},
		{1, 0, evaluation.StatusNotImplemented},
	}

	for _, tt := range tests {
		if got := evaluation.Classify(tt.found, tt.keywords); got != tt.want {
			t.Errorf("Classify(%d, %d) = %s, want %s", tt.found, tt.keywords, got, tt.want)
		}
	}
}

func TestFeatureStatus_Weight(t *testing.T) {
	if evaluation.StatusImplemented.Weight() != 1 {
		t.Error("implemented should weigh 1")
	}
	if evaluation.StatusPartial.Weight() != 0.5 {
		t.Error("partial should weigh 0.5")
	}
	if evaluation.StatusNotImplemented.Weight() != 0 {
		t.Error("not_implemented should weigh 0")
	}
}

func TestCategoryScore(t *testing.T) {
	score, ok := evaluation.CategoryScore(2, 1, 5)
	if !ok || score != 50 {
		t.Errorf("expected 50, got %v (%v)", score, ok)
	}
	if _, ok := evaluation.CategoryScore(0, 0, 0); ok {
		t.Error("empty category should have no score")
	}
}

func ptr(f float64) *float64 { return &f }

func TestOverallCompliance(t *testing.T) {
	features := evaluation.FeatureSection{
		catalog.CategoryAdminPanel:     {Score: ptr(50)},
		catalog.CategoryAuthentication: {Score: ptr(100)},
		catalog.CategoryLandingPage:    {Score: ptr(0)},
		"no_score":                     {},
	}

	got := evaluation.OverallCompliance(features)
	if math.Abs(got-50) > 1e-9 {
		t.Errorf("expected 50, got %v", got)
	}

	if evaluation.OverallCompliance(evaluation.FeatureSection{}) != 0 {
		t.Error("empty section should score 0")
	}
}

func TestSummarize(t *testing.T) {
	r := &evaluation.Record{
		Features: evaluation.FeatureSection{
			catalog.CategoryAdminPanel: {Score: ptr(25)},
		},
		MissingRequirements: evaluation.GapSection{CriticalMissing: []string{"React 19.1+"}},
		Recommendations:     evaluation.RecommendationSection{ImmediateActions: []string{"Implement: React 19.1+"}},
	}

	s := evaluation.Summarize(r)
	if s.OverallCompliance != 25 {
		t.Errorf("expected 25, got %v", s.OverallCompliance)
	}
	if len(s.CriticalIssues) != 1 || s.CriticalIssues[0] != "React 19.1+" {
		t.Errorf("unexpected critical issues: %v", s.CriticalIssues)
	}
	if len(s.NextSteps) != 1 {
		t.Errorf("unexpected next steps: %v", s.NextSteps)
	}
	if s.SecurityScore != 0 {
		t.Error("security score is never computed")
	}
}
