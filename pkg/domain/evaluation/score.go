package evaluation

import (
	"sort"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
)

// CategoryScore is (implemented + 0.5*partial) / total * 100. It returns
// false for a category without features.
func CategoryScore(implemented, partial, total int) (float64, bool) {
	if total <= 0 {
		return 0, false
	}
	return (float64(implemented) + float64(partial)*0.5) / float64(total) * 100, true
}

// OverallCompliance is the mean of all category scores. Categories without a
// score are skipped rather than counted as zero.
func OverallCompliance(features FeatureSection) float64 {
	keys := make([]catalog.Category, 0, len(features))
	for k := range features {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var sum float64
	n := 0
	for _, k := range keys {
		if s := features[k].Score; s != nil {
			sum += *s
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Summary is the condensed view printed on the console.
type Summary struct {
	OverallCompliance   float64  `json:"overall_compliance"`
	TechnologyReadiness float64  `json:"technology_readiness"`
	FeatureCompleteness float64  `json:"feature_completeness"`
	ArchitectureScore   float64  `json:"architecture_score"`
	SecurityScore       float64  `json:"security_score"`
	UIUXScore           float64  `json:"ui_ux_score"`
	BusinessModelScore  float64  `json:"business_model_score"`
	CriticalIssues      []string `json:"critical_issues"`
	NextSteps           []string `json:"next_steps"`
}

// Summarize condenses a record. Only the overall score, the critical issues
// and the immediate actions are derived; the other scores stay zero.
func Summarize(r *Record) Summary {
	s := Summary{
		OverallCompliance: OverallCompliance(r.Features),
		CriticalIssues:    append([]string{}, r.MissingRequirements.CriticalMissing...),
		NextSteps:         append([]string{}, r.Recommendations.ImmediateActions...),
	}
	return s
}
