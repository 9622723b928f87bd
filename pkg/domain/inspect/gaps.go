package inspect

import (
	"strings"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
)

// GapAnalyzer checks each requirement label against the project's
// configuration files. A label is satisfied when any of its words appears in
// any of those files. Feature detection results are not consulted.
type GapAnalyzer struct{}

// NewGapAnalyzer creates a new GapAnalyzer.
func NewGapAnalyzer() *GapAnalyzer {
	return &GapAnalyzer{}
}

func (g *GapAnalyzer) Analyze(rc *RunContext) evaluation.GapSection {
	var texts []string
	for _, file := range rc.Catalog.Files.GapFiles() {
		if file == "" || !rc.Exists(file) {
			continue
		}
		res := rc.Read(file)
		if !res.OK() {
			continue
		}
		texts = append(texts, strings.ToLower(res.Text))
	}

	return evaluation.GapSection{
		CriticalMissing:        missing(rc.Catalog.Requirements.Critical, texts),
		ImportantMissing:       missing(rc.Catalog.Requirements.Important, texts),
		NiceToHaveMissing:      []string{},
		ImplementationPriority: map[string]string{},
	}
}

func missing(labels []string, texts []string) []string {
	out := []string{}
	for _, label := range labels {
		if !satisfied(label, texts) {
			out = append(out, label)
		}
	}
	return out
}

func satisfied(label string, texts []string) bool {
	words := strings.Fields(strings.ToLower(label))
	for _, text := range texts {
		if containsAny(text, words) {
			return true
		}
	}
	return false
}
