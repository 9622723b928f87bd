package inspect

import (
	"strings"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
)

// SecurityInspector checks auth-related files for security-practice markers.
// It produces one boolean per marker and leaves the score unset.
type SecurityInspector struct{}

// NewSecurityInspector creates a new SecurityInspector.
func NewSecurityInspector() *SecurityInspector {
	return &SecurityInspector{}
}

func (s *SecurityInspector) Inspect(rc *RunContext) evaluation.SecuritySection {
	rules := rc.Catalog.Security
	section := evaluation.SecuritySection{
		AuthenticationSecurity: make(map[string]bool, len(rules.Markers)),
		Vulnerabilities:        []string{},
		Recommendations:        []string{},
	}

	var texts []string
	for _, path := range rc.Workspace.Files(FileQuery{Patterns: rules.Patterns}) {
		res := rc.Read(path)
		if !res.OK() {
			continue
		}
		texts = append(texts, strings.ToLower(res.Text))
	}

	for _, marker := range rules.Markers {
		keywords := lowerAll(marker.Keywords)
		found := false
		for _, text := range texts {
			if containsAny(text, keywords) {
				found = true
				break
			}
		}
		section.AuthenticationSecurity[marker.Name] = found
	}

	return section
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
