package inspect

import (
	"strings"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
)

// BusinessInspector records which plan and pricing tokens appear anywhere in
// the scanned sources. It reports the tokens themselves, not a score.
type BusinessInspector struct{}

// NewBusinessInspector creates a new BusinessInspector.
func NewBusinessInspector() *BusinessInspector {
	return &BusinessInspector{}
}

func (b *BusinessInspector) Inspect(rc *RunContext) evaluation.BusinessSection {
	rules := rc.Catalog.Business
	section := evaluation.BusinessSection{
		FreemiumPlans:    make(map[string]bool),
		PricingStructure: make(map[string]bool),
	}

	plans := lowerAll(rules.Plans)
	pricing := lowerAll(rules.Pricing)

	for _, path := range rc.Workspace.Files(FileQuery{Patterns: rules.Patterns}) {
		res := rc.Read(path)
		if !res.OK() {
			continue
		}
		text := strings.ToLower(res.Text)
		for _, token := range plans {
			if strings.Contains(text, token) {
				section.FreemiumPlans[token] = true
			}
		}
		for _, token := range pricing {
			if strings.Contains(text, token) {
				section.PricingStructure[token] = true
			}
		}
	}

	return section
}
