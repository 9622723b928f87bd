package inspect

import (
	"strings"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
)

// UIInspector looks for the style framework, the component library directory
// and responsive / dark-mode markers in style and markup files.
type UIInspector struct{}

// NewUIInspector creates a new UIInspector.
func NewUIInspector() *UIInspector {
	return &UIInspector{}
}

func (u *UIInspector) Inspect(rc *RunContext) evaluation.UISection {
	rules := rc.Catalog.UI
	var section evaluation.UISection

	for _, cfg := range rules.StyleConfigs {
		if rc.Exists(cfg) {
			section.TailwindUsage = true
			break
		}
	}

	if rules.ComponentDir != "" && rc.Exists(rules.ComponentDir) {
		section.ShadcnComponents = true
		if entries, err := rc.Workspace.ReadDir(rules.ComponentDir); err == nil {
			for _, e := range entries {
				if e.Type().IsRegular() {
					section.ComponentStructure.UIComponents = append(section.ComponentStructure.UIComponents, e.Name())
				}
			}
		}
	}

	// Markers are case-sensitive: "sm:" and "dark:" are utility prefixes.
	for _, path := range rc.Workspace.Files(FileQuery{Patterns: rules.Patterns}) {
		if section.ResponsiveDesign && section.DarkModeSupport {
			break
		}
		res := rc.Read(path)
		if !res.OK() {
			continue
		}
		if !section.ResponsiveDesign && containsAny(res.Text, rules.Responsive) {
			section.ResponsiveDesign = true
		}
		if !section.DarkModeSupport && containsAny(res.Text, rules.DarkMode) {
			section.DarkModeSupport = true
		}
	}

	return section
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
