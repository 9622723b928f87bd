package inspect

import (
	"fmt"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
)

const (
	RecommendTypeScript = "Configure TypeScript for the project"
	RecommendStructure  = "Implement the folder structure defined by the specifications"
)

// RecommendationGenerator derives the action list from already computed
// sections. It performs no I/O.
type RecommendationGenerator struct{}

// NewRecommendationGenerator creates a new RecommendationGenerator.
func NewRecommendationGenerator() *RecommendationGenerator {
	return &RecommendationGenerator{}
}

func (g *RecommendationGenerator) Generate(tech evaluation.TechStackSection, arch evaluation.ArchitectureSection, gaps evaluation.GapSection) evaluation.RecommendationSection {
	section := evaluation.RecommendationSection{
		ImmediateActions:         []string{},
		ShortTermImprovements:    []string{},
		LongTermEnhancements:     []string{},
		ArchitectureSuggestions:  []string{},
		PerformanceOptimizations: []string{},
		SecurityEnhancements:     []string{},
	}

	if !tech.TypeScriptUsage {
		section.ImmediateActions = append(section.ImmediateActions, RecommendTypeScript)
	}
	if arch.Structure == nil || len(arch.Structure.SrcStructure) == 0 {
		section.ImmediateActions = append(section.ImmediateActions, RecommendStructure)
	}
	for _, req := range gaps.CriticalMissing {
		section.ImmediateActions = append(section.ImmediateActions, fmt.Sprintf("Implement: %s", req))
	}

	return section
}
