package inspect

import (
	"strings"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
)

// FeatureDetector classifies every catalog feature by keyword coverage over
// the project's source files.
//
// A feature's coverage is the number of distinct keywords found in at least
// one source file, divided by the size of its keyword set. Files that contain
// any keyword are counted separately as evidence.
type FeatureDetector struct{}

// NewFeatureDetector creates a new FeatureDetector.
func NewFeatureDetector() *FeatureDetector {
	return &FeatureDetector{}
}

func (d *FeatureDetector) Detect(rc *RunContext) evaluation.FeatureSection {
	corpus := d.loadCorpus(rc)
	section := make(evaluation.FeatureSection, len(rc.Catalog.Categories))

	for _, cat := range rc.Catalog.Categories {
		status := evaluation.CategoryStatus{
			Implemented:          []catalog.Feature{},
			PartiallyImplemented: []catalog.Feature{},
			NotImplemented:       []catalog.Feature{},
			Evidence:             make(map[catalog.Feature]evaluation.FeatureEvidence),
		}

		for _, f := range cat.Features {
			rule := rc.Catalog.Rule(catalog.FeatureKey{Category: cat.Name, Feature: f.Name})
			result := evaluation.StatusNotImplemented
			if rule.Known() {
				ev := match(corpus, rule.Keywords)
				status.Evidence[f.Name] = ev
				result = evaluation.Classify(len(ev.KeywordsFound), ev.KeywordCount)
			}

			switch result {
			case evaluation.StatusImplemented:
				status.Implemented = append(status.Implemented, f.Name)
			case evaluation.StatusPartial:
				status.PartiallyImplemented = append(status.PartiallyImplemented, f.Name)
			default:
				status.NotImplemented = append(status.NotImplemented, f.Name)
			}
		}

		if score, ok := evaluation.CategoryScore(len(status.Implemented), len(status.PartiallyImplemented), len(cat.Features)); ok {
			status.Score = &score
		}
		if len(status.Evidence) == 0 {
			status.Evidence = nil
		}
		section[cat.Name] = status
	}

	return section
}

// loadCorpus reads every source file once and lowercases it.
func (d *FeatureDetector) loadCorpus(rc *RunContext) []string {
	files := rc.Workspace.Files(FileQuery{Patterns: rc.Catalog.Sources.Patterns, ApplyIgnores: true})
	corpus := make([]string, 0, len(files))
	for _, path := range files {
		res := rc.Read(path)
		if !res.OK() {
			continue
		}
		corpus = append(corpus, strings.ToLower(res.Text))
	}
	rc.Logger.Debug("source corpus loaded", "files", len(files), "usable", len(corpus))
	return corpus
}

func match(corpus []string, keywords []string) evaluation.FeatureEvidence {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	found := make([]bool, len(keywords))
	files := 0
	for _, text := range corpus {
		hit := false
		for i, kw := range lowered {
			if strings.Contains(text, kw) {
				found[i] = true
				hit = true
			}
		}
		if hit {
			files++
		}
	}

	ev := evaluation.FeatureEvidence{
		KeywordsFound: []string{},
		KeywordCount:  len(keywords),
		FilesMatched:  files,
	}
	for i, ok := range found {
		if ok {
			ev.KeywordsFound = append(ev.KeywordsFound, keywords[i])
		}
	}
	return ev
}
