package evaluation

// FeatureStatus is the classification of one feature.
type FeatureStatus string

const (
	StatusImplemented    FeatureStatus = "implemented"
	StatusPartial        FeatureStatus = "partial"
	StatusNotImplemented FeatureStatus = "not_implemented"
)

// ImplementedThreshold is the share of a feature's keywords that must be
// found for the feature to count as implemented.
const ImplementedThreshold = 0.8

// Classify maps the number of distinct keywords found against the size of
// the keyword set onto a FeatureStatus.
func Classify(found, keywords int) FeatureStatus {
	if keywords <= 0 || found <= 0 {
		return StatusNotImplemented
	}
	if float64(found) >= float64(keywords)*ImplementedThreshold {
		return StatusImplemented
	}
	return StatusPartial
}

// Weight is the contribution of the status to a category score numerator.
func (s FeatureStatus) Weight() float64 {
	switch s {
	case StatusImplemented:
		return 1
	case StatusPartial:
		return 0.5
	default:
		return 0
	}
}
