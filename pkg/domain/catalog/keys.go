package catalog

// Category groups related features that are scored together.
type Category string

const (
	CategoryLandingPage    Category = "landing_page"
	CategoryAuthentication Category = "authentication"
	CategoryAdminPanel     Category = "admin_panel"
	CategoryResidentPanel  Category = "resident_panel"
	CategoryReceptionPanel Category = "reception_panel"
	CategoryAppAdminPanel  Category = "app_admin_panel"
	CategoryMultiTenant    Category = "multi_tenant"
	CategoryFreemiumModel  Category = "freemium_model"
)

// Feature names a single capability inside a category.
type Feature string

// FeatureKey addresses one feature of one category.
type FeatureKey struct {
	Category Category
	Feature  Feature
}

func (k FeatureKey) String() string {
	return string(k.Category) + "/" + string(k.Feature)
}

// FeatureRule is the detection rule resolved for a FeatureKey.
type FeatureRule struct {
	Key      FeatureKey
	Keywords []string
}

// Known reports whether the rule carries any keywords to search for.
// UnknownFeature and features declared without keywords are never detected.
func (r FeatureRule) Known() bool {
	return len(r.Keywords) > 0
}

// UnknownFeature is returned by Catalog.Rule for keys without a keyword table.
var UnknownFeature = FeatureRule{}
