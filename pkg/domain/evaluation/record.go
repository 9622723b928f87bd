// Package evaluation defines the evaluation record produced by one run,
// its section types, and the scoring rules applied to it.
package evaluation

import (
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
)

const (
	EvaluatorVersion      = "2.0.0-armonia-specialized"
	SpecificationsVersion = "v15"
)

// Placeholder is a section or field that is declared in the report but not
// computed. It serializes as an empty object.
type Placeholder struct{}

// Record is the aggregate produced by a single run. Each section is written
// by exactly one component.
type Record struct {
	Metadata               Metadata              `json:"metadata"`
	ComplianceAnalysis     Placeholder           `json:"compliance_analysis"`
	ArchitectureEvaluation ArchitectureSection   `json:"architecture_evaluation"`
	TechnologyStack        TechStackSection      `json:"technology_stack_compliance"`
	Features               FeatureSection        `json:"feature_implementation_status"`
	UI                     UISection             `json:"ui_ux_evaluation"`
	Security               SecuritySection       `json:"security_compliance"`
	PerformanceAnalysis    Placeholder           `json:"performance_analysis"`
	DeploymentReadiness    Placeholder           `json:"deployment_readiness"`
	Business               BusinessSection       `json:"business_model_implementation"`
	CodeQuality            Placeholder           `json:"code_quality_armonia"`
	MissingRequirements    GapSection            `json:"missing_requirements"`
	Recommendations        RecommendationSection `json:"recommendations"`
}

// Metadata identifies the run.
type Metadata struct {
	Timestamp             time.Time `json:"timestamp"`
	ProjectPath           string    `json:"project_path"`
	ProjectID             string    `json:"project_id"`
	EvaluatorVersion      string    `json:"evaluator_version"`
	SpecificationsVersion string    `json:"specifications_version"`
}

// ArchitectureSection wraps the structure scan.
type ArchitectureSection struct {
	Structure *StructureSection `json:"structure,omitempty"`
}

// StructureSection is written by the structure scanner.
type StructureSection struct {
	SrcStructure       map[string]PathStatus `json:"src_structure"`
	PortalStructure    Placeholder           `json:"portal_structure"`
	ComplianceScore    int                   `json:"compliance_score"`
	MissingDirectories []string              `json:"missing_directories"`
	ExtraDirectories   []string              `json:"extra_directories"`
}

// PathStatus describes a manifest path that exists.
type PathStatus struct {
	Exists  bool       `json:"exists"`
	Type    string     `json:"type"`
	Content DirContent `json:"content"`
}

// DirContent compares the immediate children of a manifest path with the
// expected entries.
type DirContent struct {
	ExpectedItems []string `json:"expected_items,omitempty"`
	ActualItems   []string `json:"actual_items,omitempty"`
	MissingItems  []string `json:"missing_items,omitempty"`
	PresentItems  []string `json:"present_items,omitempty"`
	ExtraItems    []string `json:"extra_items,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// TechStackSection is written by the dependency inspector.
type TechStackSection struct {
	PackageJSONAnalysis map[string]TechStatus `json:"package_json_analysis"`
	Error               string                `json:"error,omitempty"`
	TypeScriptUsage     bool                  `json:"typescript_usage"`
	NextJSVersion       *string               `json:"next_js_version"`
	ReactVersion        *string               `json:"react_version"`
	DatabaseConfig      DatabaseConfig        `json:"database_config"`
	AuthImplementation  Placeholder           `json:"auth_implementation"`
	ComplianceScore     int                   `json:"compliance_score"`
	MissingTechnologies []string              `json:"missing_technologies"`
}

// TechStatus is the outcome of one technology check.
type TechStatus struct {
	Installed        bool   `json:"installed"`
	Version          string `json:"version,omitempty"`
	MeetsRequirement *bool  `json:"meets_requirement,omitempty"`
	// RangeAdmitsMinimum reports whether the declared range accepts the
	// minimum version. Absent when either side cannot be parsed.
	RangeAdmitsMinimum *bool `json:"range_admits_minimum,omitempty"`
}

// MarshalJSON always emits the version of an installed technology, even
// when the manifest declares it as an empty string.
func (t TechStatus) MarshalJSON() ([]byte, error) {
	type plain TechStatus
	if !t.Installed {
		return json.Marshal(plain(t))
	}
	return json.Marshal(struct {
		plain
		Version string `json:"version"`
	}{plain: plain(t), Version: t.Version})
}

// DatabaseConfig summarizes the schema-definition file. It serializes as {}
// when the file does not exist and as {"error": ...} when it cannot be read.
type DatabaseConfig struct {
	PrismaSchemaExists   bool   `json:"prisma_schema_exists"`
	PostgreSQLConfigured bool   `json:"postgresql_configured"`
	MultiTenantReady     bool   `json:"multi_tenant_ready"`
	SchemaContent        string `json:"schema_content"`
	Error                string `json:"error,omitempty"`
}

// MarshalJSON emits every marker once the schema file has been read.
func (d DatabaseConfig) MarshalJSON() ([]byte, error) {
	if !d.PrismaSchemaExists {
		return json.Marshal(struct {
			Error string `json:"error,omitempty"`
		}{d.Error})
	}
	type plain DatabaseConfig
	return json.Marshal(plain(d))
}

// FeatureSection maps each category to its feature classification.
type FeatureSection map[catalog.Category]CategoryStatus

// CategoryStatus is written once by the feature detector.
type CategoryStatus struct {
	Implemented          []catalog.Feature                   `json:"implemented"`
	PartiallyImplemented []catalog.Feature                   `json:"partially_implemented"`
	NotImplemented       []catalog.Feature                   `json:"not_implemented"`
	Score                *float64                            `json:"score,omitempty"`
	Evidence             map[catalog.Feature]FeatureEvidence `json:"evidence,omitempty"`
}

// FeatureEvidence records what the detector matched for one feature.
type FeatureEvidence struct {
	KeywordsFound []string `json:"keywords_found"`
	KeywordCount  int      `json:"keyword_count"`
	FilesMatched  int      `json:"files_matched"`
}

// UISection is written by the UI/style inspector.
type UISection struct {
	TailwindUsage          bool               `json:"tailwind_usage"`
	ShadcnComponents       bool               `json:"shadcn_components"`
	ResponsiveDesign       bool               `json:"responsive_design"`
	DarkModeSupport        bool               `json:"dark_mode_support"`
	AccessibilityFeatures  bool               `json:"accessibility_features"`
	ComponentStructure     ComponentStructure `json:"component_structure"`
	DesignSystemCompliance int                `json:"design_system_compliance"`
}

// ComponentStructure lists the files of the component directory.
type ComponentStructure struct {
	UIComponents []string `json:"ui_components,omitempty"`
}

// SecuritySection is written by the security inspector.
type SecuritySection struct {
	AuthenticationSecurity map[string]bool `json:"authentication_security"`
	DataProtection         Placeholder     `json:"data_protection"`
	InputValidation        Placeholder     `json:"input_validation"`
	APISecurity            Placeholder     `json:"api_security"`
	// SecurityScore is never computed; it is kept for downstream analysis.
	SecurityScore   int      `json:"security_score"`
	Vulnerabilities []string `json:"vulnerabilities"`
	Recommendations []string `json:"recommendations"`
}

// BusinessSection is written by the business-model inspector. The maps hold
// only the tokens that were found.
type BusinessSection struct {
	FreemiumPlans          map[string]bool `json:"freemium_plans"`
	PricingStructure       map[string]bool `json:"pricing_structure"`
	UsageLimitations       Placeholder     `json:"usage_limitations"`
	PaymentIntegration     Placeholder     `json:"payment_integration"`
	SubscriptionManagement Placeholder     `json:"subscription_management"`
	ImplementationScore    int             `json:"implementation_score"`
}

// GapSection is written by the gap analyzer.
type GapSection struct {
	CriticalMissing        []string          `json:"critical_missing"`
	ImportantMissing       []string          `json:"important_missing"`
	NiceToHaveMissing      []string          `json:"nice_to_have_missing"`
	ImplementationPriority map[string]string `json:"implementation_priority"`
}

// RecommendationSection is written by the recommendation generator.
type RecommendationSection struct {
	ImmediateActions         []string `json:"immediate_actions"`
	ShortTermImprovements    []string `json:"short_term_improvements"`
	LongTermEnhancements     []string `json:"long_term_enhancements"`
	ArchitectureSuggestions  []string `json:"architecture_suggestions"`
	PerformanceOptimizations []string `json:"performance_optimizations"`
	SecurityEnhancements     []string `json:"security_enhancements"`
}

// NewRecord returns an empty record for a run started at now.
func NewRecord(projectPath, projectID string, now time.Time) *Record {
	return &Record{
		Metadata: Metadata{
			Timestamp:             now,
			ProjectPath:           projectPath,
			ProjectID:             projectID,
			EvaluatorVersion:      EvaluatorVersion,
			SpecificationsVersion: SpecificationsVersion,
		},
		Features: FeatureSection{},
	}
}
