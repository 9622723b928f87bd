package inspect_test

import (
	"reflect"
	"testing"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/inspect"
)

func TestUIInspector_Inspect(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"tailwind.config.ts":                 "export default {}",
		"src/components/ui/button.tsx":       "export function Button() {}",
		"src/components/ui/card.tsx":         "export function Card() {}",
		"src/components/ui/primitives/x.tsx": "",
		"src/app/page.tsx":                   `<div className="md:flex dark:bg-black" />`,
	})

	section := inspect.NewUIInspector().Inspect(rc)
	if !section.TailwindUsage || !section.ShadcnComponents {
		t.Errorf("expected tailwind and component library, got %+v", section)
	}
	if want := []string{"button.tsx", "card.tsx"}; !reflect.DeepEqual(section.ComponentStructure.UIComponents, want) {
		t.Errorf("UIComponents = %v, want %v", section.ComponentStructure.UIComponents, want)
	}
	if !section.ResponsiveDesign || !section.DarkModeSupport {
		t.Errorf("expected responsive and dark mode markers, got %+v", section)
	}
}

func TestUIInspector_MarkersAreCaseSensitive(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"src/app/page.tsx": `<div className="MD:flex DARK:bg-black" />`,
	})

	section := inspect.NewUIInspector().Inspect(rc)
	if section.ResponsiveDesign || section.DarkModeSupport {
		t.Errorf("expected no markers, got %+v", section)
	}
	if section.TailwindUsage || section.ShadcnComponents {
		t.Errorf("expected no style framework, got %+v", section)
	}
}

func TestSecurityInspector_Inspect(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"src/lib/auth.ts": "import bcrypt from 'bcrypt'\nexport const token = JWT.sign(payload)",
		"src/other.ts":    "import { z } from 'zod'",
	})

	section := inspect.NewSecurityInspector().Inspect(rc)
	want := map[string]bool{
		"bcrypt_usage":       true,
		"jwt_implementation": true,
		"input_validation":   false,
		"csrf_protection":    true,
		"rate_limiting":      false,
	}
	if !reflect.DeepEqual(section.AuthenticationSecurity, want) {
		t.Errorf("AuthenticationSecurity = %v, want %v", section.AuthenticationSecurity, want)
	}
	if section.SecurityScore != 0 {
		t.Errorf("security score should stay unset, got %d", section.SecurityScore)
	}
}

func TestSecurityInspector_NoAuthFiles(t *testing.T) {
	rc := newRunContext(t, nil)

	section := inspect.NewSecurityInspector().Inspect(rc)
	if len(section.AuthenticationSecurity) != len(rc.Catalog.Security.Markers) {
		t.Fatalf("expected one entry per marker, got %v", section.AuthenticationSecurity)
	}
	for name, ok := range section.AuthenticationSecurity {
		if ok {
			t.Errorf("%s should be false", name)
		}
	}
}

func TestBusinessInspector_Inspect(t *testing.T) {
	rc := newRunContext(t, map[string]string{
		"src/billing/plans.ts": "export const premium = { price: 10, provider: 'Stripe' }",
		"src/app/page.tsx":     "basic subscription paypal",
	})

	section := inspect.NewBusinessInspector().Inspect(rc)
	if want := map[string]bool{"premium": true}; !reflect.DeepEqual(section.FreemiumPlans, want) {
		t.Errorf("FreemiumPlans = %v, want %v", section.FreemiumPlans, want)
	}
	if want := map[string]bool{"price": true, "stripe": true}; !reflect.DeepEqual(section.PricingStructure, want) {
		t.Errorf("PricingStructure = %v, want %v", section.PricingStructure, want)
	}
}
