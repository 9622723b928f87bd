package evaluation

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MeetsMinimum compares a declared version against a required minimum by
// numeric dot-separated components. Leading ^ and ~ are ignored on the
// declared side. When all shared components are equal the declared version
// must have at least as many components. Anything that does not parse as
// integers fails closed.
func MeetsMinimum(current, required string) bool {
	cur, ok := parseComponents(strings.TrimLeft(current, "^~"))
	if !ok {
		return false
	}
	req, ok := parseComponents(required)
	if !ok {
		return false
	}

	for i := 0; i < len(cur) && i < len(req); i++ {
		if cur[i] > req[i] {
			return true
		}
		if cur[i] < req[i] {
			return false
		}
	}
	return len(cur) >= len(req)
}

func parseComponents(v string) ([]int, bool) {
	parts := strings.Split(v, ".")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

// RangeAdmits reports whether a declared npm-style range accepts the minimum
// version. The second result is false when either side does not parse.
func RangeAdmits(declared, minimum string) (bool, bool) {
	c, err := semver.NewConstraint(declared)
	if err != nil {
		return false, false
	}
	v, err := semver.NewVersion(minimum)
	if err != nil {
		return false, false
	}
	return c.Check(v), true
}
