package secrets

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/zricethezav/gitleaks/v8/detect"
)

// ImportGitleaksRules adapts rules from the Gitleaks default config
// into custom Patterns for a Registry. With no ids, every importable
// rule is returned; otherwise only the named rule IDs. Rules whose
// regex does not compile under Go's stdlib engine are skipped rather
// than failing the import, since the Gitleaks corpus is curated
// upstream and individual rules carry no local configuration.
//
// This is the escape hatch for operators who want coverage beyond the
// builtin shapes without writing their own regexes.
func ImportGitleaksRules(ids ...string) ([]Pattern, error) {
	detector, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("load gitleaks config: %w", err)
	}

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	var out []Pattern
	for ruleID, rule := range detector.Config.Rules {
		if len(want) > 0 {
			if _, ok := want[ruleID]; !ok {
				continue
			}
		}
		if rule.Regex == nil {
			continue
		}
		expr := rule.Regex.String()
		if _, err := regexp.Compile(expr); err != nil {
			continue
		}
		out = append(out, Pattern{
			Name:   ruleID,
			Expr:   expr,
			Origin: OriginCustom,
		})
	}

	// Map iteration order is random; registration order must not be.
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}
