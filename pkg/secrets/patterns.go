package secrets

import (
	"fmt"
	"regexp"
	"strings"
)

// Origin records where a pattern came from.
type Origin string

const (
	// OriginBuiltin marks patterns shipped with leakgate.
	OriginBuiltin Origin = "builtin"

	// OriginCustom marks user-supplied patterns.
	OriginCustom Origin = "custom"
)

// Pattern is a named regular expression describing the shape of a credential.
type Pattern struct {
	// Name uniquely identifies the pattern and appears in redaction
	// markers and audit entries.
	Name string `koanf:"name" json:"name"`

	// Expr is the regex source.
	Expr string `koanf:"pattern" json:"pattern"`

	// Flags holds optional regex flags ("i", "m", "s"). The flags "g"
	// and "u" are accepted and ignored: find-all matching and Unicode
	// handling are implicit in Go's engine.
	Flags string `koanf:"flags" json:"flags,omitempty"`

	// Origin is builtin or custom.
	Origin Origin `json:"origin"`
}

// activePattern pairs a pattern with its compiled form.
type activePattern struct {
	Pattern
	re *regexp.Regexp
}

// Registry holds the final active pattern list: builtins first, then
// customs, with allowlisted names removed from both sets. A Registry is
// immutable after construction and safe for concurrent use.
type Registry struct {
	active []activePattern
}

// NewRegistry builds the active pattern set from the builtin patterns,
// the caller-supplied custom patterns, and an allowlist of pattern names
// to disable. Allowlist filtering is by exact case-sensitive name match
// and applies before compilation. Custom patterns compile here; an
// invalid regex or a duplicate name fails construction immediately, so
// a scan can never hit an uncompiled pattern.
func NewRegistry(custom []Pattern, allowlist []string) (*Registry, error) {
	excluded := make(map[string]struct{}, len(allowlist))
	for _, name := range allowlist {
		excluded[name] = struct{}{}
	}

	reg := &Registry{}
	seen := make(map[string]struct{})

	add := func(p Pattern, origin Origin) error {
		if _, skip := excluded[p.Name]; skip {
			return nil
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicatePattern, p.Name)
		}
		re, err := compilePattern(p)
		if err != nil {
			return err
		}
		seen[p.Name] = struct{}{}
		p.Origin = origin
		reg.active = append(reg.active, activePattern{Pattern: p, re: re})
		return nil
	}

	for _, p := range BuiltinPatterns() {
		if err := add(p, OriginBuiltin); err != nil {
			return nil, err
		}
	}
	for _, p := range custom {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: custom pattern has no name", ErrInvalidPattern)
		}
		if err := add(p, OriginCustom); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// MustNewRegistry builds a Registry from builtins only, panicking on
// error. Builtin patterns are covered by tests, so a panic here is a
// programming error.
func MustNewRegistry() *Registry {
	reg, err := NewRegistry(nil, nil)
	if err != nil {
		panic(err)
	}
	return reg
}

// compilePattern translates optional flags into an inline group and
// compiles the source. Errors wrap ErrInvalidPattern with the pattern
// name for fail-fast reporting at construction time.
func compilePattern(p Pattern) (*regexp.Regexp, error) {
	expr := p.Expr
	if p.Flags != "" {
		var inline strings.Builder
		for _, f := range p.Flags {
			switch f {
			case 'i', 'm', 's':
				inline.WriteRune(f)
			case 'g', 'u':
				// Implicit in Go.
			default:
				return nil, fmt.Errorf("%w: %q: unsupported flag %q", ErrInvalidPattern, p.Name, string(f))
			}
		}
		if inline.Len() > 0 {
			expr = "(?" + inline.String() + ")" + expr
		}
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, p.Name, err)
	}
	return re, nil
}

// Patterns returns the active patterns in iteration order: builtins
// first, then customs, allowlisted names excluded.
func (r *Registry) Patterns() []Pattern {
	out := make([]Pattern, 0, len(r.active))
	for _, p := range r.active {
		out = append(out, p.Pattern)
	}
	return out
}

// Names returns the active pattern names in iteration order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.active))
	for _, p := range r.active {
		out = append(out, p.Name)
	}
	return out
}

// Len returns the number of active patterns.
func (r *Registry) Len() int {
	return len(r.active)
}

// BuiltinPatterns returns the builtin credential-shape patterns. Pattern
// authors own minimum-length and character-class constraints; the
// detector applies no additional heuristic filtering on top of these.
func BuiltinPatterns() []Pattern {
	return []Pattern{
		{
			Name: "AWS Access Key",
			Expr: `\b(?:A3T[A-Z0-9]|AKIA|AGPA|AIDA|AROA|ASIA)[A-Z0-9]{16}\b`,
		},
		{
			Name: "GitHub Token",
			Expr: `\b(?:ghp|gho|ghu|ghs|ghr)_[A-Za-z0-9]{36,}\b`,
		},
		{
			Name: "GitLab Token",
			Expr: `\bglpat-[A-Za-z0-9\-]{20,}\b`,
		},
		{
			Name: "Slack Token",
			Expr: `\bxox[baprs]-[A-Za-z0-9\-]{10,}\b`,
		},
		{
			Name: "Stripe Key",
			Expr: `\b(?:sk|pk|rk)_(?:live|test)_[A-Za-z0-9]{24,}\b`,
		},
		{
			Name: "Google API Key",
			Expr: `\bAIza[A-Za-z0-9_\-]{35}\b`,
		},
		{
			Name: "Anthropic API Key",
			Expr: `\bsk-ant-[A-Za-z0-9_\-]{24,}\b`,
		},
		{
			Name: "OpenAI API Key",
			Expr: `\bsk-[A-Za-z0-9]{32,}\b`,
		},
		{
			Name: "JWT",
			Expr: `\beyJ[A-Za-z0-9_\-]{8,}\.eyJ[A-Za-z0-9_\-]{8,}\.[A-Za-z0-9_\-]*`,
		},
		{
			Name: "Private Key",
			Expr: `-----BEGIN (?:RSA |DSA |EC |OPENSSH |PGP )?PRIVATE KEY(?: BLOCK)?-----`,
		},
		{
			Name: "Generic API Key",
			Expr: `(?i)(?:api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*['"]?[A-Za-z0-9_\-]{16,}['"]?`,
		},
		{
			Name: "Password-like",
			Expr: `(?i)(?:password|passwd|pwd)\s*[:=]\s*['"]?[^\s'"]{8,}['"]?`,
		},
		{
			Name: "Bearer Token",
			Expr: `(?i)\bbearer\s+[A-Za-z0-9_\-\.=]{20,}`,
		},
		{
			Name: "Database URL",
			Expr: `(?i)\b(?:postgres|postgresql|mysql|mongodb|redis|amqp)://[^:\s]+:[^@\s]+@[^\s]+`,
		},
	}
}
