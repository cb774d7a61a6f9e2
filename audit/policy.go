package audit

import (
	"strings"

	"github.com/gobwas/glob"
)

// Policy narrows which findings an audit reports on. Identities matching an
// ignore pattern still appear in the findings (nothing is silently dropped)
// but their live-only rules are counted as ignored instead of drift.
type Policy struct {
	// IgnoreIdentities are compiled, lower-cased glob patterns matched
	// against rule identities ("NT AUTHORITY\\*", "BUILTIN\\Administrators").
	IgnoreIdentities []glob.Glob

	// ignorePatterns keeps the source patterns for reporting.
	ignorePatterns []string
}

// DefaultPolicy returns a policy that ignores nothing.
func DefaultPolicy() Policy {
	return Policy{
		IgnoreIdentities: []glob.Glob{},
		ignorePatterns:   []string{},
	}
}

// NewPolicy compiles ignore-identity patterns into a policy. Patterns are
// lower-cased so matching against identities is case-insensitive.
func NewPolicy(ignoreIdentities ...string) (Policy, error) {
	globs := make([]glob.Glob, 0, len(ignoreIdentities))
	patterns := make([]string, 0, len(ignoreIdentities))
	for _, pattern := range ignoreIdentities {
		// backslash is the glob escape character, but in identity names it
		// is a domain separator; escape it so "DOMAIN\*" works as written
		escaped := strings.ReplaceAll(strings.ToLower(pattern), `\`, `\\`)
		g, err := glob.Compile(escaped)
		if err != nil {
			return Policy{}, err
		}
		globs = append(globs, g)
		patterns = append(patterns, pattern)
	}
	return Policy{
		IgnoreIdentities: globs,
		ignorePatterns:   patterns,
	}, nil
}

// IsIgnored returns true if the given identity matches an ignore pattern.
func (p Policy) IsIgnored(identity string) bool {
	identity = strings.ToLower(identity)
	for _, g := range p.IgnoreIdentities {
		if g.Match(identity) {
			return true
		}
	}
	return false
}

// IsEmpty returns true if the policy has no ignore patterns.
func (p Policy) IsEmpty() bool {
	return len(p.IgnoreIdentities) == 0
}

// Patterns returns the source ignore patterns the policy was built from.
func (p Policy) Patterns() []string {
	return p.ignorePatterns
}
