package hierarchy

import (
	"regexp"
	"strings"
	"sync"
)

// ResolvedPath is the outcome of resolving one ref code: the ordered
// hierarchy segments from root to leaf, and a display label per segment.
type ResolvedPath struct {
	Segments []string
	Labels   map[string]string
}

// pathPattern is one entry in the ordered inference table: a ref code
// shape and the expansion from a match to the full root-to-leaf path.
type pathPattern struct {
	re     *regexp.Regexp
	expand func(ref string, m []string) []string
}

// defaultPatterns is the inference table tried in order; the first match
// wins. Patterns are pure data so new framework numbering schemes can be
// added without touching the resolution flow.
var defaultPatterns = []pathPattern{
	// NIST CSF style: function, category, control.
	{regexp.MustCompile(`^[A-Z]{2}$`), func(ref string, m []string) []string {
		return []string{ref}
	}},
	{regexp.MustCompile(`^([A-Z]{2})\.[A-Z]{2,}$`), func(ref string, m []string) []string {
		return []string{m[1], ref}
	}},
	{regexp.MustCompile(`^([A-Z]{2})\.([A-Z]{2,})-\d+$`), func(ref string, m []string) []string {
		return []string{m[1], m[1] + "." + m[2], ref}
	}},
	// NIST 800-53 style: family, control, enhancement.
	{regexp.MustCompile(`^[A-Z]{2,3}$`), func(ref string, m []string) []string {
		return []string{ref}
	}},
	{regexp.MustCompile(`^([A-Z]{2,3})-\d+$`), func(ref string, m []string) []string {
		return []string{m[1], ref}
	}},
	{regexp.MustCompile(`^(([A-Z]{2,3})-\d+)\(\d+\)$`), func(ref string, m []string) []string {
		return []string{m[2], m[1], ref}
	}},
	// ISO 27001 Annex A style.
	{regexp.MustCompile(`^A\.\d+$`), func(ref string, m []string) []string {
		return []string{ref}
	}},
	{regexp.MustCompile(`^(A\.\d+)\.\d+$`), func(ref string, m []string) []string {
		return []string{m[1], ref}
	}},
	{regexp.MustCompile(`^((A\.\d+)\.\d+)\.\d+$`), func(ref string, m []string) []string {
		return []string{m[2], m[1], ref}
	}},
	// Numeric clause style (PCI DSS, CIS, ISO main body).
	{regexp.MustCompile(`^\d+$`), func(ref string, m []string) []string {
		return []string{ref}
	}},
	{regexp.MustCompile(`^(\d+)\.\d+$`), func(ref string, m []string) []string {
		return []string{m[1], ref}
	}},
	{regexp.MustCompile(`^((\d+)\.\d+)\.\d+$`), func(ref string, m []string) []string {
		return []string{m[2], m[1], ref}
	}},
	// ISO lettered sub-items: 4.1(a) under 4.1, 4.1(a)(1) under 4.1(a).
	{regexp.MustCompile(`^(\d+\.\d+(?:\.\d+)?)\([a-z]\)$`), func(ref string, m []string) []string {
		return append(numericClausePath(m[1]), ref)
	}},
	{regexp.MustCompile(`^((\d+\.\d+(?:\.\d+)?)\([a-z]\))\(\d+\)$`), func(ref string, m []string) []string {
		return append(append(numericClausePath(m[2]), m[1]), ref)
	}},
}

// numericClausePath expands a dotted numeric clause into its cumulative
// prefixes: "4.1.2" -> [4, 4.1, 4.1.2].
func numericClausePath(clause string) []string {
	parts := strings.Split(clause, ".")
	path := make([]string, 0, len(parts))
	for i := range parts {
		path = append(path, strings.Join(parts[:i+1], "."))
	}
	return path
}

// Resolver infers hierarchy paths from framework-native ref codes. It is
// a heuristic fallback: frameworks that carry explicit parent data on
// their controls never reach pattern inference (the builder walks parent
// chains instead). Resolution is pure, so results are memoized per
// (framework, refCode) pair.
type Resolver struct {
	mu        sync.Mutex
	memo      map[string]ResolvedPath
	overrides map[string][]pathPattern
}

// NewResolver creates a resolver with the default pattern table.
func NewResolver() *Resolver {
	return &Resolver{
		memo:      make(map[string]ResolvedPath),
		overrides: make(map[string][]pathPattern),
	}
}

// RegisterPatterns installs a framework-specific pattern table that is
// tried before the default table for that framework's ref codes.
func (r *Resolver) RegisterPatterns(frameworkCode string, patterns []pathPattern) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[frameworkCode] = patterns
}

// Resolve returns the root-to-leaf segment path for a ref code, plus a
// label for each segment. Unrecognized codes degrade to a single-segment
// path rather than failing; framework taxonomies are externally sourced
// and not fully controlled.
func (r *Resolver) Resolve(frameworkCode, refCode string) ResolvedPath {
	key := frameworkCode + "\x00" + refCode

	r.mu.Lock()
	if cached, ok := r.memo[key]; ok {
		r.mu.Unlock()
		return cached
	}
	override := r.overrides[frameworkCode]
	r.mu.Unlock()

	segments := matchPath(override, refCode)
	if segments == nil {
		segments = matchPath(defaultPatterns, refCode)
	}
	if segments == nil {
		// Single-level fallback.
		segments = []string{refCode}
	}

	labels := make(map[string]string, len(segments))
	for _, seg := range segments {
		labels[seg] = GroupLabel(frameworkCode, seg)
	}
	resolved := ResolvedPath{Segments: segments, Labels: labels}

	r.mu.Lock()
	r.memo[key] = resolved
	r.mu.Unlock()
	return resolved
}

func matchPath(patterns []pathPattern, refCode string) []string {
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(refCode); m != nil {
			return p.expand(refCode, m)
		}
	}
	return nil
}
