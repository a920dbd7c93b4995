package parser

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/casegen/casegen/lexer"
)

// The generation modifiers the code generator understands, by the shape
// they must carry. Parsing keeps unknown modifiers intact; validation is a
// separate pass so tooling can warn without rejecting the annotation.
var builtinModifiers = map[string]ModifierKind{
	"trace":   ModifierAttr,   // dump resolved inputs for every generated test
	"notrace": ModifierTagged, // suppress tracing for the named arguments
	"default": ModifierType,   // bind a generic parameter for fixture resolution
}

// Warning is a non-fatal finding from modifier validation
type Warning struct {
	Message    string
	Pos        lexer.Position
	Suggestion string // "did you mean" candidate, empty when none is close
}

func (w Warning) String() string {
	if w.Suggestion != "" {
		return fmt.Sprintf("%s (did you mean %q?)", w.Message, w.Suggestion)
	}
	return w.Message
}

// Validate checks the chain against the generator's modifier set plus any
// extra names allowed by project configuration. Unknown names and known
// names used with the wrong shape produce warnings, never errors.
func (m Modifiers) Validate(extra ...string) []Warning {
	known := make(map[string]ModifierKind, len(builtinModifiers)+len(extra))
	for name, kind := range builtinModifiers {
		known[name] = kind
	}
	for _, name := range extra {
		known[name] = ModifierAttr
	}

	candidates := make([]string, 0, len(known))
	for name := range known {
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)

	var warnings []Warning
	for _, mod := range m.List {
		kind, ok := known[mod.Name.Name]
		if !ok {
			warnings = append(warnings, Warning{
				Message:    fmt.Sprintf("unknown modifier %q", mod.Name.Name),
				Pos:        mod.Name.Pos,
				Suggestion: closestName(mod.Name.Name, candidates),
			})
			continue
		}
		if mod.Kind != kind && !isExtraName(mod.Name.Name, extra) {
			warnings = append(warnings, Warning{
				Message: fmt.Sprintf("modifier %q expects the %s form, got %s",
					mod.Name.Name, kind, mod.Kind),
				Pos: mod.Name.Pos,
			})
		}
	}
	return warnings
}

func isExtraName(name string, extra []string) bool {
	for _, e := range extra {
		if e == name {
			return true
		}
	}
	return false
}

// closestName returns the best fuzzy match for an unknown name, or ""
// when nothing ranks.
func closestName(target string, candidates []string) string {
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	// RankFindFold only matches when target is a subsequence of a
	// candidate; for typos, rank the other direction as well.
	best := ""
	bestDist := -1
	for _, cand := range candidates {
		if d := fuzzy.LevenshteinDistance(target, cand); d <= 2 && (bestDist == -1 || d < bestDist) {
			best, bestDist = cand, d
		}
	}
	return best
}
