package normalize

import (
	"regexp"
	"strings"
)

// categoryRule is one (predicate, canonicalize) pair. Rules are evaluated in
// order, first match wins, which keeps the vocabulary testable independently
// of the matching loop.
type categoryRule struct {
	match func(lower string) bool
	canon func(original string) string
}

var reAge = regexp.MustCompile(`\d+`)

var categoryRules = []categoryRule{
	{
		match: func(lower string) bool {
			return lower == "men" || lower == "male" || lower == "m"
		},
		canon: func(string) string { return "Men" },
	},
	{
		match: func(lower string) bool {
			return lower == "women" || lower == "female" || lower == "w" || lower == "ladies"
		},
		canon: func(string) string { return "Women" },
	},
	{
		match: func(lower string) bool {
			if !strings.HasPrefix(lower, "u ") && !strings.HasPrefix(lower, "u-") {
				return false
			}
			return reAge.MatchString(lower)
		},
		canon: func(original string) string { return "U" + reAge.FindString(original) },
	},
	{
		match: func(lower string) bool { return strings.Contains(lower, "master") },
		canon: func(string) string { return "Masters" },
	},
}

// Category maps a free-text division string to the canonical vocabulary.
// Empty input defaults to "Open"; unmapped values pass through trimmed, there
// is no failure state.
func Category(raw string) string {
	cat := strings.TrimSpace(raw)
	if cat == "" {
		return "Open"
	}

	lower := strings.ToLower(cat)
	for _, rule := range categoryRules {
		if rule.match(lower) {
			return rule.canon(cat)
		}
	}
	return cat
}
