package normalize

import "strings"

// NameVariants generates the ordered set of normalized lookup keys for a
// skater name. Sources render the same person as "Firstname LASTNAME",
// "Lastname, Firstname" or "Firstname Lastname", so several orderings are
// emitted to maximize recall; the occasional false collision between two
// real people is a known limitation of this approach. Order matters: earlier
// variants take priority when building a lookup index.
func NameVariants(name string) []string {
	var variants []string
	original := strings.TrimSpace(name)

	lower := strings.ToLower(original)
	variants = append(variants, lower)

	noHyphen := strings.ReplaceAll(lower, "-", " ")
	if noHyphen != lower {
		variants = append(variants, noHyphen)
	}

	parts := strings.Fields(noHyphen)
	if len(parts) >= 2 {
		// An all-caps token is almost always a surname rendered in caps.
		var caps, given []string
		for _, p := range strings.Fields(original) {
			lowered := strings.ReplaceAll(strings.ToLower(p), "-", " ")
			if isAllUpper(p) && len(p) > 1 {
				caps = append(caps, lowered)
			} else {
				given = append(given, lowered)
			}
		}

		if len(caps) > 0 {
			surname := strings.Join(caps, " ")
			firstname := strings.Join(given, " ")
			variants = append(variants,
				strings.TrimSpace(surname+" "+firstname),
				strings.TrimSpace(firstname+" "+surname))
		} else {
			reversed := make([]string, len(parts))
			for i, p := range parts {
				reversed[len(parts)-1-i] = p
			}
			variants = append(variants, strings.Join(reversed, " "))
		}
	}

	seen := make(map[string]bool, len(variants))
	unique := make([]string, 0, len(variants))
	for _, v := range variants {
		v = strings.Join(strings.Fields(v), " ")
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		unique = append(unique, v)
	}
	return unique
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}
