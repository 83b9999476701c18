package utils

import (
	"regexp"
)

var mentionRe = regexp.MustCompile(`@(\w+)`)

// ExtractMentions scans free text for @name tokens and returns the referenced
// usernames, deduplicated, in first-seen order. Case is preserved; resolving
// names to users is the caller's problem.
func ExtractMentions(text string) []string {
	matches := mentionRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	mentions := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		mentions = append(mentions, name)
	}
	return mentions
}
