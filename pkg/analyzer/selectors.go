package analyzer

import (
	"regexp"
	"strings"
)

// selectorListRe captures each run of non-brace text directly before an
// opening brace, i.e. a rule's selector list. Matching per run rather than
// per line lets several rules share one line.
var selectorListRe = regexp.MustCompile(`([^{}]+)\{`)

// elementTokenRe matches a bare alphanumeric identifier starting with a letter.
var elementTokenRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// ClassifySelectors extracts and categorizes every distinct simple-selector
// token across the given style blocks. Selector lists split on commas, then
// on whitespace, so each part of a descendant selector contributes its own
// token. Deduplication is by exact token text; result order is first
// encounter across blocks in input order.
func ClassifySelectors(blocks []string) []Selector {
	selectors := make([]Selector, 0)
	seen := make(map[string]bool)

	for _, block := range blocks {
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			for _, match := range selectorListRe.FindAllStringSubmatch(line, -1) {
				for _, sel := range strings.Split(match[1], ",") {
					for _, token := range strings.Fields(sel) {
						if seen[token] {
							continue
						}
						seen[token] = true
						selectors = append(selectors, Selector{
							Type: classifySelectorToken(token),
							Name: token,
						})
					}
				}
			}
		}
	}
	return selectors
}

// classifySelectorToken applies the token rules in priority order: leading
// dot wins over a contained colon, so ".a:hover" is a class, not a pseudo.
func classifySelectorToken(token string) SelectorType {
	switch {
	case strings.HasPrefix(token, "."):
		return SelectorClass
	case strings.Contains(token, ":"):
		return SelectorPseudo
	case elementTokenRe.MatchString(token):
		return SelectorElement
	default:
		return SelectorOther
	}
}
