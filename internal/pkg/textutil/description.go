// Package textutil normalizes free post text for compact display in
// link-preview cards.
package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Character budgets used by the extraction tiers.
const (
	DefaultLimit = 100 // type-specific video/reel descriptions
	MetaLimit    = 347 // meta-tag and photo descriptions
)

// separatorLine matches a horizontal-rule convention some posts use as a
// section break: a line of 3+ repeated dash/underscore/em-dash characters.
var separatorLine = regexp.MustCompile(`(?m)^[-_—]{3,}\s*$`)

const ellipsis = "..."

// Shorten bounds text to limit characters. Only content before the first
// horizontal-rule line is considered; whole lines are then kept from the
// start while they fit, and a hard truncation applies when even the first
// line exceeds the limit. An ellipsis marks any truncation.
func Shorten(text string, limit int) string {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if loc := separatorLine.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	text = strings.TrimRight(text, " \t\r\n")

	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	var kept []string
	total := 0
	for _, line := range strings.Split(text, "\n") {
		n := utf8.RuneCountInString(line)
		if len(kept) > 0 {
			n++ // the newline joining it to the previous line
		}
		if total+n > limit {
			break
		}
		kept = append(kept, line)
		total += n
	}

	out := strings.Join(kept, "\n")
	if out == "" {
		// The first line alone is over budget.
		runes := []rune(text)
		out = string(runes[:limit])
	}

	out = strings.TrimRight(out, " \t\n.,;:!?-")
	return out + ellipsis
}
