package text

import (
	"strings"

	"golang.org/x/image/font"
)

// Normalize collapses all whitespace runs to single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Wrap greedily packs words into lines whose rendered width stays within
// maxWidthPx. Words are never dropped or reordered; a single word wider than
// the budget still gets its own line.
func Wrap(face font.Face, text string, maxWidthPx int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, len(words))
	current := words[0]

	for _, w := range words[1:] {
		test := current + " " + w
		if Width(face, test) <= maxWidthPx {
			current = test
		} else {
			lines = append(lines, current)
			current = w
		}
	}

	lines = append(lines, current)
	return lines
}
