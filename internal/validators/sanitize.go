package validators

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const maxNotesLength = 1000

var plainText = bluemonday.StrictPolicy()

// CleanNotes strips any markup from free-text notes and caps their length.
func CleanNotes(s string) string {
	out := strings.TrimSpace(html.UnescapeString(plainText.Sanitize(s)))
	if r := []rune(out); len(r) > maxNotesLength {
		out = string(r[:maxNotesLength])
	}
	return out
}
