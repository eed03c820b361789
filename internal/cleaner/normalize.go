package cleaner

import (
	"regexp"
	"strings"
)

var (
	tagRe     = regexp.MustCompile(`<[^>]+>`)
	controlRe = regexp.MustCompile(`[\x{0000}-\x{001F}\x{007F}-\x{009F}]`)
)

// Normalize cleans a single text field: collapses whitespace runs to a
// single space, removes control characters (U+0000-U+001F, U+007F-U+009F)
// and HTML-like tag remnants, and trims the ends. Idempotent: the trailing
// collapse removes any double space a tag removal leaves behind.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Whitespace collapse runs first so tab/newline control characters
	// become word separators instead of being deleted.
	text = strings.Join(strings.Fields(text), " ")
	text = controlRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
