package transcript

import "strings"

// Single quote is left alone: output only ever lands in element text, never
// in a single-quoted attribute.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeHTML replaces &, <, > and " with their named entities.
func EscapeHTML(s string) string {
	if s == "" {
		return ""
	}
	return htmlReplacer.Replace(s)
}
