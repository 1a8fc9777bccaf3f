package format

import "strings"

var markdownV1 = strings.NewReplacer(`_`, `\_`, `*`, `\*`, "`", "\\`", `[`, `\[`)

// EscapeMarkdown escapes user supplied text for legacy Markdown messages.
func EscapeMarkdown(text string) string {
	return markdownV1.Replace(text)
}
