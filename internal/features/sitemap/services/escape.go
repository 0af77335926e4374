package services

import "strings"

var xmlReplacer = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
	"'", "&apos;",
	`"`, "&quot;",
)

// EscapeXML replaces the five reserved XML characters with their named entities in a single
// pass. Every other character is copied unchanged; an empty input yields an empty string.
func EscapeXML(text string) string {
	if text == "" {
		return ""
	}
	return xmlReplacer.Replace(text)
}
