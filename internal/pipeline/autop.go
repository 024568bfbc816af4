package pipeline

import (
	"regexp"
	"strings"
)

var (
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
	lineEndings    = regexp.MustCompile(`\r\n?`)
	blockTagStart  = regexp.MustCompile(`(?i)^<(?:/)?(address|article|aside|blockquote|details|dialog|dd|div|dl|dt|fieldset|figcaption|figure|footer|form|h[1-6]|header|hgroup|hr|li|main|nav|ol|p|pre|section|table|thead|tbody|tfoot|tr|td|th|ul|style|script|audio|video|iframe)\b`)
)

// Autop converts double line breaks into paragraphs and single line breaks
// into <br />. Chunks that already start with a block-level element are left
// as they are.
func Autop(text string) string {
	text = lineEndings.ReplaceAllString(text, "\n")
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var b strings.Builder
	for _, chunk := range paragraphBreak.Split(strings.Trim(text, "\n"), -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if blockTagStart.MatchString(chunk) {
			b.WriteString(chunk)
			b.WriteString("\n")
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(chunk, "\n", "<br />\n"))
		b.WriteString("</p>\n")
	}
	return b.String()
}
