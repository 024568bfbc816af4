package pipeline

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-narrate/internal/content"
)

// SummaryComposer turns a document excerpt into the summary wrapper that is
// spoken before the body.
type SummaryComposer struct {
	filters FilterChain
}

// NewSummaryComposer creates a SummaryComposer applying filters to the
// escaped excerpt.
func NewSummaryComposer(filters FilterChain) *SummaryComposer {
	return &SummaryComposer{filters: filters}
}

// Compose returns the summary wrapper for doc, or "" when excerpt prepending
// is off or the document has no excerpt.
func (c *SummaryComposer) Compose(doc content.Document, settings content.Settings) string {
	if !settings.PrependExcerpt || strings.TrimSpace(doc.Excerpt) == "" {
		return ""
	}

	text := html.EscapeString(doc.Excerpt)
	text = c.filters.Apply(text)
	text = strings.TrimSpace(Autop(text))
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div `)
	b.WriteString(SummaryAttr)
	b.WriteString(`="true"`)
	if voice := settings.SummaryVoice(doc); voice != nil {
		b.WriteString(` `)
		b.WriteString(VoiceIDAttr)
		b.WriteString(`="`)
		b.WriteString(strconv.Itoa(*voice))
		b.WriteString(`"`)
	}
	b.WriteString(`>`)
	b.WriteString(text)
	b.WriteString(`</div>`)
	return b.String()
}
