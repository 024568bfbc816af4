package pipeline

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-narrate/internal/blocks"
	"github.com/alnah/go-narrate/internal/content"
)

// blankLines matches whitespace-only lines, including their line break.
var blankLines = regexp.MustCompile(`(?m)^[ \t]*(?:\r\n|\n|\r)+`)

// BodyAssembler builds the content body submitted for speech synthesis.
// It holds no per-call state and is safe for concurrent use.
type BodyAssembler struct {
	segments       *SegmentRenderer
	summary        *SummaryComposer
	contentFilters ContentFilters
	log            *zap.Logger
}

// NewBodyAssembler creates a BodyAssembler. A nil logger is replaced by a
// no-op logger.
func NewBodyAssembler(segments *SegmentRenderer, summary *SummaryComposer, contentFilters ContentFilters, log *zap.Logger) *BodyAssembler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BodyAssembler{
		segments:       segments,
		summary:        summary,
		contentFilters: contentFilters,
		log:            log,
	}
}

// Assemble returns the content body for doc:
//
//  1. block documents: selected blocks rendered with markers, concatenated
//     in document order, blank lines removed; other documents: raw content, trimmed
//  2. the content filter chain for the document kind, applied exactly once
//  3. the summary wrapper prepended, and the whole result trimmed
func (a *BodyAssembler) Assemble(doc content.Document, settings content.Settings) string {
	var body string

	hasBlocks := blocks.HasBlocks(doc.Content)
	if hasBlocks {
		body = stripBlankLines(a.renderSegments(doc))
	} else {
		body = strings.TrimSpace(doc.Content)
	}

	body = a.contentFilters.For(hasBlocks).Apply(body)

	return strings.TrimSpace(a.summary.Compose(doc, settings) + body)
}

// Segments returns the rendered segments of doc without filtering or summary.
func (a *BodyAssembler) Segments(doc content.Document) []RenderedSegment {
	selected := SelectBlocks(doc)
	segments := make([]RenderedSegment, 0, len(selected))
	for i, b := range selected {
		seg := a.segments.Render(b)
		a.log.Debug("Segment rendered",
			zap.String("document", doc.ID),
			zap.Int("index", i),
			zap.String("block", b.Name),
			zap.Bool("marked", seg.Marker != ""))
		segments = append(segments, seg)
	}
	return segments
}

func (a *BodyAssembler) renderSegments(doc content.Document) string {
	var b strings.Builder
	for _, seg := range a.Segments(doc) {
		b.WriteString(seg.HTML)
	}
	return b.String()
}

// stripBlankLines removes empty lines left between rendered blocks, which
// paragraph wrapping would otherwise turn into empty paragraphs.
func stripBlankLines(s string) string {
	return blankLines.ReplaceAllString(s, "")
}
