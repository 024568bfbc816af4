package pipeline

import (
	"github.com/alnah/go-narrate/internal/blocks"
	"github.com/alnah/go-narrate/internal/content"
)

// BlockRenderer is the host facility that renders one block to HTML.
// It must be idempotent and free of side effects.
type BlockRenderer interface {
	RenderBlock(b blocks.Block) string
}

// BlockRendererFunc adapts a function to BlockRenderer.
type BlockRendererFunc func(b blocks.Block) string

// RenderBlock implements BlockRenderer.
func (f BlockRendererFunc) RenderBlock(b blocks.Block) string { return f(b) }

// SelectBlocks returns the top-level blocks of doc that contribute audio, in
// document order. A block is skipped only when its audioEnabled attribute is
// explicitly false. Nested blocks are not selected on their own: they are
// spoken as part of their parent's HTML. Content without block structure
// yields an empty list.
func SelectBlocks(doc content.Document) []blocks.Block {
	if !blocks.HasBlocks(doc.Content) {
		return []blocks.Block{}
	}

	parsed := blocks.Parse(doc.Content)
	selected := make([]blocks.Block, 0, len(parsed))
	for _, b := range parsed {
		if b.AudioEnabled() {
			selected = append(selected, b)
		}
	}
	return selected
}

// RenderedSegment is one block's HTML with the marker injected into it, if any.
type RenderedSegment struct {
	HTML   string
	Marker Marker
}

// SegmentRenderer renders blocks and marks their root element.
type SegmentRenderer struct {
	blocks   BlockRenderer
	injector *MarkerInjector
}

// NewSegmentRenderer creates a SegmentRenderer.
func NewSegmentRenderer(renderer BlockRenderer, injector *MarkerInjector) *SegmentRenderer {
	return &SegmentRenderer{blocks: renderer, injector: injector}
}

// Render renders b and injects the block's own marker attribute.
func (r *SegmentRenderer) Render(b blocks.Block) RenderedSegment {
	marker := Marker(b.Marker())
	return RenderedSegment{
		HTML:   r.injector.Inject(r.blocks.RenderBlock(b), marker),
		Marker: marker,
	}
}
