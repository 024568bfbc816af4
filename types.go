package narrate

import (
	"github.com/alnah/go-narrate/internal/blocks"
	"github.com/alnah/go-narrate/internal/content"
	"github.com/alnah/go-narrate/internal/pipeline"
	"github.com/alnah/go-narrate/internal/store"
)

type (
	// Document is a source article.
	Document = content.Document

	// Settings is the read-only configuration of an assembly run.
	Settings = content.Settings

	// Status is a document's publication state.
	Status = content.Status

	// Block is a structural content node parsed from serialized block markup.
	Block = blocks.Block

	// Marker is an opaque segment identifier carried by a block.
	Marker = pipeline.Marker

	// Segment is one rendered block with its marker.
	Segment = pipeline.RenderedSegment

	// Filter is one step of a content or excerpt filter chain.
	Filter = pipeline.Filter

	// ShortcodeHandler renders a shortcode occurrence.
	ShortcodeHandler = pipeline.ShortcodeHandler

	// BlockRenderer renders a block to HTML.
	BlockRenderer = pipeline.BlockRenderer

	// BlockRendererFunc adapts a function to BlockRenderer.
	BlockRendererFunc = pipeline.BlockRendererFunc

	// EngineKind names a marker injection engine.
	EngineKind = pipeline.EngineKind

	// Resolver looks documents up by identifier. Implementations report an
	// unknown identifier with ErrContentNotFound.
	Resolver = store.Resolver
)

// Document statuses.
const (
	StatusDraft     = content.StatusDraft
	StatusPending   = content.StatusPending
	StatusPublished = content.StatusPublished
	StatusScheduled = content.StatusScheduled
	StatusPrivate   = content.StatusPrivate
	StatusOther     = content.StatusOther
)

// Injection engines.
const (
	EngineAuto         = pipeline.EngineAuto
	EngineTagProcessor = pipeline.EngineTagProcessor
	EngineDOM          = pipeline.EngineDOM
)

// Attribute keys written into the body.
const (
	MarkerAttr  = pipeline.MarkerAttr
	SummaryAttr = pipeline.SummaryAttr
	VoiceIDAttr = pipeline.VoiceIDAttr
)

// ParseStatus maps a stored status string to a Status.
func ParseStatus(s string) Status {
	return content.ParseStatus(s)
}

// ParseBlocks parses serialized block markup into top-level blocks.
func ParseBlocks(document string) []Block {
	return blocks.Parse(document)
}

// SelectBlocks returns the blocks of doc that contribute audio, in order.
func SelectBlocks(doc Document) []Block {
	return pipeline.SelectBlocks(doc)
}

// IntPtr returns a pointer to v, for optional voice ids.
func IntPtr(v int) *int {
	return content.IntPtr(v)
}
