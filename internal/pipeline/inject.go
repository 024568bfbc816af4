package pipeline

import (
	"errors"

	"go.uber.org/zap"
)

// Attribute keys written by the pipeline.
const (
	MarkerAttr  = "data-narrate-marker"
	SummaryAttr = "data-narrate-summary"
	VoiceIDAttr = "data-narrate-voice-id"
)

// ErrNoRootElement indicates a fragment has no element to annotate.
var ErrNoRootElement = errors.New("fragment has no root element")

// Marker is an opaque, caller-supplied segment identifier. The pipeline never
// generates, validates or deduplicates markers; "" means no marker.
type Marker string

// AttributeInjector sets an attribute on the first root element of an HTML
// fragment. Any existing attribute with the same key is replaced and the new
// attribute is written last. Everything else in the fragment is preserved.
// Implementations return ErrNoRootElement when the fragment holds no element.
type AttributeInjector interface {
	SetRootAttribute(fragment, key, value string) (string, error)
	Name() string
}

// MarkerInjector writes markers with one engine chosen at construction.
// It never fails: when the engine cannot annotate a fragment, the fragment is
// returned unchanged.
type MarkerInjector struct {
	engine AttributeInjector
	log    *zap.Logger
}

// NewMarkerInjector creates a MarkerInjector around engine.
// A nil logger is replaced by a no-op logger.
func NewMarkerInjector(engine AttributeInjector, log *zap.Logger) *MarkerInjector {
	if log == nil {
		log = zap.NewNop()
	}
	return &MarkerInjector{engine: engine, log: log}
}

// Engine returns the name of the engine in use.
func (m *MarkerInjector) Engine() string {
	return m.engine.Name()
}

// Inject adds the marker attribute to the fragment's first root element.
func (m *MarkerInjector) Inject(fragment string, marker Marker) string {
	if marker == "" {
		return fragment
	}

	out, err := m.engine.SetRootAttribute(fragment, MarkerAttr, string(marker))
	switch {
	case err == nil:
		return out
	case errors.Is(err, ErrNoRootElement):
		m.log.Debug("No root element for marker", zap.String("marker", string(marker)))
	default:
		m.log.Warn("Marker injection failed, keeping fragment unchanged",
			zap.String("engine", m.engine.Name()),
			zap.String("marker", string(marker)),
			zap.Error(err))
	}
	return fragment
}
