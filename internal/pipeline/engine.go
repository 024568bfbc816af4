package pipeline

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownEngine indicates an unrecognized engine name.
var ErrUnknownEngine = errors.New("unknown injection engine")

// EngineKind names an injection engine.
type EngineKind string

// Supported engine names.
const (
	EngineAuto         EngineKind = "auto"
	EngineTagProcessor EngineKind = "tag-processor"
	EngineDOM          EngineKind = "dom"
)

// Compile-time interface implementation checks.
var (
	_ AttributeInjector = TagProcessorEngine{}
	_ AttributeInjector = DOMEngine{}
)

// NewEngine returns the engine named kind. EngineAuto and "" detect the
// preferred engine.
func NewEngine(kind EngineKind) (AttributeInjector, error) {
	switch kind {
	case EngineAuto, "":
		return DetectEngine(), nil
	case EngineTagProcessor:
		return TagProcessorEngine{}, nil
	case EngineDOM:
		return DOMEngine{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, kind)
}

// detectedEngine caches the engine chosen by DetectEngine for the process.
var detectedEngine = sync.OnceValue(func() AttributeInjector {
	if tagProcessorUsable(TagProcessorEngine{}) {
		return TagProcessorEngine{}
	}
	return DOMEngine{}
})

// DetectEngine returns the tag-processor engine when it splices a canary
// fragment exactly, and the DOM engine otherwise. The check runs once.
func DetectEngine() AttributeInjector {
	return detectedEngine()
}

// tagProcessorUsable checks that engine rewrites a canary fragment byte-exactly.
func tagProcessorUsable(engine AttributeInjector) bool {
	const (
		canary = `<p class="canary">Grüße, <b>world</b></p><p>tail</p>`
		want   = `<p class="canary" data-narrate-check="1">Grüße, <b>world</b></p><p>tail</p>`
	)
	got, err := engine.SetRootAttribute(canary, "data-narrate-check", "1")
	return err == nil && got == want
}
