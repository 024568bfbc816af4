package narrate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-narrate/internal/blocks"
	"github.com/alnah/go-narrate/internal/pipeline"
	"github.com/alnah/go-narrate/internal/store"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.BlockRenderer = (*blocks.Renderer)(nil)
	_ Resolver               = (*store.MemoryStore)(nil)
)

// Assembler builds the content body submitted for speech synthesis.
// Create with NewAssembler. An Assembler is safe for concurrent use.
type Assembler struct {
	cfg        assemblerConfig
	log        *zap.Logger
	resolver   Resolver
	renderer   BlockRenderer
	shortcodes *pipeline.Shortcodes
	injector   *pipeline.MarkerInjector
	summary    *pipeline.SummaryComposer
	body       *pipeline.BodyAssembler
}

// NewAssembler creates an Assembler. Without options it uses the built-in
// block renderer, the default filter chains, a detected engine and no resolver.
// Returns ErrInvalidVoiceID or ErrUnknownEngine for bad options.
func NewAssembler(opts ...Option) (*Assembler, error) {
	a := &Assembler{
		cfg:        assemblerConfig{engine: EngineAuto},
		log:        zap.NewNop(),
		renderer:   blocks.NewRenderer(),
		shortcodes: pipeline.NewShortcodes(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if err := a.cfg.settings.Validate(); err != nil {
		return nil, err
	}

	engine, err := pipeline.NewEngine(a.cfg.engine)
	if err != nil {
		return nil, err
	}

	a.injector = pipeline.NewMarkerInjector(engine, a.log)
	a.summary = pipeline.NewSummaryComposer(a.cfg.excerptChain(a.shortcodes))
	a.body = pipeline.NewBodyAssembler(
		pipeline.NewSegmentRenderer(a.renderer, a.injector),
		a.summary,
		a.cfg.contentChain(a.shortcodes),
		a.log,
	)

	a.log.Debug("Assembler ready",
		zap.String("engine", engine.Name()),
		zap.String("requested", string(a.cfg.engine)),
		zap.Bool("prepend_excerpt", a.cfg.settings.PrependExcerpt))

	return a, nil
}

// Engine returns the name of the injection engine in use.
func (a *Assembler) Engine() string {
	return a.injector.Engine()
}

// Settings returns the settings the assembler runs with.
func (a *Assembler) Settings() Settings {
	return a.cfg.settings
}

// AssembleDocument returns the content body for doc. It never fails:
// fragments an engine cannot annotate are kept unchanged.
func (a *Assembler) AssembleDocument(doc Document) string {
	return a.body.Assemble(doc, a.cfg.settings)
}

// Segments returns the rendered, marked segments of doc before filtering.
func (a *Assembler) Segments(doc Document) []Segment {
	return a.body.Segments(doc)
}

// Summary returns the summary wrapper for doc, or "" when none applies.
func (a *Assembler) Summary(doc Document) string {
	return a.summary.Compose(doc, a.cfg.settings)
}

// Assemble resolves id and returns its content body.
// An unknown id yields ErrContentNotFound.
// Recovers from panics in host renderers or filters.
func (a *Assembler) Assemble(ctx context.Context, id string) (body string, err error) {
	doc, err := a.Document(ctx, id)
	if err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error assembling %s: %v", id, r)
		}
	}()

	return a.AssembleDocument(doc), nil
}

// Document resolves id through the configured Resolver.
func (a *Assembler) Document(ctx context.Context, id string) (Document, error) {
	if a.resolver == nil {
		return Document{}, ErrNoResolver
	}

	doc, err := a.resolver.Document(ctx, id)
	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, store.ErrNotFound), errors.Is(err, ErrContentNotFound):
		return Document{}, fmt.Errorf("%w: %s", ErrContentNotFound, id)
	default:
		return Document{}, fmt.Errorf("resolving %s: %w", id, err)
	}
}
