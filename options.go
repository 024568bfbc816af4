package narrate

import (
	"go.uber.org/zap"

	"github.com/alnah/go-narrate/internal/pipeline"
)

// Option configures an Assembler.
type Option func(*Assembler)

// assemblerConfig holds values set by options and resolved in NewAssembler.
type assemblerConfig struct {
	settings       Settings
	engine         EngineKind
	contentFilters []Filter
	excerptFilters []Filter
	customContent  bool
	customExcerpt  bool
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(a *Assembler) {
		if log != nil {
			a.log = log
		}
	}
}

// WithSettings sets the excerpt flag and default voice ids.
func WithSettings(s Settings) Option {
	return func(a *Assembler) {
		a.cfg.settings = s
	}
}

// WithEngine forces an injection engine instead of detecting one.
func WithEngine(kind EngineKind) Option {
	return func(a *Assembler) {
		a.cfg.engine = kind
	}
}

// WithResolver sets the document source used by Assemble.
func WithResolver(r Resolver) Option {
	return func(a *Assembler) {
		a.resolver = r
	}
}

// WithBlockRenderer replaces the built-in block renderer.
func WithBlockRenderer(r BlockRenderer) Option {
	return func(a *Assembler) {
		if r != nil {
			a.renderer = r
		}
	}
}

// WithContentFilters replaces the content filter chain for every document,
// with or without block structure. With no filters the chain is the identity.
func WithContentFilters(filters ...Filter) Option {
	return func(a *Assembler) {
		a.cfg.contentFilters = filters
		a.cfg.customContent = true
	}
}

// WithExcerptFilters replaces the excerpt filter chain used by the summary.
func WithExcerptFilters(filters ...Filter) Option {
	return func(a *Assembler) {
		a.cfg.excerptFilters = filters
		a.cfg.customExcerpt = true
	}
}

// WithShortcode registers a shortcode handler used by the default filter chains.
func WithShortcode(name string, handler ShortcodeHandler) Option {
	return func(a *Assembler) {
		a.shortcodes.Register(name, handler)
	}
}

// WithStaticShortcode registers a shortcode that expands to a fixed string.
func WithStaticShortcode(name, replacement string) Option {
	return func(a *Assembler) {
		a.shortcodes.RegisterStatic(name, replacement)
	}
}

func (c *assemblerConfig) contentChain(sc *pipeline.Shortcodes) pipeline.ContentFilters {
	if c.customContent {
		return pipeline.UniformContentFilters(c.contentFilters)
	}
	return pipeline.DefaultContentFilters(sc)
}

func (c *assemblerConfig) excerptChain(sc *pipeline.Shortcodes) pipeline.FilterChain {
	if c.customExcerpt {
		return pipeline.FilterChain(c.excerptFilters)
	}
	return pipeline.DefaultExcerptFilters(sc)
}
