package pipeline

import "strings"

// Filter is one host-managed transformation of rendered HTML.
type Filter func(html string) string

// FilterChain applies filters in order. A nil chain is the identity.
type FilterChain []Filter

// Apply runs every filter over s in order.
func (c FilterChain) Apply(s string) string {
	for _, f := range c {
		s = f(s)
	}
	return s
}

// ContentFilters selects the content chain by document kind. Rendered blocks
// already carry their own block-level markup, so block documents usually run
// a chain without paragraph wrapping.
type ContentFilters struct {
	Classic FilterChain // documents without block structure
	Blocks  FilterChain // rendered block documents
}

// UniformContentFilters uses chain for every document.
func UniformContentFilters(chain FilterChain) ContentFilters {
	return ContentFilters{Classic: chain, Blocks: chain}
}

// For returns the chain for a document with or without block structure.
func (f ContentFilters) For(hasBlocks bool) FilterChain {
	if hasBlocks {
		return f.Blocks
	}
	return f.Classic
}

// DefaultContentFilters returns the content chains used when the host supplies
// none. Classic documents get paragraph wrapping first, then shortcode
// expansion, so shortcode output is never re-wrapped. Block documents only
// expand shortcodes.
func DefaultContentFilters(shortcodes *Shortcodes) ContentFilters {
	classic := FilterChain{Autop}
	var blocks FilterChain
	if shortcodes != nil {
		classic = append(classic, shortcodes.Expand)
		blocks = FilterChain{shortcodes.Expand}
	}
	return ContentFilters{Classic: classic, Blocks: blocks}
}

// DefaultExcerptFilters returns the excerpt chain used when the host supplies
// none: shortcodes are removed rather than expanded, then the text is trimmed.
func DefaultExcerptFilters(shortcodes *Shortcodes) FilterChain {
	if shortcodes == nil {
		return FilterChain{strings.TrimSpace}
	}
	return FilterChain{shortcodes.Strip, strings.TrimSpace}
}
