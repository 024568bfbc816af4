package blocks

import (
	"bytes"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Dynamic block names with built-in renderers.
const (
	MarkdownBlock = "jetpack/markdown"
	CodeBlock     = "core/code"
)

// RenderFunc renders a dynamic block. inner is the block's static output with
// child blocks already rendered into place.
type RenderFunc func(b Block, inner string) string

// Renderer renders blocks to HTML. Static blocks render their stored inner
// content; blocks with a registered RenderFunc are rendered dynamically.
// A Renderer is safe for concurrent use once registration is done.
type Renderer struct {
	mu      sync.RWMutex
	dynamic map[string]RenderFunc
}

// NewRenderer creates a Renderer with the markdown and code renderers registered.
func NewRenderer() *Renderer {
	r := &Renderer{dynamic: make(map[string]RenderFunc)}
	r.Register(MarkdownBlock, newMarkdownRenderer())
	r.Register(CodeBlock, renderCode)
	return r
}

// Register installs fn as the renderer for blocks named name, replacing any
// previous registration.
func (r *Renderer) Register(name string, fn RenderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dynamic[name] = fn
}

// RenderBlock returns the HTML for b, rendering child blocks recursively.
func (r *Renderer) RenderBlock(b Block) string {
	inner := r.renderInner(b)

	r.mu.RLock()
	fn, ok := r.dynamic[b.Name]
	r.mu.RUnlock()

	if ok {
		return fn(b, inner)
	}
	return inner
}

// renderInner interleaves static markup with rendered child blocks.
// Blocks built by hand without InnerContent render InnerHTML followed by children.
func (r *Renderer) renderInner(b Block) string {
	var buf strings.Builder

	if b.InnerContent == nil {
		buf.WriteString(b.InnerHTML)
		for _, child := range b.InnerBlocks {
			buf.WriteString(r.RenderBlock(child))
		}
		return buf.String()
	}

	next := 0
	for _, f := range b.InnerContent {
		if !f.IsBlock {
			buf.WriteString(f.HTML)
			continue
		}
		if next < len(b.InnerBlocks) {
			buf.WriteString(r.RenderBlock(b.InnerBlocks[next]))
			next++
		}
	}
	return buf.String()
}

// newMarkdownRenderer renders the "source" attribute of markdown blocks with
// goldmark, wrapped in a single container so the block keeps one root element.
// Blocks without a source fall back to their saved HTML.
func newMarkdownRenderer() RenderFunc {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	return func(b Block, inner string) string {
		source, _ := b.Attrs["source"].(string)
		if strings.TrimSpace(source) == "" {
			return inner
		}

		var buf bytes.Buffer
		buf.WriteString(`<div class="wp-block-jetpack-markdown">`)
		if err := md.Convert([]byte(source), &buf); err != nil {
			return inner
		}
		buf.WriteString(`</div>`)
		return buf.String()
	}
}

// renderCode re-renders a code block with syntax highlighting when it names
// a language chroma knows. Highlighting only adds inline markup; the spoken
// text of the block is unchanged.
func renderCode(b Block, inner string) string {
	language, _ := b.Attrs["language"].(string)
	if language == "" {
		return inner
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return inner
	}
	lexer = chroma.Coalesce(lexer)

	code, ok := codeText(inner)
	if !ok {
		return inner
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return inner
	}

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.Format(&buf, styles.Fallback, iterator); err != nil {
		return inner
	}
	return buf.String()
}

// codeText extracts the text content of the first <code> element in fragment.
func codeText(fragment string) (string, bool) {
	body := &xhtml.Node{Type: xhtml.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := xhtml.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", false
	}

	for _, n := range nodes {
		if code := findElement(n, atom.Code); code != nil {
			var buf strings.Builder
			collectText(code, &buf)
			return buf.String(), true
		}
	}
	return "", false
}

func findElement(n *xhtml.Node, a atom.Atom) *xhtml.Node {
	if n.Type == xhtml.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *xhtml.Node, buf *strings.Builder) {
	if n.Type == xhtml.TextNode {
		buf.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, buf)
	}
}
