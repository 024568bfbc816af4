package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DOMEngine parses the fragment with the tolerant HTML parser, sets the
// attribute on the first root element of the tree and serializes that
// element's start tag alone. The serialized tag replaces the element's start
// tag in the original bytes; text, siblings and descendants are never
// re-serialized.
//
// The rewritten start tag is canonical: lowercase name, double-quoted values.
// Table parts (tr, td, ...) are parsed in their table context so they keep
// their root element.
type DOMEngine struct{}

// Name implements AttributeInjector.
func (DOMEngine) Name() string { return string(EngineDOM) }

// SetRootAttribute implements AttributeInjector.
func (DOMEngine) SetRootAttribute(fragment, key, value string) (string, error) {
	first, err := findStartTag(fragment, "")
	if err != nil {
		return fragment, err
	}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), parseContext(first.name))
	if err != nil {
		return fragment, fmt.Errorf("parsing fragment: %w", err)
	}

	root := firstElement(nodes)
	if root == nil {
		return fragment, ErrNoRootElement
	}

	// Elements the parser implied have no start tag to rewrite.
	tag, err := findStartTag(fragment, root.Data)
	if err != nil {
		return fragment, ErrNoRootElement
	}

	setAttr(root, key, value)
	rendered, err := renderStartTag(root, tag.selfClosing)
	if err != nil {
		return fragment, fmt.Errorf("rendering start tag: %w", err)
	}
	return fragment[:tag.start] + rendered + fragment[tag.end:], nil
}

// parseContext returns the context element a fragment starting with the
// named tag is parsed in.
func parseContext(first string) *html.Node {
	ctx := atom.Body
	switch atom.Lookup([]byte(first)) {
	case atom.Tr:
		ctx = atom.Tbody
	case atom.Td, atom.Th:
		ctx = atom.Tr
	case atom.Tbody, atom.Thead, atom.Tfoot, atom.Caption, atom.Colgroup:
		ctx = atom.Table
	case atom.Col:
		ctx = atom.Colgroup
	}
	return &html.Node{Type: html.ElementNode, DataAtom: ctx, Data: ctx.String()}
}

// firstElement returns the first element among top-level parsed nodes.
func firstElement(nodes []*html.Node) *html.Node {
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

// renderStartTag serializes n's start tag with the DOM serializer. A void
// element keeps the "/>" ending only when its source tag had one.
func renderStartTag(n *html.Node, selfClosing bool) (string, error) {
	shallow := &html.Node{
		Type:      html.ElementNode,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      n.Attr,
	}

	var buf strings.Builder
	if err := html.Render(&buf, shallow); err != nil {
		return "", err
	}

	tag := strings.TrimSuffix(buf.String(), "</"+n.Data+">")
	if open, ok := strings.CutSuffix(tag, "/>"); ok && !selfClosing {
		tag = open + ">"
	}
	return tag, nil
}

// setAttr drops any existing key attribute and appends key=value last.
func setAttr(n *html.Node, key, value string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = append(attrs, html.Attribute{Key: key, Val: value})
}
