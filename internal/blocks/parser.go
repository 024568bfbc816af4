package blocks

import (
	"regexp"

	json "github.com/goccy/go-json"
)

// delimiterPattern matches block opener, closer and void delimiters.
// Captures: 1=closer slash, 2=namespace with trailing slash, 3=name, 4=attrs JSON, 5=void slash.
// The attrs never contain "-->", so an opener missing its closing brace cannot
// reach into a later comment.
var delimiterPattern = regexp.MustCompile(
	`<!--\s+(/)?wp:([a-z][a-z0-9_-]*/)?([a-z][a-z0-9_-]*)\s+` +
		`(\{(?:[^-]|-[^-]|--+[^->])*?\}\s+)?(/)?-->`)

type tokenKind int

const (
	tokenNone tokenKind = iota
	tokenOpener
	tokenCloser
	tokenVoid
)

type token struct {
	kind   tokenKind
	name   string
	attrs  map[string]any
	start  int
	length int
}

// frame tracks an open block while its closer is searched for.
type frame struct {
	block      Block
	tokenStart int
	prevOffset int
}

func (f *frame) addHTML(s string) {
	if s == "" {
		return
	}
	f.block.InnerHTML += s
	f.block.InnerContent = append(f.block.InnerContent, Fragment{HTML: s})
}

func (f *frame) addChild(b Block) {
	f.block.InnerBlocks = append(f.block.InnerBlocks, b)
	f.block.InnerContent = append(f.block.InnerContent, Fragment{IsBlock: true})
}

// Parse splits serialized block markup into top-level blocks in document order.
// Parse never fails: unclosed blocks are closed at end of input, stray closers
// are dropped, and malformed attribute JSON yields empty attributes.
func Parse(document string) []Block {
	var (
		output []Block
		stack  []*frame
		offset int
	)

	for {
		tok := nextToken(document, offset)

		switch tok.kind {
		case tokenNone:
			if len(stack) == 0 {
				output = appendFreeform(output, document[offset:])
				return output
			}
			// Close whatever is still open at end of input.
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				top.addHTML(document[top.prevOffset:])
				if len(stack) == 0 {
					output = append(output, top.block)
					break
				}
				parent := stack[len(stack)-1]
				parent.addHTML(document[parent.prevOffset:top.tokenStart])
				parent.addChild(top.block)
				parent.prevOffset = len(document)
			}
			return output

		case tokenVoid:
			b := Block{Name: tok.name, Attrs: tok.attrs}
			if len(stack) == 0 {
				output = appendFreeform(output, document[offset:tok.start])
				output = append(output, b)
			} else {
				parent := stack[len(stack)-1]
				parent.addHTML(document[parent.prevOffset:tok.start])
				parent.addChild(b)
				parent.prevOffset = tok.start + tok.length
			}

		case tokenOpener:
			if len(stack) == 0 {
				output = appendFreeform(output, document[offset:tok.start])
			}
			stack = append(stack, &frame{
				block:      Block{Name: tok.name, Attrs: tok.attrs},
				tokenStart: tok.start,
				prevOffset: tok.start + tok.length,
			})

		case tokenCloser:
			if len(stack) == 0 {
				// Nothing to close; drop the stray delimiter.
				output = appendFreeform(output, document[offset:tok.start])
				break
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			top.addHTML(document[top.prevOffset:tok.start])
			if len(stack) == 0 {
				output = append(output, top.block)
			} else {
				parent := stack[len(stack)-1]
				parent.addHTML(document[parent.prevOffset:top.tokenStart])
				parent.addChild(top.block)
				parent.prevOffset = tok.start + tok.length
			}
		}

		offset = tok.start + tok.length
	}
}

// appendFreeform adds html as a nameless block when it is not empty.
func appendFreeform(output []Block, html string) []Block {
	if html == "" {
		return output
	}
	return append(output, Block{
		InnerHTML:    html,
		InnerContent: []Fragment{{HTML: html}},
	})
}

// nextToken finds the next block delimiter at or after offset.
func nextToken(document string, offset int) token {
	loc := delimiterPattern.FindStringSubmatchIndex(document[offset:])
	if loc == nil {
		return token{kind: tokenNone}
	}

	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return document[offset+loc[2*i] : offset+loc[2*i+1]]
	}

	namespace := group(2)
	if namespace == "" {
		namespace = "core/"
	}

	tok := token{
		name:   namespace + group(3),
		attrs:  decodeAttrs(group(4)),
		start:  offset + loc[0],
		length: loc[1] - loc[0],
	}

	switch {
	case group(1) != "":
		tok.kind = tokenCloser
	case group(5) != "":
		tok.kind = tokenVoid
	default:
		tok.kind = tokenOpener
	}
	return tok
}

// decodeAttrs parses the JSON attribute object of a delimiter.
func decodeAttrs(raw string) map[string]any {
	attrs := map[string]any{}
	if raw == "" {
		return attrs
	}
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return map[string]any{}
	}
	return attrs
}
