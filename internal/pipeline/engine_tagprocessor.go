package pipeline

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// TagProcessorEngine splices attributes into the first start tag found by a
// streaming tokenizer. No tree is built and every byte outside the rewritten
// tag is copied through untouched.
type TagProcessorEngine struct{}

// Name implements AttributeInjector.
func (TagProcessorEngine) Name() string { return string(EngineTagProcessor) }

// SetRootAttribute implements AttributeInjector.
func (TagProcessorEngine) SetRootAttribute(fragment, key, value string) (string, error) {
	tag, err := findStartTag(fragment, "")
	if err != nil {
		return fragment, err
	}
	rewritten := spliceAttribute(fragment[tag.start:tag.end], key, value)
	return fragment[:tag.start] + rewritten + fragment[tag.end:], nil
}

// startTag is the byte span of one start tag in a fragment.
type startTag struct {
	name        string // lowercase
	start, end  int
	selfClosing bool
}

// findStartTag returns the first start tag named name (case-insensitive), or
// the first start tag of any name when name is "". It returns
// ErrNoRootElement when there is none.
func findStartTag(fragment, name string) (startTag, error) {
	z := html.NewTokenizer(strings.NewReader(fragment))

	offset := 0
	for {
		tt := z.Next()
		size := len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return startTag{}, ErrNoRootElement
			}
			return startTag{}, z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			tagName, _ := z.TagName()
			if name == "" || strings.EqualFold(string(tagName), name) {
				return startTag{
					name:        string(tagName),
					start:       offset,
					end:         offset + size,
					selfClosing: tt == html.SelfClosingTagToken,
				}, nil
			}
		}

		offset += size
	}
}

// attrSpan locates one attribute inside a raw start tag. start includes the
// whitespace preceding the attribute so removal leaves no gap behind.
type attrSpan struct {
	start, nameStart, nameEnd, end int
}

// spliceAttribute removes every key attribute from the raw start tag and
// appends key="value" after the remaining attributes.
func spliceAttribute(tag, key, value string) string {
	spans, closeAt := scanStartTag(tag)

	var b strings.Builder
	b.Grow(len(tag) + len(key) + len(value) + 4)

	prev := 0
	for _, s := range spans {
		if strings.EqualFold(tag[s.nameStart:s.nameEnd], key) {
			b.WriteString(tag[prev:s.start])
			prev = s.end
		}
	}
	b.WriteString(tag[prev:closeAt])

	// Whitespace before the close stays between the new attribute and the close.
	head := b.String()
	trimmed := strings.TrimRight(head, " \t\n\f\r")

	return trimmed + " " + key + `="` + html.EscapeString(value) + `"` + head[len(trimmed):] + tag[closeAt:]
}

// scanStartTag walks a raw start tag with the tokenizer's attribute rules and
// returns the attribute spans and the index of the closing ">" or "/>".
func scanStartTag(tag string) ([]attrSpan, int) {
	n := len(tag)
	i := 1

	// Tag name.
	for i < n && !isSpace(tag[i]) && tag[i] != '/' && tag[i] != '>' {
		i++
	}

	var spans []attrSpan
	for {
		start := i
		for i < n && (isSpace(tag[i]) || (tag[i] == '/' && !(i+1 < n && tag[i+1] == '>'))) {
			i++
		}
		if i >= n {
			return spans, n
		}
		if tag[i] == '>' || (tag[i] == '/' && i+1 < n && tag[i+1] == '>') {
			return spans, i
		}

		nameStart := i
		i++ // an initial '=' belongs to the name
		for i < n && !isSpace(tag[i]) && tag[i] != '/' && tag[i] != '>' && tag[i] != '=' {
			i++
		}
		nameEnd := i

		j := i
		for j < n && isSpace(tag[j]) {
			j++
		}
		if j < n && tag[j] == '=' {
			j++
			for j < n && isSpace(tag[j]) {
				j++
			}
			switch {
			case j < n && (tag[j] == '"' || tag[j] == '\''):
				q := tag[j]
				j++
				for j < n && tag[j] != q {
					j++
				}
				if j < n {
					j++
				}
			default:
				for j < n && !isSpace(tag[j]) && tag[j] != '>' {
					j++
				}
			}
			i = j
		}

		spans = append(spans, attrSpan{start: start, nameStart: nameStart, nameEnd: nameEnd, end: i})
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
