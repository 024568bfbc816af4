package pipeline

import (
	"regexp"
	"strings"
	"sync"
)

// ShortcodeHandler renders one shortcode occurrence. content is empty for
// self-closing shortcodes.
type ShortcodeHandler func(attrs map[string]string, content string) string

// shortcodeAttr matches name="v", name='v' and name=v attribute pairs.
var shortcodeAttr = regexp.MustCompile(`([\w-]+)\s*=\s*"([^"]*)"|([\w-]+)\s*=\s*'([^']*)'|([\w-]+)\s*=\s*([^\s'"\]]+)`)

// Shortcodes is a registry of bracketed shortcodes such as [brand] or
// [note type="tip"]text[/note]. Unregistered shortcodes are left untouched.
// A registry is safe for concurrent use.
type Shortcodes struct {
	mu       sync.RWMutex
	handlers map[string]ShortcodeHandler
}

// NewShortcodes creates an empty registry.
func NewShortcodes() *Shortcodes {
	return &Shortcodes{handlers: make(map[string]ShortcodeHandler)}
}

// Register installs handler for name, replacing any previous handler.
func (s *Shortcodes) Register(name string, handler ShortcodeHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[strings.ToLower(name)] = handler
}

// RegisterStatic registers a shortcode that always expands to replacement.
func (s *Shortcodes) RegisterStatic(name, replacement string) {
	s.Register(name, func(map[string]string, string) string { return replacement })
}

// Expand replaces every registered shortcode in text with its handler output.
func (s *Shortcodes) Expand(text string) string {
	return s.rewrite(text, func(h ShortcodeHandler, attrs map[string]string, content string) string {
		return h(attrs, content)
	})
}

// Strip removes every registered shortcode from text. Enclosing shortcodes
// keep their inner content.
func (s *Shortcodes) Strip(text string) string {
	return s.rewrite(text, func(_ ShortcodeHandler, _ map[string]string, content string) string {
		return content
	})
}

func (s *Shortcodes) lookup(name string) (ShortcodeHandler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.handlers[strings.ToLower(name)]
	return h, ok
}

// rewrite scans text for registered shortcodes and replaces each occurrence
// with replace's result. [[name]] escapes a literal [name].
func (s *Shortcodes) rewrite(text string, replace func(ShortcodeHandler, map[string]string, string) string) string {
	if !strings.Contains(text, "[") {
		return text
	}

	var b strings.Builder
	i := 0
	for i < len(text) {
		open := strings.IndexByte(text[i:], '[')
		if open < 0 {
			break
		}
		open += i
		b.WriteString(text[i:open])

		sc, ok := s.parseAt(text, open)
		if !ok {
			b.WriteByte('[')
			i = open + 1
			continue
		}

		if sc.escaped {
			b.WriteString(text[open+1 : sc.end-1])
		} else {
			b.WriteString(replace(sc.handler, sc.attrs, sc.content))
		}
		i = sc.end
	}
	b.WriteString(text[i:])
	return b.String()
}

type shortcode struct {
	handler ShortcodeHandler
	attrs   map[string]string
	content string
	end     int
	escaped bool
}

// parseAt parses a registered shortcode whose opening bracket is at text[open].
func (s *Shortcodes) parseAt(text string, open int) (shortcode, bool) {
	escaped := open+1 < len(text) && text[open+1] == '['
	nameStart := open + 1
	if escaped {
		nameStart++
	}

	nameEnd := nameStart
	for nameEnd < len(text) && isShortcodeNameByte(text[nameEnd]) {
		nameEnd++
	}
	if nameEnd == nameStart {
		return shortcode{}, false
	}
	name := text[nameStart:nameEnd]

	handler, ok := s.lookup(name)
	if !ok {
		return shortcode{}, false
	}

	closeRel := strings.IndexByte(text[nameEnd:], ']')
	if closeRel < 0 {
		return shortcode{}, false
	}
	tagEnd := nameEnd + closeRel
	if nested := strings.IndexByte(text[nameEnd:tagEnd], '['); nested >= 0 {
		return shortcode{}, false
	}
	if c := text[nameEnd]; !(c == ']' || c == '/' || isSpace(c)) {
		return shortcode{}, false
	}

	sc := shortcode{handler: handler}
	rawAttrs := text[nameEnd:tagEnd]
	selfClosing := strings.HasSuffix(strings.TrimSpace(rawAttrs), "/")
	sc.attrs = parseShortcodeAttrs(strings.TrimSuffix(strings.TrimSpace(rawAttrs), "/"))
	sc.end = tagEnd + 1

	if !selfClosing && !escaped {
		closing := "[/" + name + "]"
		if idx := strings.Index(text[sc.end:], closing); idx >= 0 {
			sc.content = text[sc.end : sc.end+idx]
			sc.end += idx + len(closing)
		}
	}

	if escaped {
		if sc.end >= len(text) || text[sc.end] != ']' {
			return shortcode{}, false
		}
		sc.end++
		sc.escaped = true
	}
	return sc, true
}

func parseShortcodeAttrs(raw string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range shortcodeAttr.FindAllStringSubmatch(raw, -1) {
		switch {
		case m[1] != "":
			attrs[strings.ToLower(m[1])] = m[2]
		case m[3] != "":
			attrs[strings.ToLower(m[3])] = m[4]
		case m[5] != "":
			attrs[strings.ToLower(m[5])] = m[6]
		}
	}
	return attrs
}

func isShortcodeNameByte(c byte) bool {
	return c == '-' || c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
