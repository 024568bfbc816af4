package blocks

import "strings"

// Attribute keys the narration pipeline reads from a block.
const (
	AttrAudioEnabled = "audioEnabled"
	AttrMarker       = "marker"
)

// delimiterPrefix opens every serialized block comment.
const delimiterPrefix = "<!-- wp:"

// Fragment is one piece of a block's inner content: literal markup, or a
// slot for the next entry of InnerBlocks.
type Fragment struct {
	HTML    string
	IsBlock bool
}

// Block is a structural content node. Blocks are immutable inputs.
type Block struct {
	Name         string // namespaced type, e.g. "core/paragraph"; empty for freeform HTML
	Attrs        map[string]any
	InnerBlocks  []Block
	InnerHTML    string     // inner markup with child blocks removed
	InnerContent []Fragment // InnerHTML interleaved with child slots
}

// IsFreeform reports whether b is markup found outside any block delimiter.
func (b Block) IsFreeform() bool {
	return b.Name == ""
}

// AudioEnabled reports whether the block contributes audio. Only an explicit
// boolean false disables it.
func (b Block) AudioEnabled() bool {
	v, ok := b.Attrs[AttrAudioEnabled].(bool)
	return !ok || v
}

// Marker returns the block's marker attribute, or "" when absent or not a string.
func (b Block) Marker() string {
	s, _ := b.Attrs[AttrMarker].(string)
	return s
}

// HasBlocks reports whether content contains serialized block delimiters.
func HasBlocks(content string) bool {
	return strings.Contains(content, delimiterPrefix)
}
