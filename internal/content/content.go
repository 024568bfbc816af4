// Package content defines the documents the narration pipeline reads and the
// read-only settings it runs with.
package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidVoiceID indicates a configured voice identifier is not positive.
var ErrInvalidVoiceID = errors.New("invalid voice id")

// Status is the publication state of a document.
type Status string

// Known document statuses. Anything else is kept verbatim and treated as StatusOther.
const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusPublished Status = "publish"
	StatusScheduled Status = "future"
	StatusPrivate   Status = "private"
	StatusOther     Status = "other"
)

// ParseStatus maps a stored status string to a Status.
// Common aliases ("published", "scheduled") are accepted; unknown values yield StatusOther.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draft", "":
		return StatusDraft
	case "pending":
		return StatusPending
	case "publish", "published":
		return StatusPublished
	case "future", "scheduled":
		return StatusScheduled
	case "private":
		return StatusPrivate
	}
	return StatusOther
}

// IsPublished reports whether the document is publicly visible.
func (s Status) IsPublished() bool {
	return s == StatusPublished
}

// Document is a source article. It is owned by the content store and never
// mutated by the pipeline.
type Document struct {
	ID      string
	Title   string
	Content string // flat HTML or serialized block markup
	Excerpt string
	Status  Status

	// SummaryVoiceID overrides Settings.SummaryVoiceID for this document.
	SummaryVoiceID *int
}

// Settings is the configuration the pipeline reads during a run.
type Settings struct {
	PrependExcerpt bool
	SummaryVoiceID *int
	BodyVoiceID    *int
	TitleVoiceID   *int
}

// Validate checks that every configured voice id is positive.
func (s Settings) Validate() error {
	for _, v := range []struct {
		name string
		id   *int
	}{
		{"summary", s.SummaryVoiceID},
		{"body", s.BodyVoiceID},
		{"title", s.TitleVoiceID},
	} {
		if v.id != nil && *v.id <= 0 {
			return fmt.Errorf("%w: %s voice id %d (must be > 0)", ErrInvalidVoiceID, v.name, *v.id)
		}
	}
	return nil
}

// SummaryVoice returns the voice id used for the document summary, preferring
// the document's own override.
func (s Settings) SummaryVoice(doc Document) *int {
	if doc.SummaryVoiceID != nil {
		return doc.SummaryVoiceID
	}
	return s.SummaryVoiceID
}

// IntPtr returns a pointer to v. Convenience for optional voice ids.
func IntPtr(v int) *int {
	return &v
}
