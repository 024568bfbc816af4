package narrate

import (
	"context"

	json "github.com/goccy/go-json"
)

// PayloadType is the content type sent with every payload.
const PayloadType = "article"

// Payload is the content-creation request for the speech service. Body is the
// assembled content body, unmodified. Transport is left to the caller.
type Payload struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	SourceID       string `json:"source_id"`
	Published      bool   `json:"published"`
	TitleVoiceID   *int   `json:"title_voice_id,omitempty"`
	BodyVoiceID    *int   `json:"body_voice_id,omitempty"`
	SummaryVoiceID *int   `json:"summary_voice_id,omitempty"`
}

// BuildPayload assembles doc and wraps the body in a Payload.
func (a *Assembler) BuildPayload(doc Document) Payload {
	s := a.cfg.settings
	return Payload{
		Type:           PayloadType,
		Title:          doc.Title,
		Body:           a.AssembleDocument(doc),
		SourceID:       doc.ID,
		Published:      doc.Status.IsPublished(),
		TitleVoiceID:   s.TitleVoiceID,
		BodyVoiceID:    s.BodyVoiceID,
		SummaryVoiceID: s.SummaryVoice(doc),
	}
}

// Payload resolves id and builds its Payload.
func (a *Assembler) Payload(ctx context.Context, id string) (Payload, error) {
	doc, err := a.Document(ctx, id)
	if err != nil {
		return Payload{}, err
	}
	return a.BuildPayload(doc), nil
}

// MarshalIndent encodes p as indented JSON. Markup in the body is not
// HTML-escaped.
func (p Payload) MarshalIndent() ([]byte, error) {
	return json.MarshalIndentWithOption(p, "", "  ", json.DisableHTMLEscape())
}
