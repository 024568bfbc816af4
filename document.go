package narrate

import (
	"fmt"

	"github.com/alnah/go-narrate/internal/yamlutil"
)

// documentFile is the on-disk form of a Document (YAML or JSON).
type documentFile struct {
	ID             string `yaml:"id" json:"id"`
	Title          string `yaml:"title" json:"title"`
	Status         string `yaml:"status" json:"status"`
	Excerpt        string `yaml:"excerpt" json:"excerpt"`
	Content        string `yaml:"content" json:"content"`
	SummaryVoiceID *int   `yaml:"summary_voice_id" json:"summary_voice_id"`
}

// ReadDocumentFile loads a Document from a YAML or JSON file. Unknown fields
// are rejected. The document id defaults to the file path.
func ReadDocumentFile(path string) (Document, error) {
	var f documentFile
	if err := yamlutil.ReadFileStrict(path, &f); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrDocumentParse, err)
	}

	if f.SummaryVoiceID != nil && *f.SummaryVoiceID <= 0 {
		return Document{}, fmt.Errorf("%w: %s: summary_voice_id %d (must be > 0)", ErrInvalidVoiceID, path, *f.SummaryVoiceID)
	}

	id := f.ID
	if id == "" {
		id = path
	}

	return Document{
		ID:             id,
		Title:          f.Title,
		Content:        f.Content,
		Excerpt:        f.Excerpt,
		Status:         ParseStatus(f.Status),
		SummaryVoiceID: f.SummaryVoiceID,
	}, nil
}
