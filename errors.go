package narrate

import (
	"errors"

	"github.com/alnah/go-narrate/internal/content"
	"github.com/alnah/go-narrate/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrContentNotFound = errors.New("content not found")
	ErrNoResolver      = errors.New("no document resolver configured")
	ErrDocumentParse   = errors.New("failed to parse document file")

	// Configuration errors.
	ErrInvalidVoiceID = content.ErrInvalidVoiceID
	ErrUnknownEngine  = pipeline.ErrUnknownEngine
)
