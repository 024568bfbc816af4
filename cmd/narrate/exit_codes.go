package main

import (
	"errors"
	"os"

	narrate "github.com/alnah/go-narrate"
	"github.com/alnah/go-narrate/internal/config"
	"github.com/alnah/go-narrate/internal/logging"
	"github.com/alnah/go-narrate/internal/store"
)

// Exit codes for the narrate CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Every document assembled
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or document file
	ExitIO       = 3 // File not found, permission denied, store unavailable
	ExitNotFound = 4 // A requested document id does not exist
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// Combined batch errors map to the first matching class in this order.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Unknown document (exit 4)
	if errors.Is(err, narrate.ErrContentNotFound) {
		return ExitNotFound
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, store.ErrStoreOpen) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrConflictInput) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, logging.ErrUnknownLevel) ||
		errors.Is(err, narrate.ErrDocumentParse) ||
		errors.Is(err, narrate.ErrInvalidVoiceID) ||
		errors.Is(err, narrate.ErrUnknownEngine) {
		return ExitUsage
	}

	return ExitGeneral
}
