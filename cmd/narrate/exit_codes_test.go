package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"go.uber.org/multierr"

	narrate "github.com/alnah/go-narrate"
	"github.com/alnah/go-narrate/internal/config"
	"github.com/alnah/go-narrate/internal/logging"
	"github.com/alnah/go-narrate/internal/store"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		{"content not found", narrate.ErrContentNotFound, ExitNotFound},
		{"wrapped content not found", fmt.Errorf("1 of 2 documents failed: %w", narrate.ErrContentNotFound), ExitNotFound},

		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"store open", store.ErrStoreOpen, ExitIO},
		{"document file missing", fmt.Errorf("%w: %w", narrate.ErrDocumentParse, os.ErrNotExist), ExitIO},

		{"usage", ErrUsage, ExitUsage},
		{"conflict input", ErrConflictInput, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config", config.ErrInvalidConfig, ExitUsage},
		{"unknown level", logging.ErrUnknownLevel, ExitUsage},
		{"document parse", narrate.ErrDocumentParse, ExitUsage},
		{"invalid voice id", narrate.ErrInvalidVoiceID, ExitUsage},
		{"unknown engine", narrate.ErrUnknownEngine, ExitUsage},

		{"unknown error", errors.New("boom"), ExitGeneral},
		{"combined not found wins", multierr.Append(narrate.ErrDocumentParse, narrate.ErrContentNotFound), ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard codes changed: success=%d general=%d usage=%d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitNotFound} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom code %d must be in (2, 126)", code)
		}
	}
}
