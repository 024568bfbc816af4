package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-narrate/internal/content"
)

func intPtr(v int) *int { return &v }

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Excerpt.Prepend {
		t.Error("Excerpt.Prepend = true, want false")
	}
	if cfg.Engine != EngineAuto {
		t.Errorf("Engine = %q, want %q", cfg.Engine, EngineAuto)
	}
	if cfg.Logging.Level != LogNormal {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, LogNormal)
	}
	if cfg.Voices.Summary != nil || cfg.Voices.Body != nil || cfg.Voices.Title != nil {
		t.Errorf("Voices = %+v, want all nil", cfg.Voices)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		wantMsg string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name: "full config is valid",
			mutate: func(c *Config) {
				c.Excerpt.Prepend = true
				c.Voices = VoicesConfig{Title: intPtr(1), Body: intPtr(2), Summary: intPtr(3)}
				c.Engine = EngineDOM
				c.Logging.Level = LogDebug
				c.Shortcodes = []ShortcodeConfig{{Name: "brand", Replace: "ACME"}}
				c.Store.Path = "docs.sqlite"
			},
		},
		{
			name:   "empty engine means auto",
			mutate: func(c *Config) { c.Engine = "" },
		},
		{
			name:    "unknown engine",
			mutate:  func(c *Config) { c.Engine = "regex" },
			wantErr: ErrInvalidConfig,
			wantMsg: "engine",
		},
		{
			name:    "missing log level",
			mutate:  func(c *Config) { c.Logging.Level = "" },
			wantErr: ErrInvalidConfig,
			wantMsg: "logging.level",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: ErrInvalidConfig,
			wantMsg: "logging.level",
		},
		{
			name:    "zero voice id",
			mutate:  func(c *Config) { c.Voices.Summary = intPtr(0) },
			wantErr: content.ErrInvalidVoiceID,
			wantMsg: "voices.summary",
		},
		{
			name:    "negative voice id",
			mutate:  func(c *Config) { c.Voices.Body = intPtr(-4) },
			wantErr: content.ErrInvalidVoiceID,
			wantMsg: "voices.body",
		},
		{
			name:    "shortcode without name",
			mutate:  func(c *Config) { c.Shortcodes = []ShortcodeConfig{{Replace: "x"}} },
			wantErr: ErrInvalidConfig,
			wantMsg: "shortcodes[0].name",
		},
		{
			name:    "shortcode name with brackets",
			mutate:  func(c *Config) { c.Shortcodes = []ShortcodeConfig{{Name: "[brand]"}} },
			wantErr: ErrInvalidConfig,
			wantMsg: "shortcodes[0].name",
		},
		{
			name: "shortcode replacement too long",
			mutate: func(c *Config) {
				c.Shortcodes = []ShortcodeConfig{{Name: "ok"}, {Name: "brand", Replace: strings.Repeat("x", 2049)}}
			},
			wantErr: ErrFieldTooLong,
			wantMsg: "shortcodes[1].replace",
		},
		{
			name:    "store path too long",
			mutate:  func(c *Config) { c.Store.Path = strings.Repeat("a", 4097) },
			wantErr: ErrFieldTooLong,
			wantMsg: "store.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestConfig_Settings(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Excerpt.Prepend = true
	cfg.Voices = VoicesConfig{Title: intPtr(1), Summary: intPtr(3)}

	s := cfg.Settings()
	if !s.PrependExcerpt {
		t.Error("PrependExcerpt = false, want true")
	}
	if s.TitleVoiceID == nil || *s.TitleVoiceID != 1 {
		t.Errorf("TitleVoiceID = %v, want 1", s.TitleVoiceID)
	}
	if s.BodyVoiceID != nil {
		t.Errorf("BodyVoiceID = %v, want nil", *s.BodyVoiceID)
	}
	if s.SummaryVoiceID == nil || *s.SummaryVoiceID != 3 {
		t.Errorf("SummaryVoiceID = %v, want 3", s.SummaryVoiceID)
	}
}

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid config file", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "narrate.yaml", `
excerpt:
  prepend: true
voices:
  summary: 42
engine: tag-processor
logging:
  level: debug
shortcodes:
  - name: brand
    replace: ACME
store:
  path: docs.sqlite
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if !cfg.Excerpt.Prepend {
			t.Error("Excerpt.Prepend = false, want true")
		}
		if cfg.Voices.Summary == nil || *cfg.Voices.Summary != 42 {
			t.Errorf("Voices.Summary = %v, want 42", cfg.Voices.Summary)
		}
		if cfg.Engine != EngineTagProcessor {
			t.Errorf("Engine = %q, want %q", cfg.Engine, EngineTagProcessor)
		}
		if cfg.Logging.Level != LogDebug {
			t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, LogDebug)
		}
		if len(cfg.Shortcodes) != 1 || cfg.Shortcodes[0].Replace != "ACME" {
			t.Errorf("Shortcodes = %+v", cfg.Shortcodes)
		}
		if cfg.Store.Path != "docs.sqlite" {
			t.Errorf("Store.Path = %q", cfg.Store.Path)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "narrate.yaml", "excerpt:\n  prepend: true\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Engine != EngineAuto || cfg.Logging.Level != LogNormal {
			t.Errorf("defaults lost: engine=%q level=%q", cfg.Engine, cfg.Logging.Level)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing file path", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "engine: [unclosed")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "style: technical\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "voices:\n  body: 0\n")
		if _, err := LoadConfig(path); !errors.Is(err, content.ErrInvalidVoiceID) {
			t.Errorf("error = %v, want ErrInvalidVoiceID", err)
		}
	})

	t.Run("config name resolved from working directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "fromname.yml", "engine: dom\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("fromname")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Engine != EngineDOM {
			t.Errorf("Engine = %q, want %q", cfg.Engine, EngineDOM)
		}
	})

	t.Run("config name not found", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())

		_, err := LoadConfig("nonexistent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})
}
