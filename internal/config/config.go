package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"unicode/utf8"

	validator "github.com/go-playground/validator/v10"

	"github.com/alnah/go-narrate/internal/content"
	"github.com/alnah/go-narrate/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Engine names accepted by the engine field.
const (
	EngineAuto         = "auto"
	EngineTagProcessor = "tag-processor"
	EngineDOM          = "dom"
)

// Log levels accepted by logging.level.
const (
	LogNone   = "none"
	LogNormal = "normal"
	LogDebug  = "debug"
)

// Config holds all configuration for body assembly.
type Config struct {
	Excerpt    ExcerptConfig     `yaml:"excerpt"`
	Voices     VoicesConfig      `yaml:"voices"`
	Engine     string            `yaml:"engine" validate:"omitempty,oneof=auto tag-processor dom"`
	Logging    LoggingConfig     `yaml:"logging"`
	Shortcodes []ShortcodeConfig `yaml:"shortcodes" validate:"max=256,dive"`
	Store      StoreConfig       `yaml:"store"`
}

// ExcerptConfig controls the summary spoken before the body.
type ExcerptConfig struct {
	Prepend bool `yaml:"prepend"`
}

// VoicesConfig holds the default voice ids. Absent means "let the service choose".
type VoicesConfig struct {
	Title   *int `yaml:"title" validate:"omitempty,gt=0"`
	Body    *int `yaml:"body" validate:"omitempty,gt=0"`
	Summary *int `yaml:"summary" validate:"omitempty,gt=0"`
}

// LoggingConfig selects the CLI log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"required,oneof=none normal debug"`
}

// ShortcodeConfig is a static shortcode expansion, e.g. [brand] -> "ACME".
type ShortcodeConfig struct {
	Name    string `yaml:"name" validate:"required,max=64,shortcode"`
	Replace string `yaml:"replace" validate:"max=2048"`
}

// StoreConfig locates the SQLite document store.
type StoreConfig struct {
	Path string `yaml:"path" validate:"max=4096"`
}

// Validate checks the configuration against its struct tags.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	fe := verrs[0]
	field := fieldPath(fe)

	switch {
	case fe.Tag() == "max" && fe.Kind() == reflect.String:
		return fmt.Errorf("%w: %s (%d chars, max %s)", ErrFieldTooLong, field, utf8.RuneCountInString(fmt.Sprint(fe.Value())), fe.Param())
	case strings.HasPrefix(field, "voices."):
		return fmt.Errorf("%w: %s must be > 0", content.ErrInvalidVoiceID, field)
	case fe.Param() != "":
		return fmt.Errorf("%w: %s: failed %q (%s), got %v", ErrInvalidConfig, field, fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%w: %s: failed %q, got %q", ErrInvalidConfig, field, fe.Tag(), fmt.Sprint(fe.Value()))
	}
}

// Settings converts the configuration into pipeline settings.
func (c *Config) Settings() content.Settings {
	return content.Settings{
		PrependExcerpt: c.Excerpt.Prepend,
		SummaryVoiceID: c.Voices.Summary,
		BodyVoiceID:    c.Voices.Body,
		TitleVoiceID:   c.Voices.Title,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("shortcode", func(fl validator.FieldLevel) bool {
		return isShortcodeName(fl.Field().String())
	})
	return v
}

// fieldPath returns the yaml path of a failed field without the root type name.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func isShortcodeName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c == '-' || c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')) {
			return false
		}
	}
	return true
}

// DefaultConfig returns a configuration with excerpt prepending off, no voice
// ids, automatic engine selection and normal logging.
func DefaultConfig() *Config {
	return &Config{
		Excerpt: ExcerptConfig{Prepend: false},
		Engine:  EngineAuto,
		Logging: LoggingConfig{Level: LogNormal},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-narrate/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-narrate", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
