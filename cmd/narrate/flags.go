package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for argument handling.
var (
	ErrUsage         = errors.New("invalid usage")
	ErrNoInput       = errors.New("no input specified")
	ErrConflictInput = errors.New("document files and --db cannot be combined")
)

// cliFlags holds every command-line flag.
type cliFlags struct {
	config  string
	db      string
	ids     []string
	all     bool
	payload bool
	out     string
	workers int
	engine  string
	excerpt bool
	quiet   bool
	verbose bool
	version bool
	help    bool

	// excerptSet reports whether --excerpt was given explicitly.
	excerptSet bool
}

const usageHeader = `Usage:
  narrate [flags] <document.yaml|document.json>...
  narrate [flags] --db <store.sqlite> (--id <id>... | --all)

Assembles the speech-synthesis content body of each document.

Flags:
`

func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("narrate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.StringVarP(&f.config, "config", "c", "", "config file path or name")
	fs.StringVar(&f.db, "db", "", "SQLite document store (default: store.path from config)")
	fs.StringSliceVar(&f.ids, "id", nil, "document id to assemble from the store (repeatable)")
	fs.BoolVar(&f.all, "all", false, "assemble every document in the store")
	fs.BoolVar(&f.payload, "payload", false, "print the JSON request payload instead of the body")
	fs.StringVarP(&f.out, "out", "o", "", "write one file per document into this directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.engine, "engine", "", "injection engine: auto, tag-processor, dom")
	fs.BoolVar(&f.excerpt, "excerpt", false, "prepend the excerpt summary (overrides config)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only print errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")
	return fs
}

// parseFlags parses os.Args-style arguments (program name first).
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := newFlagSet(f)

	if len(args) > 0 {
		args = args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	f.excerptSet = fs.Changed("excerpt")

	if f.quiet && f.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	if f.workers < 0 {
		return nil, nil, fmt.Errorf("%w: --workers must be >= 0, got %d", ErrUsage, f.workers)
	}

	return f, fs.Args(), nil
}

// validateInput checks that exactly one input mode was chosen.
func (f *cliFlags) validateInput(positional []string, storePath string) error {
	fromStore := len(f.ids) > 0 || f.all
	switch {
	case len(positional) > 0 && fromStore:
		return ErrConflictInput
	case len(positional) > 0:
		return nil
	case !fromStore:
		return ErrNoInput
	case storePath == "":
		return fmt.Errorf("%w: --id and --all need --db or store.path", ErrUsage)
	case f.all && len(f.ids) > 0:
		return fmt.Errorf("%w: --id and --all are mutually exclusive", ErrUsage)
	}
	return nil
}

// usage returns the help text.
func usage() string {
	var b strings.Builder
	b.WriteString(usageHeader)
	b.WriteString(newFlagSet(&cliFlags{}).FlagUsages())
	return b.String()
}
