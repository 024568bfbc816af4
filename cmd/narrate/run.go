package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	narrate "github.com/alnah/go-narrate"
	"github.com/alnah/go-narrate/internal/config"
	"github.com/alnah/go-narrate/internal/logging"
	"github.com/alnah/go-narrate/internal/store"
)

// run executes one CLI invocation with parsed flags.
func run(ctx context.Context, flags *cliFlags, positional []string, env *Environment) (err error) {
	if flags.help {
		fmt.Fprint(env.Stdout, usage())
		return nil
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "narrate %s\n", Version)
		return nil
	}

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		return err
	}

	storePath := flags.db
	if storePath == "" {
		storePath = cfg.Store.Path
	}
	if err := flags.validateInput(positional, storePath); err != nil {
		return err
	}

	log, err := logging.New(logLevel(flags, cfg), env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("run", uuid.NewString()))

	opts := []narrate.Option{
		narrate.WithLogger(log),
		narrate.WithSettings(cfg.Settings()),
		narrate.WithEngine(narrate.EngineKind(cfg.Engine)),
	}
	for _, sc := range cfg.Shortcodes {
		opts = append(opts, narrate.WithStaticShortcode(sc.Name, sc.Replace))
	}

	var db *store.SQLiteStore
	if len(positional) == 0 {
		db, err = store.OpenSQLite(storePath)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, db.Close()) }()
		opts = append(opts, narrate.WithResolver(db))
	}

	asm, err := narrate.NewAssembler(opts...)
	if err != nil {
		return err
	}

	var jobs []job
	if db == nil {
		jobs = fileJobs(positional)
	} else {
		ids := flags.ids
		if flags.all {
			if ids, err = db.IDs(ctx); err != nil {
				return err
			}
		}
		jobs = resolverJobs(asm, ids)
	}

	workers := resolveWorkers(flags.workers)
	log.Info("Assembling",
		zap.Int("documents", len(jobs)),
		zap.Int("workers", workers),
		zap.String("engine", asm.Engine()))

	start := env.Now()
	results := assembleBatch(ctx, asm, jobs, workers, flags.payload)

	if err := emit(flags, env, log, results); err != nil {
		return err
	}
	return summarize(log, results, env.Now().Sub(start))
}

// resolveConfig loads the config file, if any, and applies flag overrides.
func resolveConfig(flags *cliFlags, env *Environment) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if env.Config != nil {
		copied := *env.Config
		cfg = &copied
	}

	if flags.config != "" {
		loaded, err := config.LoadConfig(flags.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.engine != "" {
		cfg.Engine = flags.engine
	}
	if flags.excerptSet {
		cfg.Excerpt.Prepend = flags.excerpt
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logLevel picks the log level: flags override the config.
func logLevel(flags *cliFlags, cfg *config.Config) string {
	switch {
	case flags.verbose:
		return logging.LevelDebug
	case flags.quiet:
		return logging.LevelNone
	}
	return cfg.Logging.Level
}

// emit writes successful results to --out or stdout.
func emit(flags *cliFlags, env *Environment, log *zap.Logger, results []Result) error {
	if flags.out == "" {
		return writeStdout(env.Stdout, results)
	}

	paths, err := writeFiles(flags.out, results)
	for _, p := range paths {
		log.Info("Created", zap.String("path", p))
	}
	return err
}

// summarize logs each result and combines the failures into one error.
func summarize(log *zap.Logger, results []Result, elapsed time.Duration) error {
	var errs error
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.Error("Failed", zap.String("source", r.Source), zap.Error(r.Err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.Source, r.Err))
			continue
		}
		log.Debug("Assembled",
			zap.String("source", r.Source),
			zap.Int("bytes", len(r.Body)),
			zap.Duration("took", r.Duration))
		if r.Payload != nil {
			log.Debug("Payload", zap.String("source", r.Source), zap.String("json", payloadLine(*r.Payload)))
		}
	}

	log.Info("Done",
		zap.Int("succeeded", len(results)-failed),
		zap.Int("failed", failed),
		zap.Duration("elapsed", elapsed.Round(time.Millisecond)))

	if errs != nil {
		return fmt.Errorf("%d of %d documents failed: %w", failed, len(results), errs)
	}
	return nil
}
