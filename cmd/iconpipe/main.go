// Command iconpipe builds an SVG icon manifest from a directory tree.
//
// Usage:
//
//	iconpipe -input icons -output dist                 # one-shot build
//	iconpipe -input icons -output dist -watch          # rebuild on change
//	iconpipe -config iconpipe.yaml -force              # ignore the build cache
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/hazyhaar/iconpipe/assetpipe"
	"github.com/hazyhaar/iconpipe/buildcache"
	"github.com/hazyhaar/iconpipe/manifest"
	"github.com/hazyhaar/iconpipe/validate"
	"github.com/hazyhaar/iconpipe/watch"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to iconpipe.yaml config file")
	input := flag.String("input", env("ICONPIPE_INPUT", ""), "icon tree root (optimized SVGs plus __original__)")
	output := flag.String("output", env("ICONPIPE_OUTPUT", ""), "directory receiving the manifest")
	outFile := flag.String("out-file", "", "manifest file name (default: <strategy>.json)")
	strategy := flag.String("strategy", "", "strategy label stamped on every entry")
	watchMode := flag.Bool("watch", false, "poll the input tree and rebuild on change")
	force := flag.Bool("force", false, "build even when the cache says nothing changed")
	history := flag.Bool("history", false, "print recent cached builds and exit")
	logLevel := flag.String("log-level", env("ICONPIPE_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := runOptions{
		configPath: *configPath,
		input:      *input,
		output:     *output,
		outFile:    *outFile,
		strategy:   *strategy,
		watch:      *watchMode,
		force:      *force,
		history:    *history,
	}
	if err := run(ctx, logger, opts); err != nil {
		logger.Error("iconpipe: fatal", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	configPath string
	input      string
	output     string
	outFile    string
	strategy   string
	watch      bool
	force      bool
	history    bool
}

func run(ctx context.Context, logger *slog.Logger, opts runOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.input != "" {
		cfg.Input = opts.input
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	if opts.outFile != "" {
		cfg.OutputFile = opts.outFile
	}
	if opts.strategy != "" {
		cfg.Strategy = opts.strategy
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	var store *buildcache.Store
	if cfg.Cache.Path != "" {
		store, err = buildcache.Open(cfg.Cache.Path, buildcache.WithMkdirAll())
		if err != nil {
			return err
		}
		defer store.Close()
	}

	if opts.history {
		return printHistory(ctx, store, cfg.Cache.History)
	}

	pipe, writer, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}

	b := &builder{
		cfg:    cfg,
		logger: logger,
		pipe:   pipe,
		writer: writer,
		store:  store,
		force:  opts.force,
	}

	if !opts.watch {
		return b.build(ctx)
	}

	// Watch mode: one build up front, then rebuild on tree change. A
	// failing build is logged and retried on the next change, matching
	// the one-shot exit-code contract only for the initial run.
	if err := b.build(ctx); err != nil {
		return err
	}
	w := watch.New(watch.TreeDetector(cfg.Input), watch.Options{
		Interval: cfg.Watch.Interval,
		Debounce: cfg.Watch.Debounce,
		Logger:   logger,
	})
	w.OnChange(ctx, func() error {
		// Every change already implies a new fingerprint; skip the
		// cache check and rebuild unconditionally.
		return b.run(ctx, "")
	})
	return nil
}

// newPipeline assembles the assetpipe configuration from the resolved
// config.
func newPipeline(cfg *config, logger *slog.Logger) (*assetpipe.Pipeline, assetpipe.ManifestWriter, error) {
	idGen, err := cfg.idGen()
	if err != nil {
		return nil, nil, err
	}
	cpGen, err := cfg.copypastaGen()
	if err != nil {
		return nil, nil, err
	}

	pcfg := assetpipe.Config{
		InputDir:     cfg.Input,
		OutputDir:    cfg.Output,
		OutputFile:   cfg.OutputFile,
		Strategy:     cfg.Strategy,
		StripPath:    cfg.StripPath,
		Annotation:   cfg.Annotation,
		MaxFileSize:  int64(cfg.MaxFileKB) * 1024,
		ParseCache:   cfg.ParseCacheSize,
		IDGen:        idGen,
		CopypastaGen: cpGen,
		Logger:       logger,
	}
	if cfg.Validate {
		pcfg.Validate = validate.Assets(validate.Options{
			Strict: cfg.Strict,
			Logger: logger,
		})
	}
	return assetpipe.New(pcfg), &manifest.FileWriter{}, nil
}

// builder runs complete manifest builds, consulting the cache when one
// is configured.
type builder struct {
	cfg    *config
	logger *slog.Logger
	pipe   *assetpipe.Pipeline
	writer assetpipe.ManifestWriter
	store  *buildcache.Store
	force  bool
}

// build fingerprints the input tree, skips the run when the cache says
// nothing changed, and otherwise delegates to run.
func (b *builder) build(ctx context.Context) error {
	fp, err := watch.TreeFingerprint(ctx, b.cfg.Input)
	if err != nil {
		return err
	}
	if b.store != nil && !b.force {
		last, err := b.store.LastFingerprint(ctx)
		if err != nil {
			return err
		}
		if last == fp && fileExists(b.pipe.OutputPath()) {
			b.logger.Info("input unchanged, skipping build",
				"manifest", b.pipe.OutputPath(), "fingerprint", fp)
			return nil
		}
	}
	return b.run(ctx, fp)
}

// run executes one complete build and records it in the cache. An empty
// fingerprint is computed on demand for the cache record.
func (b *builder) run(ctx context.Context, fp string) error {
	start := time.Now()
	runID := buildcache.NewBuildID()

	items, err := b.pipe.Build(ctx)
	if err != nil {
		return err
	}
	out := b.pipe.OutputPath()
	if err := b.writer.WriteManifest(out, items); err != nil {
		return err
	}
	elapsed := time.Since(start)

	attrs := []any{
		"run_id", runID,
		"items", len(items),
		"manifest", out,
		"size", manifestSize(out),
		"duration", elapsed,
	}
	if b.cfg.Annotation != "" {
		attrs = append(attrs, "annotation", b.cfg.Annotation)
	}
	b.logger.Info("build complete", attrs...)

	if b.store == nil {
		return nil
	}
	if fp == "" {
		// Fingerprint the tree as it was consumed; racing edits just
		// cause one extra rebuild later.
		if fp, err = watch.TreeFingerprint(ctx, b.cfg.Input); err != nil {
			return err
		}
	}
	return b.store.Save(ctx, buildcache.Record{
		ID:           runID,
		Fingerprint:  fp,
		ItemCount:    len(items),
		ManifestPath: out,
		Annotation:   b.cfg.Annotation,
		Duration:     elapsed,
	})
}

// printHistory lists recent cached builds on stdout.
func printHistory(ctx context.Context, store *buildcache.Store, limit int) error {
	if store == nil {
		return fmt.Errorf("no build cache configured (set cache.path)")
	}
	if limit <= 0 {
		limit = defaultConfig().Cache.History
	}
	recs, err := store.History(ctx, limit)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		fmt.Printf("%s  %-8s  %4d items  %s  %s\n",
			rec.ID, humanize.Time(rec.CreatedAt), rec.ItemCount,
			rec.Duration.Round(time.Millisecond), rec.ManifestPath)
	}
	return nil
}

func manifestSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "unknown"
	}
	return humanize.Bytes(uint64(info.Size()))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
