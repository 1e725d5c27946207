// Package runner orchestrates the analysis pipeline: concurrent file
// reads and extraction, then classification-aware aggregation. One
// file's failure never aborts the run.
package runner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sherwinski/depsort/internal/analyze"
	"github.com/sherwinski/depsort/internal/cache"
	"github.com/sherwinski/depsort/internal/classify"
	"github.com/sherwinski/depsort/internal/extract"
	"github.com/sherwinski/depsort/internal/layout"
)

// Report is the full outcome of one analysis run.
type Report struct {
	RunID        string            `json:"run_id"`
	Root         string            `json:"root"`
	Timestamp    time.Time         `json:"timestamp"`
	FilesScanned int               `json:"files_scanned"`
	Declared     int               `json:"declared_dependencies"`
	Result       *analyze.Result   `json:"result"`
	Warnings     []extract.Warning `json:"warnings"`
	Duration     time.Duration     `json:"duration_ns"`
}

// Options tunes a run.
type Options struct {
	Concurrency int          // parallel file reads; defaults to NumCPU
	Cache       *cache.Cache // nil disables caching
	Logger      *slog.Logger // nil uses slog.Default
}

// Run reads and extracts the given files (paths relative to the layout
// root), then analyzes the declared dependencies against them. Record
// order within a package follows file walk order, keeping reports
// reproducible regardless of extraction scheduling.
func Run(ctx context.Context, lay *layout.Layout, declared, files []string, opts Options) (*Report, error) {
	start := time.Now()
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	perFile := make([][]extract.ImportRecord, len(files))
	perFileWarn := make([]*extract.Warning, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			contents, err := os.ReadFile(filepath.Join(lay.Root, file))
			if err != nil {
				log.Warn("skipping unreadable file", "file", file, "error", err)
				perFileWarn[i] = &extract.Warning{File: file, Message: err.Error()}
				return nil
			}

			if records, ok := opts.Cache.Get(file, contents); ok {
				perFile[i] = records
				return nil
			}

			records, warn := extract.Extract(contents, file)
			perFile[i] = records
			if warn != nil {
				log.Warn("extraction degraded", "file", file, "reason", warn.Message)
				perFileWarn[i] = warn
				return nil // do not cache fallback results
			}
			if err := opts.Cache.Put(file, contents, records); err != nil {
				log.Warn("cache write failed", "file", file, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []extract.ImportRecord
	warnings := []extract.Warning{}
	for i := range files {
		records = append(records, perFile[i]...)
		if perFileWarn[i] != nil {
			warnings = append(warnings, *perFileWarn[i])
		}
	}

	// Memoized classifier: each distinct file is classified once.
	memo := make(map[string]classify.Classification)
	classifier := func(filePath string) classify.Classification {
		if c, ok := memo[filePath]; ok {
			return c
		}
		c := classify.Classify(filePath, lay)
		memo[filePath] = c
		return c
	}

	result := analyze.Analyze(declared, records, classifier)

	return &Report{
		RunID:        uuid.NewString(),
		Root:         lay.Root,
		Timestamp:    time.Now().UTC(),
		FilesScanned: len(files),
		Declared:     len(declared),
		Result:       result,
		Warnings:     warnings,
		Duration:     time.Since(start),
	}, nil
}
