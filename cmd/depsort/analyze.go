package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sherwinski/depsort/internal/cache"
	"github.com/sherwinski/depsort/internal/config"
	"github.com/sherwinski/depsort/internal/discovery"
	"github.com/sherwinski/depsort/internal/layout"
	"github.com/sherwinski/depsort/internal/manifest"
	"github.com/sherwinski/depsort/internal/output"
	"github.com/sherwinski/depsort/internal/runner"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze declared dependencies and report which can move",
	Long: `Classifies every candidate source file, extracts import references, and
reports for each declared runtime dependency whether it is only used in
dev/test/config files or only as types, and can therefore move to
devDependencies.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "Output machine-readable JSON")
	analyzeCmd.Flags().Bool("quiet", false, "Output one-line summary")
	analyzeCmd.Flags().StringSlice("include", nil, "Glob patterns of files to analyze (default: all)")
	analyzeCmd.Flags().StringSlice("exclude", nil, "Glob patterns of files to skip")
	analyzeCmd.Flags().Bool("no-cache", false, "Skip the extraction cache")

	analyzeCmd.MarkFlagsMutuallyExclusive("json", "quiet")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root := projectRoot(args)

	report, _, err := runPipeline(cmd, root)
	if err != nil {
		return err
	}

	level := output.DefaultVerbosity()
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		level = output.VerbosityJSON
	} else if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		level = output.VerbosityQuiet
	}
	return output.NewFormatter(level).Format(report, cmd.OutOrStdout())
}

// projectRoot resolves the optional positional path argument.
func projectRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// runPipeline wires the collaborators around the core: manifest,
// layout, discovery, cache, and the extraction/analysis runner.
func runPipeline(cmd *cobra.Command, root string) (*runner.Report, *manifest.Manifest, error) {
	if err := config.LoadEnv(root); err != nil {
		logger.WithError(err).Warn("failed to load .env, continuing")
	}
	cfg, err := config.Load(root, cfgFile)
	if err != nil {
		return nil, nil, err
	}

	mf, err := manifest.Load(filepath.Join(root, "package.json"))
	if err != nil {
		return nil, nil, err
	}
	if len(mf.Dependencies) == 0 {
		logger.Info("no runtime dependencies declared, nothing to analyze")
	}

	lay, err := layout.Detect(root, layout.Options{
		ExtraSourceDirs: cfg.SourceDirs,
		ExtraTestDirs:   cfg.TestDirs,
		ExtraBuildDirs:  cfg.BuildDirs,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.WithFields(logrus.Fields{
		"source_dirs": lay.SourceDirs,
		"tsconfig":    lay.HasTSConfig,
	}).Debug("detected project layout")

	include := cfg.Include
	if flagInclude, _ := cmd.Flags().GetStringSlice("include"); len(flagInclude) > 0 {
		include = flagInclude
	}
	exclude := cfg.Exclude
	if flagExclude, _ := cmd.Flags().GetStringSlice("exclude"); len(flagExclude) > 0 {
		exclude = flagExclude
	}

	files, err := discovery.Walk(root, discovery.Options{Include: include, Exclude: exclude})
	if err != nil {
		return nil, nil, fmt.Errorf("discover files: %w", err)
	}
	logger.WithField("files", len(files)).Debug("discovered candidate files")

	var store *cache.Cache
	noCache, _ := cmd.Flags().GetBool("no-cache")
	if cfg.CacheEnabled && !noCache {
		store, err = cache.Open(filepath.Join(root, cfg.CachePath))
		if err != nil {
			logger.WithError(err).Warn("cache unavailable, analyzing without it")
			store = nil
		} else {
			defer store.Close()
		}
	}

	opts := runner.Options{Concurrency: cfg.Concurrency, Cache: store}
	report, err := runner.Run(context.Background(), lay, mf.Dependencies, files, opts)
	if err != nil {
		return nil, nil, err
	}
	return report, mf, nil
}
