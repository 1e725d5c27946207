package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fixCmd = &cobra.Command{
	Use:   "fix [path]",
	Short: "Move analyzable dependencies into devDependencies",
	Long: `Runs the same analysis as 'depsort analyze', then relocates every
package in the move list from dependencies to devDependencies in
package.json. Unrelated manifest fields and key order are preserved;
the file is written with 2-space indentation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "Show what would move without writing package.json")
	fixCmd.Flags().Bool("no-cache", false, "Skip the extraction cache")
	fixCmd.Flags().StringSlice("include", nil, "Glob patterns of files to analyze (default: all)")
	fixCmd.Flags().StringSlice("exclude", nil, "Glob patterns of files to skip")
}

func runFix(cmd *cobra.Command, args []string) error {
	root := projectRoot(args)

	report, mf, err := runPipeline(cmd, root)
	if err != nil {
		return err
	}

	if report.Result.MoveCount == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to move: all dependencies stay in place.")
		return nil
	}

	names := make([]string, 0, report.Result.MoveCount)
	for _, v := range report.Result.Move {
		names = append(names, v.Package)
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Would move %d package(s) to devDependencies:\n", len(names))
		for _, v := range report.Result.Move {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s - %s\n", v.Package, v.Reason)
		}
		return nil
	}

	moved, err := mf.MoveToDev(names)
	if err != nil {
		return fmt.Errorf("edit manifest: %w", err)
	}
	if err := mf.Save(); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Moved %d package(s) to devDependencies:\n", len(moved))
	for _, name := range moved {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
	}
	return nil
}
