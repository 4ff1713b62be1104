package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/courseguard/crosscheck/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "crosscheck",
	Short: "A source-code similarity and plagiarism-evidence engine",
	Long: `crosscheck compares source-code submissions and produces calibrated
similarity scores with supporting evidence for manual review.

Six independent similarity measures (structural, token-sequence, lexical,
edit-distance, semantic, order-invariant) are triangulated into one combined
score, so no single disguise technique (renaming, reordering, comment or
whitespace edits) hides an overlap. Flagged pairs carry matching line ranges
and heuristic transformation labels.

crosscheck reports suspicion with evidence; it never issues a verdict.`,
	Version: version.Short(),
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	// Add main subcommands
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewBatchCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
