package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/courseguard/crosscheck/internal/config"
)

// InitCommand handles configuration file generation
type InitCommand struct {
	force  bool
	output string
}

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	c := &InitCommand{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter configuration file",
		Long: `Init writes a .crosscheck.toml file with all settings at their defaults,
commented so individual values are easy to adjust.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd)
		},
	}

	cmd.Flags().BoolVarP(&c.force, "force", "f", false, "Overwrite an existing configuration file")
	cmd.Flags().StringVarP(&c.output, "output", "o", ".crosscheck.toml", "Configuration file path to write")

	return cmd
}

func (c *InitCommand) run(cmd *cobra.Command) error {
	path := c.output

	if !c.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(config.DefaultConfigToml), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
