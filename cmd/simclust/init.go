package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simclust/simclust/internal/config"
)

// InitCommand represents the init command
type InitCommand struct {
	force      bool
	configPath string
}

// NewInitCommand creates a new init command
func NewInitCommand() *InitCommand {
	return &InitCommand{
		force:      false,
		configPath: config.ConfigFileName,
	}
}

// CreateCobraCommand creates the cobra command for configuration initialization
func (i *InitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize simclust configuration file",
		Long: `Initialize a simclust configuration file in the current directory.

Creates a .simclust.toml file with the available settings and comments
explaining each one.

Examples:
  # Create .simclust.toml in current directory
  simclust init

  # Overwrite an existing configuration file
  simclust init --force`,
		RunE: i.runInit,
	}

	cmd.Flags().BoolVarP(&i.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&i.configPath, "config", "c", config.ConfigFileName, "Configuration file path")

	return cmd
}

// runInit executes the init command
func (i *InitCommand) runInit(cmd *cobra.Command, args []string) error {
	configPath, err := filepath.Abs(i.configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil && !i.force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", configPath)
	return nil
}

const defaultConfigTemplate = `# simclust configuration

[clustering]
# Linkage method: complete, single, or average.
method = "complete"
# Merging stops when no remaining pair scores at least this value.
min_similarity = 0.0
# Maximum cluster size; 0 leaves growth unbounded.
max_cluster_size = 0

[input]
# Input columns, by header label or 1-based position.
id_column1 = "1"
id_column2 = "2"
score_column = "3"
# Sparse inputs skip the dense-mode edge count check.
sparse = false
# Patterns searched when the input path is a directory.
include_patterns = ["*.tbl", "*.tsv"]
exclude_patterns = []

[output]
# Report format: text, json, yaml, or csv.
format = "text"
# Listing order: size, score, height, or id.
sort_by = "size"
show_members = true
show_singletons = false
`

// NewInitCmd creates and returns the init cobra command
func NewInitCmd() *cobra.Command {
	return NewInitCommand().CreateCobraCommand()
}
