package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/simclust/simclust/internal/tabular"
)

// ConvertCommand handles the columnar conversion CLI command
type ConvertCommand struct {
	fill   string
	output string
}

// NewConvertCommand creates a new convert command
func NewConvertCommand() *ConvertCommand {
	return &ConvertCommand{
		fill: tabular.DefaultFill,
	}
}

// CreateCobraCommand creates the Cobra command for stream conversion
func (c *ConvertCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <source> <target>",
		Short: "Reshape a tab-delimited file into another file's column layout",
		Long: `Convert a tab-delimited source file into the column layout of a
target file. Columns present in the source but not the target are
dropped; columns present in the target but not the source are filled
with a default value.

The converted stream is written to stdout unless --output is given.

Examples:
  # Reshape training data to match a model's expected columns
  simclust convert new_samples.tbl training.tbl > reshaped.tbl

  # Use a custom fill value for missing columns
  simclust convert --fill NA new_samples.tbl training.tbl`,
		Args: cobra.ExactArgs(2),
		RunE: c.runConvert,
	}

	cmd.Flags().StringVar(&c.fill, "fill", c.fill, "Value written into columns missing from the source")
	cmd.Flags().StringVarP(&c.output, "output", "o", "", "Write the converted stream to a file instead of stdout")

	return cmd
}

// runConvert executes the convert command
func (c *ConvertCommand) runConvert(cmd *cobra.Command, args []string) error {
	conv, err := tabular.NewConversionWithFill(args[0], args[1], c.fill)
	if err != nil {
		return fmt.Errorf("failed to open conversion: %w", err)
	}
	defer conv.Close()

	var out io.Writer = cmd.OutOrStdout()
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	if _, err := io.Copy(out, conv); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	return nil
}

// NewConvertCmd creates and returns the convert cobra command
func NewConvertCmd() *cobra.Command {
	return NewConvertCommand().CreateCobraCommand()
}
