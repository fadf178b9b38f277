package domain

import "io"

// OutputFormat represents the supported report formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// SortCriteria defines how cluster listings are sorted
type SortCriteria string

const (
	// SortBySize is the canonical order: descending size, then
	// descending score, then ascending ID in natural order.
	SortBySize   SortCriteria = "size"
	SortByScore  SortCriteria = "score"
	SortByHeight SortCriteria = "height"
	SortByID     SortCriteria = "id"
)

// ReportWriter abstracts writing reports to a destination (stdout or a
// generated file).
//
// Implementations live in the service layer.
type ReportWriter interface {
	// Write writes formatted content using the provided writeFunc.
	// If outputPath is non-empty, implementations create or truncate
	// the file at that path and pass it to writeFunc; otherwise they
	// pass the provided writer.
	Write(writer io.Writer, outputPath string, format OutputFormat, writeFunc func(io.Writer) error) error
}

// ProgressManager manages progress reporting for long ingestion and
// merge runs
type ProgressManager interface {
	// Initialize sets up progress tracking with the maximum value
	Initialize(maxValue int)

	// Start starts the progress bar
	Start()

	// Complete marks the progress as completed
	Complete(success bool)

	// Update updates the progress
	Update(processed, total int)

	// SetWriter sets the output writer for progress bars
	SetWriter(writer io.Writer)

	// IsInteractive returns true if progress bars should be shown
	IsInteractive() bool

	// Close cleans up any resources
	Close()
}
