package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// generateTimestampedFileName generates a filename with timestamp suffix
func generateTimestampedFileName(command, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", command, timestamp, extension)
}

// resolveOutputDirectory picks the directory generated reports land in.
// A tool-specific hidden directory under the working directory keeps
// reports out of the analyzed data directories.
func resolveOutputDirectory() string {
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(".simclust", "reports")
	}
	return filepath.Join(cwd, ".simclust", "reports")
}

// generateOutputFilePath combines filename generation and directory
// resolution, ensuring the directory exists.
func generateOutputFilePath(command, extension string) (string, error) {
	filename := generateTimestampedFileName(command, extension)
	outputDir := resolveOutputDirectory()
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return filepath.Join(outputDir, filename), nil
}
