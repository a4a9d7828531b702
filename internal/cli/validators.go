package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pyrx/pyrx-cli/pkg/models"
)

// ValidateElementType validates an element type string
func ValidateElementType(t string) (models.ElementType, error) {
	et, err := models.ParseElementType(t)
	if err != nil {
		names := make([]string, len(models.ElementTypes))
		for i, known := range models.ElementTypes {
			names[i] = string(known)
		}
		return "", fmt.Errorf("invalid element type: %s (must be one of: %s)", t, strings.Join(names, ", "))
	}
	return et, nil
}

// ValidateFilePath validates that a file path exists and is a file
func ValidateFilePath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, expected file: %s", path)
	}

	return nil
}

// ValidateDirectoryPath validates that a path is a directory or does not
// exist yet
func ValidateDirectoryPath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error accessing directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateName validates a tab, panel or element name
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}
