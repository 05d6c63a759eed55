// Package fileutil holds the file writing helpers shared by the exporters.
package fileutil

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var filenameReplacer = strings.NewReplacer(
	":", " -",
	"/", "-",
	"\\", "-",
	"?", "",
	"*", "",
	"\"", "'",
	"<", "",
	">", "",
	"|", "-",
)

// SanitizeFilename makes a movie title safe to use as a file name.
// An empty result becomes "untitled".
func SanitizeFilename(name string) string {
	name = filenameReplacer.Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	name = strings.Trim(name, " .")
	if name == "" {
		return "untitled"
	}
	return name
}

// MarkdownFilePath returns the note path for a title inside directory.
func MarkdownFilePath(title, directory string) string {
	return filepath.Join(directory, SanitizeFilename(title)+".md")
}

// FileExists reports whether a regular file exists at filePath.
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// WriteFileWithOverwrite writes data unless the file exists and overwrite is
// false. Parent directories are created. It reports whether the file was
// written.
func WriteFileWithOverwrite(filePath string, data []byte, perm os.FileMode, overwrite bool) (bool, error) {
	if FileExists(filePath) && !overwrite {
		slog.Debug("File exists, skipping", "path", filePath)
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return false, fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filePath, data, perm); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", filePath, err)
	}

	return true, nil
}

// WriteJSONFile writes data as indented JSON, respecting the overwrite flag.
func WriteJSONFile(data any, filePath string, overwrite bool) (bool, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonData = append(jsonData, '\n')

	written, err := WriteFileWithOverwrite(filePath, jsonData, 0o644, overwrite)
	if err != nil {
		return false, err
	}
	if written {
		slog.Info("Wrote JSON file", "filename", filePath)
	} else {
		slog.Info("JSON file already exists, skipping", "filename", filePath, "overwrite", overwrite)
	}
	return written, nil
}
