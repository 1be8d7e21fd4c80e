// Package utils collects small filesystem helpers used by the root tiler
// package, following the teacher's internal/utils (referenced from the
// teacher's cmd/main.go as utils.FindLasFilesInFolder and, in its tests,
// as utils.TouchFile).
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindLasFilesInFolder returns every .las/.laz file directly inside
// folder (case-insensitive extension match), sorted by path for
// reproducible output, per spec.md §5.
func FindLasFilesInFolder(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("utils: read %s: %w", folder, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".las" || ext == ".laz" {
			files = append(files, filepath.Join(folder, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// TouchFile creates an empty file at path, overwriting any existing
// content, e.g. to populate a scratch input folder.
func TouchFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("utils: touch %s: %w", path, err)
	}
	return f.Close()
}
