// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesBySuffix returns the regular files directly inside rootPath whose
// names end with any of the given suffixes. Subdirectories are not entered:
// script definition files live in the project root only. Results are sorted
// by name so that load order is stable across platforms.
func FindFilesBySuffix(rootPath string, suffixes ...string) ([]string, error) {
	if len(suffixes) == 0 {
		panic("fsutil: at least one suffix is required")
	}
	for _, s := range suffixes {
		if s == "" {
			panic("fsutil: suffix must not be empty")
		}
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == rootPath {
				return nil
			}
			return fs.SkipDir
		}
		if !d.Type().IsRegular() {
			return nil
		}
		for _, s := range suffixes {
			if strings.HasSuffix(d.Name(), s) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
