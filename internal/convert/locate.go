// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindSVGs resolves a figure name to SVG paths. A name that is already a
// path (contains a separator or the .svg extension) resolves to itself.
// Anything else is a base name, searched for under imagesDir; shell glob
// characters in the name are honored, and every match is returned so one
// invocation can refresh a family of figures.
func FindSVGs(name, imagesDir string) ([]string, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, os.PathSeparator) ||
		strings.EqualFold(filepath.Ext(name), ".svg") {
		path := name
		if !strings.EqualFold(filepath.Ext(path), ".svg") {
			path += ".svg"
		}
		if _, err := os.Stat(path); err != nil {
			return nil, &InputNotFoundError{Path: path, Err: err}
		}
		return []string{path}, nil
	}

	pattern := name + ".svg"
	var matches []string
	err := filepath.WalkDir(imagesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, &InputNotFoundError{Path: imagesDir, Err: err}
	}
	if len(matches) == 0 {
		return nil, &InputNotFoundError{Path: filepath.Join(imagesDir, pattern), Err: fs.ErrNotExist}
	}
	sort.Strings(matches)
	return matches, nil
}

// ListSVGs returns every SVG file under dir, sorted.
func ListSVGs(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), ".svg") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
