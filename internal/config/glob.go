package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoPatterns is returned by ExpandGlobs for an empty argument list.
var ErrNoPatterns = errors.New("no file patterns provided")

// ExpandGlobs expands file paths and glob patterns into a sorted unique
// list of regular files. Directories and unmatched globs are errors.
func ExpandGlobs(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
		return nil
	}

	for _, pattern := range patterns {
		if !hasGlobMeta(pattern) {
			if err := add(pattern); err != nil {
				return nil, err
			}
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no matches for pattern %q", pattern)
		}
		for _, match := range matches {
			if err := add(match); err != nil {
				return nil, err
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[")
}
