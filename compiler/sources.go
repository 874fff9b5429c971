package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ResolveSources expands a source path to the files it names.
// A plain path names one file. A pattern may use *, ?, [...], {a,b} and
// the recursive ** wildcard:
//
//   - "schema.nt" → ["/abs/schema.nt"]
//   - "vocab/*.ttl" → every Turtle file directly under vocab
//   - "vocab/**/*.nt" → every N-Triples file below vocab
//
// Directories are skipped. Results are absolute and sorted.
func ResolveSources(pattern string) ([]string, error) {
	if !containsGlob(pattern) {
		abs, err := filepath.Abs(pattern)
		if err != nil {
			return nil, err
		}
		// Unreadable files surface later as parse errors.
		return []string{abs}, nil
	}

	absPattern, err := filepath.Abs(pattern)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	var files []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, match)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSources, pattern)
	}

	sort.Strings(files)
	return files, nil
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
