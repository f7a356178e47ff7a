// Package resolve maps a request path onto exactly one file in an index.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gilliginsisland/rofis/pkg/dirindex"
)

// DefaultName is served for paths ending in "/".
const DefaultName = "index.html"

var ErrNotFound = errors.New("not found")

// AmbiguousError means more than one file matched. The server never guesses.
type AmbiguousError struct {
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%d candidates", len(e.Candidates))
}

// Split divides a request path into the directory suffix to look up and the
// file name to find inside the matching directories.
func Split(path string) (suffix, name string) {
	if strings.HasSuffix(path, "/") {
		return strings.Trim(path, "/"), DefaultName
	}
	dir, name, ok := cutLast(path, "/")
	if !ok {
		return "", path
	}
	return strings.Trim(dir, "/"), name
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return "", s, false
}

// Resolve returns the single regular file that path refers to under idx.
// It returns ErrNotFound when nothing matches and *AmbiguousError when more
// than one directory holds the file.
func Resolve(idx *dirindex.Index, path string) (string, error) {
	suffix, name := Split(path)

	dirs := idx.FindBySuffix(suffix)
	if suffix == "" {
		dirs = append(dirs, idx.Root())
	}

	var candidates []string
	for _, dir := range dirs {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			candidates = append(candidates, p)
		}
	}

	switch len(candidates) {
	case 0:
		return "", ErrNotFound
	case 1:
		return candidates[0], nil
	default:
		return "", &AmbiguousError{Candidates: candidates}
	}
}
