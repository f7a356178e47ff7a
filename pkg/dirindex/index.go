// Package dirindex indexes the directories under a root by path suffix.
package dirindex

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gilliginsisland/rofis/pkg/trie"
)

// Index is an immutable snapshot of the non-hidden directories under Root.
// It is rebuilt, never updated.
type Index struct {
	root string
	dirs *trie.Suffix[struct{}]
}

// Build walks root and indexes every directory below it, skipping
// directories whose name starts with "." along with everything under them.
// Any error aborts the build.
func Build(ctx context.Context, root string) (*Index, error) {
	root, err := canonicalize(root)
	if err != nil {
		return nil, err
	}

	dirs := trie.NewSuffix[struct{}]()
	stack := []string{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}

		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil, fmt.Errorf("failed to relativize %s: %w", path, err)
			}
			dirs.Insert(filepath.ToSlash(rel), struct{}{})
			stack = append(stack, path)
		}
	}

	return &Index{root: root, dirs: dirs}, nil
}

func canonicalize(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %q: %w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %q: %w", root, err)
	}
	return resolved, nil
}

// Root returns the canonical root directory.
func (idx *Index) Root() string {
	return idx.root
}

// Len returns the number of indexed directories. Root itself is not counted.
func (idx *Index) Len() int {
	return idx.dirs.Len()
}

// FindBySuffix returns the absolute path of every indexed directory whose
// root-relative path ends with suffix. Matching is on raw bytes, so "ib"
// also matches a directory named "lib". The order is unspecified.
func (idx *Index) FindBySuffix(suffix string) []string {
	var matches []string
	for rel := range idx.dirs.Match(suffix) {
		matches = append(matches, filepath.Join(idx.root, filepath.FromSlash(rel)))
	}
	return matches
}
