package dirindex

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", d, err)
		}
	}
}

func TestBuildLen(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root,
		"a/b/c",
		"lib",
		"src/lib",
		".git/objects",
		"docs/.hidden/deep",
	)
	if err := os.WriteFile(filepath.Join(root, "a", "file.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	idx, err := Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	// a, a/b, a/b/c, lib, src, src/lib, docs
	if n := idx.Len(); n != 7 {
		t.Errorf("Len() = %d, want 7", n)
	}
}

func TestFindBySuffix(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root,
		"x/a/b",
		"y/a/b",
		"a/bb",
		"lib",
		"src/lib",
		".cache/a/b",
	)

	idx, err := Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	tests := []struct {
		name   string
		suffix string
		expect []string
	}{
		{"segment", "a/b", []string{"x/a/b", "y/a/b"}},
		{"full", "x/a/b", []string{"x/a/b"}},
		{"partial segment", "ib", []string{"lib", "src/lib"}},
		{"byte suffix", "b", []string{"a/bb", "lib", "src/lib", "x/a/b", "y/a/b"}},
		{"none", "zzz", nil},
		{"hidden", ".cache/a/b", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, dir := range idx.FindBySuffix(tc.suffix) {
				rel, err := filepath.Rel(idx.Root(), dir)
				if err != nil {
					t.Fatalf("match %s is not under root: %v", dir, err)
				}
				got = append(got, filepath.ToSlash(rel))
			}
			slices.Sort(got)
			if !slices.Equal(got, tc.expect) {
				t.Errorf("FindBySuffix(%q) = %q, want %q", tc.suffix, got, tc.expect)
			}
		})
	}
}

func TestBuildCanonicalRoot(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "real/sub")

	link := filepath.Join(root, "link")
	if err := os.Symlink(filepath.Join(root, "real"), link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	idx, err := Build(context.Background(), link+"/./")
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	want, err := filepath.EvalSymlinks(filepath.Join(root, "real"))
	if err != nil {
		t.Fatalf("EvalSymlinks failed: %v", err)
	}
	if idx.Root() != want {
		t.Errorf("Root() = %q, want %q", idx.Root(), want)
	}
	if n := idx.Len(); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Build() of a missing root should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Build(ctx, t.TempDir()); err == nil {
		t.Error("Build() with a cancelled context should fail")
	}
}
