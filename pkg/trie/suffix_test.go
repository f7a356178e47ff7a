package trie

import (
	"slices"
	"testing"
)

func TestSuffixMatch(t *testing.T) {
	set := NewSuffix[int]()

	set.Insert("lib", 1)
	set.Insert("src/lib", 2)
	set.Insert("src/lib/net", 3)
	set.Insert("docs/a/b", 4)
	set.Insert("a/b", 5)
	set.Insert("x/ab", 6)

	tests := []struct {
		suffix string
		expect []string
	}{
		{"lib", []string{"lib", "src/lib"}},
		{"ib", []string{"lib", "src/lib"}}, // byte suffix, not segment aware
		{"src/lib", []string{"src/lib"}},
		{"net", []string{"src/lib/net"}},
		{"a/b", []string{"a/b", "docs/a/b"}},
		{"b", []string{"a/b", "docs/a/b", "lib", "src/lib", "x/ab"}}, // "lib" ends with "b" too
		{"nothing", nil},
		{"", []string{"a/b", "docs/a/b", "lib", "src/lib", "src/lib/net", "x/ab"}},
	}

	for _, tc := range tests {
		t.Run(tc.suffix, func(t *testing.T) {
			t.Parallel()
			var got []string
			for k := range set.Match(tc.suffix) {
				got = append(got, k)
			}
			slices.Sort(got)
			if !slices.Equal(got, tc.expect) {
				t.Errorf("Match(%q) = %q, want %q", tc.suffix, got, tc.expect)
			}
		})
	}
}

func TestSuffixValues(t *testing.T) {
	set := NewSuffix[string]()
	set.Insert("a/b", "first")
	set.Insert("a/b", "second")

	if n := set.Len(); n != 1 {
		t.Fatalf("Len() = %d, want 1", n)
	}
	for k, v := range set.Match("b") {
		if k != "a/b" || v != "second" {
			t.Errorf("got (%q, %q), want (%q, %q)", k, v, "a/b", "second")
		}
	}
}

func TestSuffixStopEarly(t *testing.T) {
	set := NewSuffix[struct{}]()
	for _, k := range []string{"a/x", "b/x", "c/x"} {
		set.Insert(k, struct{}{})
	}

	n := 0
	for range set.Match("x") {
		n++
		break
	}
	if n != 1 {
		t.Errorf("iteration continued after break: %d", n)
	}
}
