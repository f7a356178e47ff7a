package trie

import (
	"iter"

	"github.com/armon/go-radix"
)

// Suffix stores string keys and answers "ends with" queries.
// Keys are kept byte-reversed in a radix tree, so a suffix query is a
// prefix walk over the reversed keys.
type Suffix[V any] struct {
	tree *radix.Tree
}

func NewSuffix[V any]() *Suffix[V] {
	return &Suffix[V]{
		tree: radix.New(),
	}
}

// Insert adds key, replacing any value already stored for it.
func (s *Suffix[V]) Insert(key string, value V) {
	s.tree.Insert(reverse(key), value)
}

// Match yields every key that ends with suffix, byte for byte.
// There is no segment awareness: "ib" matches "lib".
func (s *Suffix[V]) Match(suffix string) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		s.tree.WalkPrefix(reverse(suffix), func(k string, v any) bool {
			return !yield(reverse(k), v.(V))
		})
	}
}

// Len returns the number of stored keys.
func (s *Suffix[V]) Len() int {
	return s.tree.Len()
}

func reverse(s string) string {
	b := make([]byte, len(s))
	for i := range len(s) {
		b[len(s)-1-i] = s[i]
	}
	return string(b)
}
