// Copyright 2021 Jonathan Amsterdam.

package parsec

// A Stream is a read-only, randomly indexable view of parser input.
// Streams are never modified by parsing; the position is an index passed
// alongside the stream, so one Stream can be shared by any number of
// parse attempts.
type Stream[E any] interface {
	// Get returns the element at index, or an empty Option if index is
	// outside the input.
	Get(index int) Option[E]
	// EndOfStream reports whether there are no elements at or after index.
	EndOfStream(index int) bool
}

type sliceStream[E any] []E

// OfSlice returns a Stream over the elements of s.
// The slice must not be modified while the stream is in use.
func OfSlice[E any](s []E) Stream[E] {
	return sliceStream[E](s)
}

// OfString returns a Stream over the runes of s.
// Indexes into the stream count runes, not bytes.
func OfString(s string) Stream[rune] {
	return sliceStream[rune]([]rune(s))
}

func (s sliceStream[E]) Get(index int) Option[E] {
	if index < 0 || index >= len(s) {
		return None[E]()
	}
	return Some(s[index])
}

func (s sliceStream[E]) EndOfStream(index int) bool {
	return index >= len(s)
}
