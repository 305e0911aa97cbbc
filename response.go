// Copyright 2021 Jonathan Amsterdam.

package parsec

import "fmt"

// A Response is the result of running a Parser at some index of a Stream.
// It either accepts, carrying a value and the index just after the input it
// matched, or rejects at some index.
//
// In both cases Consumed reports whether input was consumed before the
// parser finished. Or uses that bit to decide whether it may try its
// alternative.
//
// The zero Response rejects at index 0 without consuming.
type Response[E, A any] struct {
	value    A
	stream   Stream[E]
	index    int
	consumed bool
	accepted bool
}

// Accept returns an accepting Response.
func Accept[E, A any](value A, s Stream[E], next int, consumed bool) Response[E, A] {
	return Response[E, A]{value: value, stream: s, index: next, consumed: consumed, accepted: true}
}

// Reject returns a rejecting Response.
func Reject[E, A any](index int, consumed bool) Response[E, A] {
	return Response[E, A]{index: index, consumed: consumed}
}

func (r Response[E, A]) Accepted() bool { return r.accepted }
func (r Response[E, A]) Consumed() bool { return r.consumed }

// Value returns the accepted value, or the zero value for a rejection.
func (r Response[E, A]) Value() A { return r.value }

// Index returns the next index of an accepting Response, or the index at
// which a rejecting Response failed.
func (r Response[E, A]) Index() int { return r.index }

// Stream returns the stream of an accepting Response.
func (r Response[E, A]) Stream() Stream[E] { return r.stream }

func (r Response[E, A]) String() string {
	if r.accepted {
		return fmt.Sprintf("accept(%v, index %d, consumed %t)", r.value, r.index, r.consumed)
	}
	return fmt.Sprintf("reject(index %d, consumed %t)", r.index, r.consumed)
}

// Fold calls accept or reject, depending on r, and returns its result.
func Fold[E, A, R any](r Response[E, A],
	accept func(value A, s Stream[E], next int, consumed bool) R,
	reject func(index int, consumed bool) R) R {
	if r.accepted {
		return accept(r.value, r.stream, r.index, r.consumed)
	}
	return reject(r.index, r.consumed)
}

// MapResponse applies f to the value of an accepting Response.
// A rejecting Response is returned unchanged.
func MapResponse[E, A, B any](r Response[E, A], f func(A) B) Response[E, B] {
	if !r.accepted {
		return Reject[E, B](r.index, r.consumed)
	}
	return Accept(f(r.value), r.stream, r.index, r.consumed)
}

// Filter turns an accepting Response whose value does not satisfy pred into
// a rejection at the same index with the same consumed bit.
func (r Response[E, A]) Filter(pred func(A) bool) Response[E, A] {
	if r.accepted && !pred(r.value) {
		return Reject[E, A](r.index, r.consumed)
	}
	return r
}

// LazyRecoverWith returns r if it accepts, and f() otherwise.
func (r Response[E, A]) LazyRecoverWith(f func() Response[E, A]) Response[E, A] {
	if r.accepted {
		return r
	}
	return f()
}
