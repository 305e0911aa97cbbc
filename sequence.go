// Copyright 2021 Jonathan Amsterdam.

package parsec

// A Pair holds the values of two parsers run in sequence by Then.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Then returns a parser that runs p and then q, pairing their values.
func Then[E, A, B any](p Parser[E, A], q Parser[E, B]) Parser[E, Pair[A, B]] {
	return Bind(p, func(a A) Parser[E, Pair[A, B]] {
		return Map(q, func(b B) Pair[A, B] { return Pair[A, B]{First: a, Second: b} })
	})
}

// ThenLeft is like Then, but keeps only p's value.
func ThenLeft[E, A, B any](p Parser[E, A], q Parser[E, B]) Parser[E, A] {
	return Map(Then(p, q), func(ab Pair[A, B]) A { return ab.First })
}

// ThenRight is like Then, but keeps only q's value.
func ThenRight[E, A, B any](p Parser[E, A], q Parser[E, B]) Parser[E, B] {
	return Map(Then(p, q), func(ab Pair[A, B]) B { return ab.Second })
}

// ThenReturns returns a parser that parses with p and replaces its value with v.
func ThenReturns[E, A, B any](p Parser[E, A], v B) Parser[E, B] {
	return Map(p, func(A) B { return v })
}

// Opt returns a parser that always accepts: with Some of p's value if p
// accepts, and with None, consuming nothing, if p rejects without consuming.
// A consuming rejection from p is still a rejection.
func Opt[E, A any](p Parser[E, A]) Parser[E, Option[A]] {
	return Map(p, Some[A]).Or(Returns[E](None[A]()))
}

// Rep returns a parser that runs p one or more times, until it rejects,
// and returns the values in order. It rejects if the first run of p
// rejects, or if a later run rejects after consuming input.
//
// Rep behaves like
//
//	Bind(p, func(a A) Parser[E, []A] {
//		return Map(OptRep(p), func(as []A) []A { return append([]A{a}, as...) })
//	})
//
// but loops instead of recursing, so long repetitions do not grow the stack.
func Rep[E, A any](p Parser[E, A]) Parser[E, []A] {
	return func(s Stream[E], index int) Response[E, []A] {
		r := p(s, index)
		if !r.Accepted() {
			return Reject[E, []A](r.Index(), r.Consumed())
		}
		vals := []A{r.Value()}
		consumed := r.Consumed()
		for {
			next := p(r.Stream(), r.Index())
			if !next.Accepted() {
				if next.Consumed() {
					return Reject[E, []A](next.Index(), true)
				}
				return Accept(vals, r.Stream(), r.Index(), consumed)
			}
			vals = append(vals, next.Value())
			consumed = consumed || next.Consumed()
			r = next
		}
	}
}

// OptRep returns a parser that runs p zero or more times. With no matches
// its value is an empty slice.
func OptRep[E, A any](p Parser[E, A]) Parser[E, []A] {
	return Map(Opt(Rep(p)), func(o Option[[]A]) []A { return o.OrElse([]A{}) })
}

// List returns a parser that parses a non-empty list of items separated by
// sep. Its value is the items' values.
func List[E, A, S any](item Parser[E, A], sep Parser[E, S]) Parser[E, []A] {
	return Map(
		Then(item, OptRep(ThenRight(sep, item))),
		func(p Pair[A, []A]) []A { return append([]A{p.First}, p.Second...) })
}

// Sequence returns a parser that invokes parsers in succession and rejects
// as soon as one of them rejects. Its value is the parsers' values.
func Sequence[E, A any](parsers ...Parser[E, A]) Parser[E, []A] {
	p := Returns[E]([]A{})
	for _, q := range parsers {
		p = Map(Then(p, q), func(pr Pair[[]A, A]) []A {
			return append(pr.First[:len(pr.First):len(pr.First)], pr.Second)
		})
	}
	return p
}
