// Copyright 2021 Jonathan Amsterdam.

/*
Package parsec is a library of direct-style monadic parser combinators.
It is suitable for small languages: configuration formats, embedded
expression languages, data formats like JSON.

# Basics

A Parser[E, A] reads elements of type E from a Stream and produces a value
of type A. Character parsers work on a Stream[rune], built with OfString;
token parsers work on a Stream of whatever token type a lexer produces.

Grammars are built from a few primitives (Satisfy, EOS, Returns, Fail)
and combinators. For example,

	number := Map(Rep(Digit()), func(ds []rune) string { return string(ds) })
	list := Then(number, OptRep(ThenRight(Char(','), number)))

parses comma-separated numbers. To run a parser, call Parse with a stream
and a starting index, or Run to parse a whole stream:

	v, err := list.Run(OfString("1,22,333"))

# Backtracking

Or tries its left parser first. If that fails without consuming any input,
Or tries its right parser at the same index. If it fails after consuming
input, Or fails too, without trying the alternative. This is the discipline
of Parsec and of PEGs, and it is what keeps parsers built with this package
linear in their input.

Sometimes a grammar needs more lookahead than that. Try turns a consuming
failure into a non-consuming one, so that

	Try(Equal("let")).Or(Equal("lambda"))

can read "lambda" even though Equal("let") consumed the "l" before failing.

# Recursion

Go evaluates arguments eagerly, so a rule that refers to itself cannot be
written as a plain function call: building the parser would never terminate.
Wrap the reference in Lazy instead:

	func value() Parser[rune, any] {
		number := Map(NumberLiteral(), func(n int) any { return n })
		list := Map(
			ThenLeft(ThenRight(Char('['), OptRep(Lazy(value))), Char(']')),
			func(vs []any) any { return vs })
		return number.Or(list)
	}

# Repetition

Rep and OptRep call their parser until it fails. A parser that succeeds
without consuming input would be called forever, so never repeat one.
*/
package parsec

import "fmt"

// A Parser reads from a Stream starting at an index and returns a Response.
// Parsers are values: combinators return new Parsers and never modify their
// arguments.
type Parser[E, A any] func(s Stream[E], index int) Response[E, A]

// Parse runs p on s starting at index.
func (p Parser[E, A]) Parse(s Stream[E], index int) Response[E, A] {
	return p(s, index)
}

// Run parses the whole of s with p. It returns a *RejectError if p rejects
// or if p accepts without reaching the end of s.
func (p Parser[E, A]) Run(s Stream[E]) (z A, _ error) {
	r := p(s, 0)
	if !r.Accepted() {
		return z, &RejectError{Index: r.Index(), Consumed: r.Consumed()}
	}
	if !s.EndOfStream(r.Index()) {
		return z, &RejectError{Index: r.Index(), Consumed: r.Consumed(), Unconsumed: true}
	}
	return r.Value(), nil
}

// A RejectError describes a failed parse. The only location information is
// the raw stream index.
type RejectError struct {
	Index    int
	Consumed bool
	// Unconsumed is set when the parser accepted but input remained.
	Unconsumed bool
}

func (e *RejectError) Error() string {
	if e.Unconsumed {
		return fmt.Sprintf("unconsumed input starting at offset %d", e.Index)
	}
	return fmt.Sprintf("parse failed at offset %d", e.Index)
}

// Map returns a parser that parses with p and applies f to the value.
func Map[E, A, B any](p Parser[E, A], f func(A) B) Parser[E, B] {
	return func(s Stream[E], index int) Response[E, B] {
		return MapResponse(p(s, index), f)
	}
}

// Filter returns a parser that rejects whenever p's value does not satisfy
// pred. The rejection keeps p's consumed bit.
func (p Parser[E, A]) Filter(pred func(A) bool) Parser[E, A] {
	return func(s Stream[E], index int) Response[E, A] {
		return p(s, index).Filter(pred)
	}
}

// Match returns a parser that accepts only when p's value equals v.
func Match[E any, A comparable](p Parser[E, A], v A) Parser[E, A] {
	return p.Filter(func(a A) bool { return a == v })
}

// Bind runs p, then the parser f returns for p's value, starting where p
// stopped. The result consumed input if either step did.
func Bind[E, A, B any](p Parser[E, A], f func(A) Parser[E, B]) Parser[E, B] {
	return func(s Stream[E], index int) Response[E, B] {
		ra := p(s, index)
		if !ra.Accepted() {
			return Reject[E, B](ra.Index(), ra.Consumed())
		}
		rb := f(ra.Value())(ra.Stream(), ra.Index())
		if !rb.Accepted() {
			return Reject[E, B](rb.Index(), ra.Consumed() || rb.Consumed())
		}
		return Accept(rb.Value(), rb.Stream(), rb.Index(), ra.Consumed() || rb.Consumed())
	}
}

// FlatMap is another name for Bind.
func FlatMap[E, A, B any](p Parser[E, A], f func(A) Parser[E, B]) Parser[E, B] {
	return Bind(p, f)
}

// Or returns a parser that tries p, and then q at the same index if p
// rejected without consuming input. If p accepts, its response is returned
// even if q would also accept.
func (p Parser[E, A]) Or(q Parser[E, A]) Parser[E, A] {
	return func(s Stream[E], index int) Response[E, A] {
		r := p(s, index)
		if r.Accepted() || r.Consumed() {
			return r
		}
		return q(s, index)
	}
}

// Choice is another name for Or.
func (p Parser[E, A]) Choice(q Parser[E, A]) Parser[E, A] {
	return p.Or(q)
}

// Try returns a parser that behaves like p, except that its rejections never
// report consumed input. Use it to let Or backtrack over a longer prefix.
func Try[E, A any](p Parser[E, A]) Parser[E, A] {
	return func(s Stream[E], index int) Response[E, A] {
		r := p(s, index)
		return r.LazyRecoverWith(func() Response[E, A] {
			return Reject[E, A](r.Index(), false)
		})
	}
}

// Lazy returns a parser that calls rule to build its parser each time it
// parses. It is how a rule refers to itself, or to a rule defined in terms
// of it.
func Lazy[E, A any](rule func() Parser[E, A]) Parser[E, A] {
	return func(s Stream[E], index int) Response[E, A] {
		return rule()(s, index)
	}
}

// Returns returns a parser that accepts v without consuming input.
func Returns[E, A any](v A) Parser[E, A] {
	return func(s Stream[E], index int) Response[E, A] {
		return Accept(v, s, index, false)
	}
}

// Fail returns a parser that always rejects without consuming input.
func Fail[E, A any]() Parser[E, A] {
	return func(_ Stream[E], index int) Response[E, A] {
		return Reject[E, A](index, false)
	}
}

// EOS returns a parser that accepts, without consuming input, only at the
// end of the stream.
func EOS[E any]() Parser[E, struct{}] {
	return func(s Stream[E], index int) Response[E, struct{}] {
		if s.EndOfStream(index) {
			return Accept(struct{}{}, s, index, false)
		}
		return Reject[E, struct{}](index, false)
	}
}

// Satisfy returns a parser that accepts the next element of the stream if
// pred is true for it, consuming exactly that element.
// Every parser that reads input is built from Satisfy.
func Satisfy[E any](pred func(E) bool) Parser[E, E] {
	return func(s Stream[E], index int) Response[E, E] {
		accept := func(v E) Response[E, E] { return Accept(v, s, index+1, true) }
		return MapOption(s.Get(index).Filter(pred), accept).OrLazyElse(func() Response[E, E] {
			return Reject[E, E](index, false)
		})
	}
}
