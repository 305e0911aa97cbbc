// Copyright 2021 Jonathan Amsterdam.

package parsec

// Chain returns a parser that reads tokens with lexer and parses them with p.
//
// Starting at its index, Chain runs lexer repeatedly until it rejects
// without consuming input, or accepts without consuming any. If lexer
// rejects after consuming input, Chain rejects there. Otherwise p is run
// over the tokens read, from token index 0.
//
// The indexes in Chain's response are indexes of the underlying stream:
// an acceptance ends just after the last token p consumed, and a rejection
// at token j is reported at the index where token j began.
func Chain[E, T, A any](lexer Parser[E, T], p Parser[T, A]) Parser[E, A] {
	return func(s Stream[E], index int) Response[E, A] {
		var tokens []T
		// starts[j] is the index where token j begins; starts[len(tokens)]
		// is where lexing stopped.
		starts := []int{index}
		pos := index
		for {
			r := lexer(s, pos)
			if !r.Accepted() {
				if r.Consumed() {
					return Reject[E, A](r.Index(), true)
				}
				break
			}
			if r.Index() == pos {
				break
			}
			tokens = append(tokens, r.Value())
			pos = r.Index()
			starts = append(starts, pos)
		}

		offset := func(j int) int {
			if j < 0 {
				j = 0
			}
			if j >= len(starts) {
				j = len(starts) - 1
			}
			return starts[j]
		}
		r := p(OfSlice(tokens), 0)
		if !r.Accepted() {
			return Reject[E, A](offset(r.Index()), r.Consumed())
		}
		return Accept(r.Value(), s, offset(r.Index()), r.Consumed())
	}
}
