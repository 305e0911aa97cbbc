// Copyright 2021 Jonathan Amsterdam.

package parsec

import (
	"strconv"
	"unicode"
	"unicode/utf16"
)

// Digit parses an ASCII digit.
func Digit() Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return '0' <= r && r <= '9' })
}

// LowerCase parses an ASCII lower-case letter.
func LowerCase() Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return 'a' <= r && r <= 'z' })
}

// UpperCase parses an ASCII upper-case letter.
func UpperCase() Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return 'A' <= r && r <= 'Z' })
}

// Letter parses an ASCII letter.
func Letter() Parser[rune, rune] {
	return LowerCase().Or(UpperCase())
}

// Char parses c.
func Char(c rune) Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return r == c })
}

// NotChar parses any rune except c.
func NotChar(c rune) Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return r != c })
}

// AnyChar parses any rune.
func AnyChar() Parser[rune, rune] {
	return Satisfy(func(rune) bool { return true })
}

// Space parses a Unicode white space rune.
func Space() Parser[rune, rune] {
	return Satisfy(unicode.IsSpace)
}

// Spaces parses zero or more white space runes.
func Spaces() Parser[rune, []rune] {
	return OptRep(Space())
}

// Equal parses the string e exactly. Once it has matched the first rune of
// e it has consumed input, so wrap it in Try to use it as an alternative
// to parsers that share a prefix with e.
func Equal(e string) Parser[rune, string] {
	p := Returns[rune](struct{}{})
	for _, c := range e {
		p = ThenLeft(p, Char(c))
	}
	return ThenReturns(p, e)
}

// EqualUnlessFollowedBy parses e, but only if it is not followed by a rune
// for which pred returns true. It consumes nothing when it rejects.
func EqualUnlessFollowedBy(e string, pred func(rune) bool) Parser[rune, string] {
	return Try(ThenLeft(Equal(e), notFollowedBy(pred)))
}

// Word parses w, provided it is followed by the end of input or a non-word
// character. Word("let") rejects "letter".
func Word(w string) Parser[rune, string] {
	return EqualUnlessFollowedBy(w, isWordChar)
}

func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func notFollowedBy(pred func(rune) bool) Parser[rune, struct{}] {
	return func(s Stream[rune], index int) Response[rune, struct{}] {
		if s.Get(index).Filter(pred).IsPresent() {
			return Reject[rune, struct{}](index, false)
		}
		return Accept(struct{}{}, s, index, false)
	}
}

// While parses a non-empty run of runes for which pred is true.
func While(pred func(rune) bool) Parser[rune, string] {
	return Map(Rep(Satisfy(pred)), func(rs []rune) string { return string(rs) })
}

// Lexeme returns a parser that parses p and then skips white space.
func Lexeme[A any](p Parser[rune, A]) Parser[rune, A] {
	return ThenLeft(p, Spaces())
}

var simpleEscapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'b':  '\b',
	'f':  '\f',
	'/':  '/',
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

// jsonEscapes are the simple escapes of JSON strings.
var jsonEscapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'b':  '\b',
	'f':  '\f',
	'/':  '/',
	'\\': '\\',
	'"':  '"',
}

func hexDigit() Parser[rune, rune] {
	return Satisfy(func(r rune) bool {
		return '0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
	})
}

// hex4 parses four hex digits as a UTF-16 code unit.
func hex4() Parser[rune, rune] {
	return Map(Sequence(hexDigit(), hexDigit(), hexDigit(), hexDigit()), func(ds []rune) rune {
		n, _ := strconv.ParseUint(string(ds), 16, 32)
		return rune(n)
	})
}

func isHighSurrogate(r rune) bool { return 0xD800 <= r && r < 0xDC00 }
func isLowSurrogate(r rune) bool  { return 0xDC00 <= r && r < 0xE000 }

// escape parses a backslash escape: one of simples or \uXXXX.
// A high surrogate escape followed by a low surrogate escape is one rune.
func escape(simples map[rune]rune) Parser[rune, rune] {
	simple := Map(
		Satisfy(func(r rune) bool { _, ok := simples[r]; return ok }),
		func(r rune) rune { return simples[r] })
	low := Try(ThenRight(Equal(`\u`), hex4()).Filter(isLowSurrogate))
	unicodeEscape := Bind(ThenRight(Char('u'), hex4()), func(r rune) Parser[rune, rune] {
		if !isHighSurrogate(r) {
			return Returns[rune](r)
		}
		return Map(Opt(low), func(o Option[rune]) rune {
			if lo, ok := o.Get(); ok {
				return utf16.DecodeRune(r, lo)
			}
			return r
		})
	})
	return ThenRight(Char('\\'), simple.Or(unicodeEscape))
}

// literalChar parses an escape or any rune other than quote.
func literalChar(quote rune) Parser[rune, rune] {
	return escape(simpleEscapes).Or(NotChar(quote))
}

// CharLiteral parses a single-quoted character, such as 'a' or '\''.
func CharLiteral() Parser[rune, rune] {
	return ThenLeft(ThenRight(Char('\''), literalChar('\'')), Char('\''))
}

// StringLiteral parses a double-quoted string and returns its contents with
// escapes resolved.
func StringLiteral() Parser[rune, string] {
	return Map(
		ThenLeft(ThenRight(Char('"'), OptRep(literalChar('"'))), Char('"')),
		func(rs []rune) string { return string(rs) })
}

// JSONStringLiteral is like StringLiteral, but accepts only JSON strings:
// the escape \' and unescaped control characters are rejected.
func JSONStringLiteral() Parser[rune, string] {
	plain := Satisfy(func(r rune) bool { return r != '"' && r != '\\' && r >= 0x20 })
	return Map(
		ThenLeft(ThenRight(Char('"'), OptRep(escape(jsonEscapes).Or(plain))), Char('"')),
		func(rs []rune) string { return string(rs) })
}

// NumberLiteral parses a non-empty sequence of digits as a decimal integer.
// It rejects numbers that overflow an int.
func NumberLiteral() Parser[rune, int] {
	return Bind(Rep(Digit()), func(ds []rune) Parser[rune, int] {
		n, err := strconv.Atoi(string(ds))
		if err != nil {
			return Fail[rune, int]()
		}
		return Returns[rune](n)
	})
}
