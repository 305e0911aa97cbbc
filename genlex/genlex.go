// Copyright 2021 Jonathan Amsterdam.

// Package genlex provides a generic lexer for parsec grammars.
//
// A Lexer turns runes into Tokens: numbers, double-quoted strings,
// identifiers and keywords. The keyword set is given to New; it may contain
// words, which are recognized when an identifier is spelled the same way,
// and symbols like "{" or "<=", which are matched longest first.
//
// Grammars over tokens use the token parsers of this package (NumberToken,
// StringToken, Keyword, ...) and are connected to the lexer with Chain:
//
//	lx := genlex.New("[", "]", ",")
//	p := genlex.Chain(lx, grammar)
package genlex

import (
	"fmt"
	"sort"
	"strconv"
	"unicode"

	"github.com/jba/parsec"
)

// Kind is the kind of a Token.
type Kind int

const (
	NumberKind Kind = iota
	StringKind
	IdentKind
	KeywordKind
)

func (k Kind) String() string {
	switch k {
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case IdentKind:
		return "ident"
	case KeywordKind:
		return "keyword"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// A Token is a lexical unit of the input.
type Token struct {
	Kind Kind
	// Text is the source form of the token. Strings are requoted, so
	// escapes may be spelled differently than in the input.
	Text string
	// Value is a float64 for numbers, the unquoted string for strings,
	// and Text otherwise.
	Value any
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

// A Lexer recognizes the tokens of a language with a fixed set of keywords.
// A Lexer is immutable and may be shared.
type Lexer struct {
	words   map[string]bool
	symbols []string // longest first
	json    bool
}

// New returns a Lexer for the given keywords.
func New(keywords ...string) *Lexer {
	l := &Lexer{words: map[string]bool{}}
	seen := map[string]bool{}
	for _, k := range keywords {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		if isWord(k) {
			l.words[k] = true
		} else {
			l.symbols = append(l.symbols, k)
		}
	}
	sort.SliceStable(l.symbols, func(i, j int) bool {
		return len(l.symbols[i]) > len(l.symbols[j])
	})
	return l
}

// WithJSONLiterals returns a copy of l whose strings and numbers follow
// JSON: the escape \' and unescaped control characters are not allowed in
// strings, and the integer part of a number has no leading zeros.
func (l *Lexer) WithJSONLiterals() *Lexer {
	l2 := *l
	l2.json = true
	return &l2
}

// Keywords returns the Lexer's keywords, sorted.
func (l *Lexer) Keywords() []string {
	var ks []string
	for w := range l.words {
		ks = append(ks, w)
	}
	ks = append(ks, l.symbols...)
	sort.Strings(ks)
	return ks
}

func isWord(s string) bool {
	for i, r := range s {
		if !(isIdentRune(r) || i > 0 && unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// Token returns a parser for a single token, with no surrounding space.
// Symbols are tried before numbers, so a keyword "-" wins over a negative
// number.
func (l *Lexer) Token() parsec.Parser[rune, Token] {
	return l.symbol().
		Or(l.number()).
		Or(l.str()).
		Or(l.identOrKeyword())
}

// TokenBetweenSpaces is like Token, but skips white space before and after
// the token. Space before the token counts as consumed input even if no
// token follows, so skip leading space once with parsec.Spaces before
// repeating TokenBetweenSpaces, as Chain and Tokenize do.
func (l *Lexer) TokenBetweenSpaces() parsec.Parser[rune, Token] {
	return parsec.ThenLeft(parsec.ThenRight(parsec.Spaces(), l.Token()), parsec.Spaces())
}

// Tokenize splits all of input into tokens.
func (l *Lexer) Tokenize(input string) ([]Token, error) {
	p := parsec.ThenRight(parsec.Spaces(), parsec.OptRep(l.TokenBetweenSpaces()))
	toks, err := p.Run(parsec.OfString(input))
	if err != nil {
		return nil, fmt.Errorf("genlex: %w", err)
	}
	return toks, nil
}

// A Positioned is a Token and the rune offset of its first character.
type Positioned struct {
	Offset int
	Token
}

// Scan is like Tokenize, but also reports where each token starts.
func (l *Lexer) Scan(input string) ([]Positioned, error) {
	s := parsec.OfString(input)
	tok := l.TokenBetweenSpaces()
	var ps []Positioned
	i := parsec.Spaces().Parse(s, 0).Index()
	for !s.EndOfStream(i) {
		r := tok.Parse(s, i)
		if !r.Accepted() {
			return nil, fmt.Errorf("genlex: %w", &parsec.RejectError{Index: r.Index(), Consumed: r.Consumed()})
		}
		ps = append(ps, Positioned{Offset: i, Token: r.Value()})
		i = r.Index()
	}
	return ps, nil
}

// Chain returns a parser that tokenizes its input with l and parses the
// tokens with p. Offsets in its responses are rune offsets of the input.
func Chain[A any](l *Lexer, p parsec.Parser[Token, A]) parsec.Parser[rune, A] {
	return parsec.ThenRight(parsec.Spaces(), parsec.Chain(l.TokenBetweenSpaces(), p))
}

func (l *Lexer) symbol() parsec.Parser[rune, Token] {
	p := parsec.Fail[rune, Token]()
	for _, s := range l.symbols {
		p = p.Or(parsec.Map(parsec.Try(parsec.Equal(s)), func(s string) Token {
			return Token{Kind: KeywordKind, Text: s, Value: s}
		}))
	}
	return p
}

func (l *Lexer) identOrKeyword() parsec.Parser[rune, Token] {
	rest := parsec.Satisfy(func(r rune) bool { return isIdentRune(r) || unicode.IsDigit(r) })
	return parsec.Map(
		parsec.Then(parsec.Satisfy(isIdentRune), parsec.OptRep(rest)),
		func(p parsec.Pair[rune, []rune]) Token {
			s := string(p.First) + string(p.Second)
			if l.words[s] {
				return Token{Kind: KeywordKind, Text: s, Value: s}
			}
			return Token{Kind: IdentKind, Text: s, Value: s}
		})
}

func runes(rs []rune) string { return string(rs) }

// number parses -?digits(.digits)?([eE][+-]?digits)?.
// With JSON literals, the first digits are 0 or do not start with 0.
func (l *Lexer) number() parsec.Parser[rune, Token] {
	digits := parsec.Map(parsec.Rep(parsec.Digit()), runes)
	integer := digits
	if l.json {
		nonzero := parsec.Satisfy(func(r rune) bool { return '1' <= r && r <= '9' })
		integer = parsec.Map(parsec.Char('0'), func(rune) string { return "0" }).
			Or(parsec.Map(parsec.Then(nonzero, parsec.OptRep(parsec.Digit())), func(p parsec.Pair[rune, []rune]) string {
				return string(p.First) + string(p.Second)
			}))
	}
	optional := func(p parsec.Parser[rune, string]) parsec.Parser[rune, string] {
		return parsec.Map(parsec.Opt(p), func(o parsec.Option[string]) string { return o.OrElse("") })
	}
	sign := parsec.Map(parsec.Char('-').Or(parsec.Char('+')), func(r rune) string { return string(r) })
	fraction := parsec.Map(parsec.ThenRight(parsec.Char('.'), digits), func(ds string) string { return "." + ds })
	exponent := parsec.Map(
		parsec.Then(parsec.Satisfy(func(r rune) bool { return r == 'e' || r == 'E' }),
			parsec.Then(optional(sign), digits)),
		func(p parsec.Pair[rune, parsec.Pair[string, string]]) string {
			return string(p.First) + p.Second.First + p.Second.Second
		})
	minus := optional(parsec.Map(parsec.Char('-'), func(rune) string { return "-" }))

	text := parsec.Map(
		parsec.Then(parsec.Then(minus, integer), parsec.Then(optional(fraction), optional(exponent))),
		func(p parsec.Pair[parsec.Pair[string, string], parsec.Pair[string, string]]) string {
			return p.First.First + p.First.Second + p.Second.First + p.Second.Second
		})
	return parsec.Bind(text, func(s string) parsec.Parser[rune, Token] {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return parsec.Fail[rune, Token]()
		}
		return parsec.Returns[rune](Token{Kind: NumberKind, Text: s, Value: f})
	})
}

func (l *Lexer) str() parsec.Parser[rune, Token] {
	lit := parsec.StringLiteral()
	if l.json {
		lit = parsec.JSONStringLiteral()
	}
	return parsec.Map(lit, func(s string) Token {
		return Token{Kind: StringKind, Text: strconv.Quote(s), Value: s}
	})
}

// NumberToken parses a number token and returns its value.
func NumberToken() parsec.Parser[Token, float64] {
	return parsec.Map(kind(NumberKind), func(t Token) float64 { return t.Value.(float64) })
}

// StringToken parses a string token and returns its unquoted value.
func StringToken() parsec.Parser[Token, string] {
	return parsec.Map(kind(StringKind), func(t Token) string { return t.Value.(string) })
}

// IdentToken parses an identifier that is not a keyword.
func IdentToken() parsec.Parser[Token, string] {
	return parsec.Map(kind(IdentKind), func(t Token) string { return t.Text })
}

// KeywordToken parses any keyword and returns its text.
func KeywordToken() parsec.Parser[Token, string] {
	return parsec.Map(kind(KeywordKind), func(t Token) string { return t.Text })
}

// Keyword parses the keyword k. Unlike parsec.Match(KeywordToken(), k), it
// rejects other keywords without consuming them, so keywords can be
// alternatives of one another.
func Keyword(k string) parsec.Parser[Token, string] {
	return parsec.Map(
		parsec.Satisfy(func(t Token) bool { return t.Kind == KeywordKind && t.Text == k }),
		func(t Token) string { return t.Text })
}

func kind(k Kind) parsec.Parser[Token, Token] {
	return parsec.Satisfy(func(t Token) bool { return t.Kind == k })
}
