// Copyright 2021 Jonathan Amsterdam.

// Package jsonparser is a JSON parser written with parsec and genlex.
//
// Values are decoded as nil, bool, float64, string, []any and *Object.
// Objects keep their keys in input order.
package jsonparser

import (
	"fmt"

	"github.com/jba/parsec"
	"github.com/jba/parsec/genlex"
)

// Keywords returns the keywords of the JSON lexer.
func Keywords() []string {
	return []string{"null", "false", "true", "{", "}", "[", "]", ":", ","}
}

// Parse parses source as a single JSON value. The second result is false
// if source is not valid JSON. Strings and numbers are read as JSON defines
// them, so "\'" and 007 are rejected.
func Parse(source string) (any, bool) {
	v, err := Decode(source)
	return v, err == nil
}

// Decode is like Parse, but returns an error describing where the parse
// failed. The error wraps a *parsec.RejectError whose index is a rune offset
// into source.
func Decode(source string) (any, error) {
	v, err := Parser().Run(parsec.OfString(source))
	if err != nil {
		return nil, fmt.Errorf("jsonparser: %w", err)
	}
	return v, nil
}

// Parser returns a parser for a JSON document: a value surrounded by
// optional white space and nothing else.
func Parser() parsec.Parser[rune, any] {
	lx := genlex.New(Keywords()...).WithJSONLiterals()
	document := parsec.ThenLeft(Expr(), parsec.EOS[genlex.Token]())
	return parsec.ThenLeft(genlex.Chain(lx, document), parsec.EOS[rune]())
}

func toAny[A any](p parsec.Parser[genlex.Token, A]) parsec.Parser[genlex.Token, any] {
	return parsec.Map(p, func(a A) any { return a })
}

// Expr returns a parser for a JSON value over genlex tokens.
func Expr() parsec.Parser[genlex.Token, any] {
	return toAny(genlex.NumberToken()).
		Or(toAny(genlex.StringToken())).
		Or(parsec.ThenReturns(genlex.Keyword("null"), any(nil))).
		Or(parsec.ThenReturns(genlex.Keyword("true"), any(true))).
		Or(parsec.ThenReturns(genlex.Keyword("false"), any(false))).
		Or(toAny(parsec.Lazy(array))).
		Or(toAny(parsec.Lazy(object)))
}

func array() parsec.Parser[genlex.Token, []any] {
	items := parsec.Map(
		parsec.Opt(parsec.List(parsec.Lazy(Expr), genlex.Keyword(","))),
		func(o parsec.Option[[]any]) []any { return o.OrElse([]any{}) })
	return parsec.ThenLeft(parsec.ThenRight(genlex.Keyword("["), items), genlex.Keyword("]"))
}

type member = parsec.Pair[string, any]

func object() parsec.Parser[genlex.Token, *Object] {
	m := parsec.Then(
		parsec.ThenLeft(genlex.StringToken(), genlex.Keyword(":")),
		parsec.Lazy(Expr))
	members := parsec.Map(
		parsec.Opt(parsec.List(m, genlex.Keyword(","))),
		func(o parsec.Option[[]member]) *Object {
			obj := NewObject()
			for _, m := range o.OrElse(nil) {
				obj.Set(m.First, m.Second)
			}
			return obj
		})
	return parsec.ThenLeft(parsec.ThenRight(genlex.Keyword("{"), members), genlex.Keyword("}"))
}
