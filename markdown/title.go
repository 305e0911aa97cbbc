// Copyright 2021 Jonathan Amsterdam.

// Package markdown parses markdown titles with parsec.
//
// Two forms are recognized. A sharp title is one to six '#' characters,
// blanks, and the title text:
//
//	## Installation
//
// An underlined title is a line of text followed by a line of '=' (level 1)
// or '-' (level 2):
//
//	Installation
//	------------
package markdown

import (
	"strings"

	"github.com/jba/parsec"
)

// Title is a parsed markdown title.
type Title struct {
	Level      int    `json:"level" yaml:"level"`
	Text       string `json:"text" yaml:"text"`
	Type       string `json:"type" yaml:"type"`
	TypeOption string `json:"typeOption" yaml:"typeOption"`
}

const (
	sharp = "sharp"
	line  = "line"

	maxLevel = 6
)

// ParseTitle parses source as a single title. The second result is false
// if source is not a title.
func ParseTitle(source string) (Title, bool) {
	t, err := TitleParser().Run(parsec.OfString(source))
	return t, err == nil
}

// TitleParser returns a parser for a sharp or underlined title, including
// the newline that ends it, if any.
func TitleParser() parsec.Parser[rune, Title] {
	return sharpTitle().Or(lineTitle())
}

func blank() parsec.Parser[rune, rune] {
	return parsec.Char(' ').Or(parsec.Char('\t'))
}

// newline parses "\n" or "\r\n".
func newline() parsec.Parser[rune, struct{}] {
	return parsec.ThenReturns(parsec.ThenRight(parsec.Opt(parsec.Char('\r')), parsec.Char('\n')), struct{}{})
}

func endOfLine() parsec.Parser[rune, struct{}] {
	return newline().Or(parsec.EOS[rune]())
}

// text parses the rest of a non-empty line, without the newline.
func text() parsec.Parser[rune, string] {
	return parsec.Map(parsec.While(func(r rune) bool { return r != '\n' }), func(s string) string {
		return strings.TrimRight(s, " \t\r")
	})
}

func sharpTitle() parsec.Parser[rune, Title] {
	sharps := parsec.Rep(parsec.Char('#')).Filter(func(rs []rune) bool { return len(rs) <= maxLevel })
	return parsec.Map(
		parsec.Then(
			parsec.ThenLeft(sharps, parsec.Rep(blank())),
			parsec.ThenLeft(text(), endOfLine())),
		func(p parsec.Pair[[]rune, string]) Title {
			return Title{Level: len(p.First), Text: p.Second, Type: "title", TypeOption: sharp}
		})
}

func lineTitle() parsec.Parser[rune, Title] {
	underline := func(c rune, level int) parsec.Parser[rune, int] {
		return parsec.ThenReturns(parsec.Rep(parsec.Char(c)), level)
	}
	level := parsec.ThenLeft(
		parsec.ThenLeft(underline('=', 1).Or(underline('-', 2)), parsec.OptRep(blank())),
		endOfLine())
	return parsec.Map(
		parsec.Then(parsec.ThenLeft(text(), newline()), level),
		func(p parsec.Pair[string, int]) Title {
			return Title{Level: p.Second, Text: p.First, Type: "title", TypeOption: line}
		})
}
