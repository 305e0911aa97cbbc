// Copyright 2021 Jonathan Amsterdam.

package parsec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// outcome is the observable part of a Response.
type outcome struct {
	Accepted bool
	Value    any
	Index    int
	Consumed bool
}

func outcomeOf[E, A any](r Response[E, A]) outcome {
	o := outcome{Accepted: r.Accepted(), Index: r.Index(), Consumed: r.Consumed()}
	if r.Accepted() {
		o.Value = r.Value()
	}
	return o
}

func anyOf[E, A any](p Parser[E, A]) Parser[E, any] {
	return Map(p, func(a A) any { return a })
}

func accept(v any, index int, consumed bool) outcome {
	return outcome{Accepted: true, Value: v, Index: index, Consumed: consumed}
}

func reject(index int, consumed bool) outcome {
	return outcome{Index: index, Consumed: consumed}
}

func TestParse(t *testing.T) {
	for _, test := range []struct {
		name  string
		p     Parser[rune, any]
		in    string
		index int
		want  outcome
	}{
		{
			name: "Returns",
			p:    anyOf(Returns[rune]("x")),
			in:   "abc",
			want: accept("x", 0, false),
		},
		{
			name: "Fail",
			p:    anyOf(Fail[rune, int]()),
			in:   "abc",
			want: reject(0, false),
		},
		{
			name:  "Fail at index",
			p:     anyOf(Fail[rune, int]()),
			in:    "abc",
			index: 2,
			want:  reject(2, false),
		},
		{
			name: "EOS empty",
			p:    anyOf(EOS[rune]()),
			in:   "",
			want: accept(struct{}{}, 0, false),
		},
		{
			name:  "EOS at end",
			p:     anyOf(EOS[rune]()),
			in:    "ab",
			index: 2,
			want:  accept(struct{}{}, 2, false),
		},
		{
			name: "EOS fail",
			p:    anyOf(EOS[rune]()),
			in:   "a",
			want: reject(0, false),
		},
		{
			name: "Char",
			p:    anyOf(Char('a')),
			in:   "abc",
			want: accept('a', 1, true),
		},
		{
			name: "Char fail",
			p:    anyOf(Char('b')),
			in:   "abc",
			want: reject(0, false),
		},
		{
			name: "Char at end",
			p:    anyOf(Char('b')),
			in:   "",
			want: reject(0, false),
		},
		{
			name:  "Satisfy",
			p:     anyOf(Satisfy(func(r rune) bool { return r == 'c' })),
			in:    "abc",
			index: 2,
			want:  accept('c', 3, true),
		},
		{
			name:  "Satisfy past end",
			p:     anyOf(Satisfy(func(rune) bool { return true })),
			in:    "abc",
			index: 5,
			want:  reject(5, false),
		},
		{
			name:  "Satisfy before start",
			p:     anyOf(Satisfy(func(rune) bool { return true })),
			in:    "abc",
			index: -1,
			want:  reject(-1, false),
		},
		{
			name: "NotChar",
			p:    anyOf(NotChar('b')),
			in:   "abc",
			want: accept('a', 1, true),
		},
		{
			name: "Letter upper",
			p:    anyOf(Letter()),
			in:   "Q",
			want: accept('Q', 1, true),
		},
		{
			name: "Letter fail",
			p:    anyOf(Letter()),
			in:   "1",
			want: reject(0, false),
		},
		{
			name: "Digit Rep",
			p:    anyOf(Rep(Digit())),
			in:   "123abc",
			want: accept([]rune{'1', '2', '3'}, 3, true),
		},
		{
			name: "Digit Rep one",
			p:    anyOf(Rep(Digit())),
			in:   "7a",
			want: accept([]rune{'7'}, 1, true),
		},
		{
			name: "Digit Rep none",
			p:    anyOf(Rep(Digit())),
			in:   "abc",
			want: reject(0, false),
		},
		{
			name: "Digit OptRep none",
			p:    anyOf(OptRep(Digit())),
			in:   "abc",
			want: accept([]rune{}, 0, false),
		},
		{
			name: "Digit OptRep",
			p:    anyOf(OptRep(Digit())),
			in:   "12",
			want: accept([]rune{'1', '2'}, 2, true),
		},
		{
			name: "Rep stops on consuming reject",
			p:    anyOf(Rep(Equal("ab"))),
			in:   "ababac",
			want: reject(5, true),
		},
		{
			name: "Opt present",
			p:    anyOf(Opt(Char('a'))),
			in:   "a",
			want: accept(Some('a'), 1, true),
		},
		{
			name: "Opt absent",
			p:    anyOf(Opt(Char('a'))),
			in:   "b",
			want: accept(None[rune](), 0, false),
		},
		{
			name: "Opt consuming reject",
			p:    anyOf(Opt(Equal("ab"))),
			in:   "ac",
			want: reject(1, true),
		},
		{
			name: "Equal",
			p:    anyOf(Equal("foo")),
			in:   "food",
			want: accept("foo", 3, true),
		},
		{
			name: "Equal partial",
			p:    anyOf(Equal("foo")),
			in:   "fob",
			want: reject(2, true),
		},
		{
			name: "Then",
			p:    anyOf(Then(Char('a'), Digit())),
			in:   "a1",
			want: accept(Pair[rune, rune]{'a', '1'}, 2, true),
		},
		{
			name: "ThenLeft",
			p:    anyOf(ThenLeft(Char('a'), Digit())),
			in:   "a1",
			want: accept('a', 2, true),
		},
		{
			name: "ThenRight",
			p:    anyOf(ThenRight(Char('a'), Digit())),
			in:   "a1",
			want: accept('1', 2, true),
		},
		{
			name: "ThenReturns",
			p:    anyOf(ThenReturns(Equal("null"), 0)),
			in:   "null",
			want: accept(0, 4, true),
		},
		{
			name: "Map",
			p:    anyOf(Map(Digit(), func(r rune) int { return int(r - '0') })),
			in:   "7",
			want: accept(7, 1, true),
		},
		{
			name: "Match",
			p:    anyOf(Match(AnyChar(), 'x')),
			in:   "x",
			want: accept('x', 1, true),
		},
		{
			name: "Match fail keeps consumed",
			p:    anyOf(Match(AnyChar(), 'x')),
			in:   "y",
			want: reject(1, true),
		},
		{
			name: "Filter of non-consuming parser",
			p:    anyOf(Returns[rune](3).Filter(func(n int) bool { return n > 5 })),
			in:   "",
			want: reject(0, false),
		},
		{
			name: "Or first",
			p:    anyOf(Char('a').Or(AnyChar())),
			in:   "a",
			want: accept('a', 1, true),
		},
		{
			name: "Or second",
			p:    anyOf(Char('a').Or(Char('b'))),
			in:   "b",
			want: accept('b', 1, true),
		},
		{
			name: "Or fail",
			p:    anyOf(Char('a').Or(Char('b'))),
			in:   "c",
			want: reject(0, false),
		},
		{
			name: "Or after consuming",
			p:    anyOf(Equal("ab").Or(Equal("ac"))),
			in:   "ac",
			want: reject(1, true),
		},
		{
			name: "Try",
			p:    anyOf(Try(Equal("ab")).Or(Equal("ac"))),
			in:   "ac",
			want: accept("ac", 2, true),
		},
		{
			name: "Try keeps index",
			p:    anyOf(Try(Equal("abc"))),
			in:   "abd",
			want: reject(2, false),
		},
		{
			name: "Bind",
			p: anyOf(Bind(Digit(), func(d rune) Parser[rune, string] {
				return ThenReturns(Equal(string(d)), "twice")
			})),
			in:   "33",
			want: accept("twice", 2, true),
		},
		{
			name: "Bind second step fails",
			p: anyOf(Bind(Digit(), func(d rune) Parser[rune, string] {
				return Equal(string(d))
			})),
			in:   "34",
			want: reject(1, true),
		},
		{
			name: "Bind keeps first step's consumption",
			p: anyOf(Bind(Char('a'), func(rune) Parser[rune, int] {
				return Returns[rune](1)
			})),
			in:   "a",
			want: accept(1, 1, true),
		},
		{
			name: "Bind keeps first step's consumption on reject",
			p: anyOf(Bind(Char('a'), func(rune) Parser[rune, int] {
				return Fail[rune, int]()
			})),
			in:   "a",
			want: reject(1, true),
		},
		{
			name: "CharLiteral",
			p:    anyOf(CharLiteral()),
			in:   "'a'",
			want: accept('a', 3, true),
		},
		{
			name: "quoted char by hand",
			p: anyOf(ThenLeft(
				ThenRight(Char('\''), NotChar('\'').Or(ThenRight(Char('\\'), Char('\'')))),
				Char('\''))),
			in:   "'a'",
			want: accept('a', 3, true),
		},
		{
			name: "CharLiteral escaped quote",
			p:    anyOf(CharLiteral()),
			in:   `'\''`,
			want: accept('\'', 4, true),
		},
		{
			name: "CharLiteral unterminated",
			p:    anyOf(CharLiteral()),
			in:   "'ab",
			want: reject(2, true),
		},
		{
			name: "StringLiteral",
			p:    anyOf(StringLiteral()),
			in:   `"a\"b\n"`,
			want: accept("a\"b\n", 8, true),
		},
		{
			name: "StringLiteral empty",
			p:    anyOf(StringLiteral()),
			in:   `""`,
			want: accept("", 2, true),
		},
		{
			name: "StringLiteral unicode escape",
			p:    anyOf(StringLiteral()),
			in:   `"\u0041\u00e9"`,
			want: accept("Aé", 14, true),
		},
		{
			name: "StringLiteral surrogate pair",
			p:    anyOf(StringLiteral()),
			in:   "\"\x5cud83d\x5cude00\"",
			want: accept("\U0001F600", 14, true),
		},
		{
			name: "StringLiteral lone surrogate",
			p:    anyOf(StringLiteral()),
			in:   "\"\x5cud83d\x5cn\"",
			want: accept("\xef\xbf\xbd\n", 10, true),
		},
		{
			name: "StringLiteral bad escape",
			p:    anyOf(StringLiteral()),
			in:   `"\q"`,
			want: reject(2, true),
		},
		{
			name: "JSONStringLiteral",
			p:    anyOf(JSONStringLiteral()),
			in:   "\"a\x5c/\x5cud83d\x5cude00\"",
			want: accept("a/\U0001F600", 17, true),
		},
		{
			name: "JSONStringLiteral quote escape",
			p:    anyOf(JSONStringLiteral()),
			in:   "\"\x5c'\"",
			want: reject(2, true),
		},
		{
			name: "JSONStringLiteral control character",
			p:    anyOf(JSONStringLiteral()),
			in:   "\"a\nb\"",
			want: reject(2, true),
		},
		{
			name: "NumberLiteral",
			p:    anyOf(NumberLiteral()),
			in:   "42x",
			want: accept(42, 2, true),
		},
		{
			name: "NumberLiteral overflow",
			p:    anyOf(NumberLiteral()),
			in:   "99999999999999999999999",
			want: reject(23, true),
		},
		{
			name: "Spaces",
			p:    anyOf(ThenRight(Spaces(), Char('x'))),
			in:   " \t\nx",
			want: accept('x', 4, true),
		},
		{
			name: "List",
			p:    anyOf(List(NumberLiteral(), Char(','))),
			in:   "1,22,333",
			want: accept([]int{1, 22, 333}, 8, true),
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := outcomeOf(test.p.Parse(OfString(test.in), test.index))
			if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(Option[rune]{})); diff != "" {
				t.Errorf("mismatch (-want, +got)\n%s", diff)
			}
		})
	}
}

func TestOrDoesNotTryAlternativeAfterConsuming(t *testing.T) {
	called := false
	q := Parser[rune, rune](func(s Stream[rune], index int) Response[rune, rune] {
		called = true
		return Accept('q', s, index, false)
	})
	// p consumes "a", then fails on "c".
	p := ThenRight(Char('a'), Char('b'))

	got := outcomeOf(p.Or(q).Parse(OfString("ac"), 0))
	if diff := cmp.Diff(reject(1, true), got); diff != "" {
		t.Errorf("mismatch (-want, +got)\n%s", diff)
	}
	if called {
		t.Error("alternative was tried after the first parser consumed input")
	}

	got = outcomeOf(Try(p).Or(q).Parse(OfString("ac"), 0))
	if diff := cmp.Diff(accept('q', 0, false), got); diff != "" {
		t.Errorf("with Try: mismatch (-want, +got)\n%s", diff)
	}
	if !called {
		t.Error("with Try: alternative was not tried")
	}
}

func TestOrIsLeftBiased(t *testing.T) {
	ps := []Parser[rune, string]{
		Returns[rune]("empty"),
		ThenReturns(AnyChar(), "any"),
		Equal("ab"),
		Map(Rep(Letter()), func(rs []rune) string { return string(rs) }),
	}
	for i, p := range ps {
		for j, q := range ps {
			for _, in := range []string{"ab", "abc", "x"} {
				s := OfString(in)
				want := p.Parse(s, 0)
				if !want.Accepted() || !q.Parse(s, 0).Accepted() {
					continue
				}
				if diff := cmp.Diff(outcomeOf(want), outcomeOf(p.Or(q).Parse(s, 0))); diff != "" {
					t.Errorf("ps[%d].Or(ps[%d]) on %q: mismatch (-want, +got)\n%s", i, j, in, diff)
				}
			}
		}
	}
}

func TestMonadLaws(t *testing.T) {
	str := func(rs []rune) string { return string(rs) }
	ps := map[string]Parser[rune, string]{
		"returns":   Returns[rune]("r"),
		"fail":      Fail[rune, string](),
		"char":      Map(Char('a'), func(r rune) string { return string(r) }),
		"equal":     Equal("ab"),
		"rep":       Map(Rep(Letter()), str),
		"opt":       Map(Opt(Char('a')), func(o Option[rune]) string { return string(o.OrElse('-')) }),
		"try equal": Try(Equal("abc")),
	}
	fs := map[string]func(string) Parser[rune, string]{
		"returns": func(v string) Parser[rune, string] { return Returns[rune](v + "!") },
		"digits":  func(v string) Parser[rune, string] { return Map(OptRep(Digit()), func(ds []rune) string { return v + string(ds) }) },
		"equal":   func(v string) Parser[rune, string] { return ThenReturns(Equal("b"), v+"b") },
		"fail":    func(string) Parser[rune, string] { return Fail[rune, string]() },
	}
	inputs := []string{"", "a", "ab", "abc", "ab12", "b", "a1", "x"}

	check := func(t *testing.T, name string, left, right Parser[rune, string]) {
		t.Helper()
		for _, in := range inputs {
			s := OfString(in)
			if diff := cmp.Diff(outcomeOf(right.Parse(s, 0)), outcomeOf(left.Parse(s, 0))); diff != "" {
				t.Errorf("%s on %q: mismatch (-want, +got)\n%s", name, in, diff)
			}
		}
	}

	t.Run("left identity", func(t *testing.T) {
		for fname, f := range fs {
			check(t, fname, Bind(Returns[rune]("v"), f), f("v"))
		}
	})
	t.Run("right identity", func(t *testing.T) {
		for pname, p := range ps {
			check(t, pname, Bind(p, func(v string) Parser[rune, string] { return Returns[rune](v) }), p)
		}
	})
	t.Run("associativity", func(t *testing.T) {
		for pname, p := range ps {
			for fname, f := range fs {
				for gname, g := range fs {
					left := Bind(Bind(p, f), g)
					right := Bind(p, func(x string) Parser[rune, string] { return Bind(f(x), g) })
					check(t, pname+"/"+fname+"/"+gname, left, right)
				}
			}
		}
	})
}

// nesting parses balanced parentheses and returns their depth.
func nesting() Parser[rune, int] {
	return Map(
		ThenLeft(ThenRight(Char('('), Opt(Lazy(nesting))), Char(')')),
		func(o Option[int]) int { return o.OrElse(0) + 1 })
}

func TestLazy(t *testing.T) {
	calls := 0
	rule := func() Parser[rune, rune] {
		calls++
		return Char('x')
	}
	p := Lazy(rule)
	if calls != 0 {
		t.Fatalf("rule called %d times before parsing", calls)
	}
	p.Parse(OfString("x"), 0)
	p.Parse(OfString("x"), 0)
	if calls != 2 {
		t.Errorf("rule called %d times, want 2", calls)
	}

	for _, test := range []struct {
		in   string
		want outcome
	}{
		{"()", accept(1, 2, true)},
		{"((()))", accept(3, 6, true)},
		{"(()", reject(3, true)},
		{")", reject(0, false)},
	} {
		got := outcomeOf(nesting().Parse(OfString(test.in), 0))
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%q: mismatch (-want, +got)\n%s", test.in, diff)
		}
	}
}

func TestRepLong(t *testing.T) {
	in := make([]rune, 100000)
	for i := range in {
		in[i] = 'a'
	}
	r := Rep(Char('a')).Parse(OfSlice(in), 0)
	if !r.Accepted() || len(r.Value()) != len(in) || r.Index() != len(in) {
		t.Errorf("got %d values, index %d; want %d", len(r.Value()), r.Index(), len(in))
	}
}

func TestRun(t *testing.T) {
	p := List(NumberLiteral(), Char(','))
	got, err := p.Run(OfString("1,2,3"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("mismatch (-want, +got)\n%s", diff)
	}

	for _, test := range []struct {
		in   string
		want *RejectError
		msg  string
	}{
		{"1,2,", &RejectError{Index: 4, Consumed: true}, "parse failed at offset 4"},
		{"x", &RejectError{Index: 0}, "parse failed at offset 0"},
		{"1,2 3", &RejectError{Index: 3, Consumed: true, Unconsumed: true}, "unconsumed input starting at offset 3"},
	} {
		_, err := p.Run(OfString(test.in))
		var rerr *RejectError
		if !errors.As(err, &rerr) {
			t.Fatalf("%q: got %v, want a *RejectError", test.in, err)
		}
		if diff := cmp.Diff(test.want, rerr); diff != "" {
			t.Errorf("%q: mismatch (-want, +got)\n%s", test.in, diff)
		}
		if got := err.Error(); got != test.msg {
			t.Errorf("%q: got %q, want %q", test.in, got, test.msg)
		}
	}
}
