package lexer

import (
	"reflect"
	"strings"
	"testing"
)

func values(src string) []string {
	tokens, _ := Tokenize(src)
	out := []string{}
	for _, tok := range tokens {
		out = append(out, tok.Value)
	}
	return out
}

func kinds(src string) []Kind {
	tokens, _ := Tokenize(src)
	var out []Kind
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestSource(t *testing.T) {
	l := New("this is a test")
	if l.Source() != "this is a test" {
		t.Errorf("Source() = %q", l.Source())
	}
}

func TestWhitespace(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"this  is \t a test", []string{"  ", " \t ", " "}},
		{"this//This is a test", []string{"//This is a test"}},
		{"a /* b */ c", []string{" ", "/* b */", " "}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ws := Tokenize(tt.input)
			var got []string
			for _, w := range ws {
				got = append(got, w.Value)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("whitespace = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPeek(t *testing.T) {
	l := New("this is a test")
	if got := l.Peek().Value; got != "this" {
		t.Fatalf("Peek() = %q, want this", got)
	}
	if got := l.Peek().Value; got != "this" {
		t.Fatalf("second Peek() = %q, want this", got)
	}
	if got := l.Next().Value; got != "this" {
		t.Fatalf("Next() = %q, want this", got)
	}
	if got := l.Peek().Value; got != "is" {
		t.Fatalf("Peek() after Next() = %q, want is", got)
	}
}

func TestNextAtEnd(t *testing.T) {
	l := New("x")
	l.Next()
	for i := 0; i < 3; i++ {
		if tok := l.Next(); tok.Kind != EOF {
			t.Fatalf("Next() past end = %v, want EOF", tok)
		}
	}
}

func TestTokenValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"spaces", " this is      a  test   ", []string{"this", "is", "a", "test"}},
		{"line comment", " this is //     a  test   ", []string{"this", "is", "\n"}},
		{"inline block comment", " this is /*     a  */ test   ", []string{"this", "is", "test"}},
		{"empty line comment", "//", []string{"\n"}},
		{"unterminated block comment", "/*", []string{}},
		{"continuation", " this is \\\na test   ", []string{"this", "is", "a", "test"}},
		{"continuation and line comment", " this is \\ // this is a test\na test   ", []string{"this", "is", "a", "test"}},
		{"continuation and block comment", " this is \\ /* this is a test*/ \na test   ", []string{"this", "is", "a", "test"}},
		{"continuation and two line comment", " this is \\ /* this is \na test*/ a test   ", []string{"this", "is", "a", "test"}},
		{"continuation and three line comment", " this is \\ /* this \n is \n a test*/ a test   ", []string{"this", "is", "", "a", "test"}},
		{"leading decimal point", ".01", []string{".01"}},
		{"trailing decimal point", "111.", []string{"111"}},
		{"decimal", "198.992", []string{"198.992"}},
		{"member after number", "x[1].y", []string{"x", "[", "1", "]", ".", "y"}},
		{"single quotes", "'t'  'te'     'tes'    'test' '' ", []string{"t", "te", "tes", "test", ""}},
		{"double quotes", `"t"  "te"     "tes"   "test" "" `, []string{"t", "te", "tes", "test", ""}},
		{"escaped single quotes", " 'cat''s name'   ''''\t '''The'''", []string{"cat's name", "'", "'The'"}},
		{"escaped double quotes", ` "cat""s name"` + "\t" + ` """"` + "\t" + ` """The"""`, []string{`cat"s name`, `"`, `"The"`}},
		{"mixed quotes", `'say "hi"'`, []string{`say "hi"`}},
		{"unterminated string", "'abc", []string{"abc"}},
		{"four dots", "function x( .... );end;", []string{"function", "x", "(", "...", ")", ";", "end", ";"}},
		{"two dots", "function x( .. );end;", []string{"function", "x", "(", "...", ")", ";", "end", ";"}},
		{"range dots", "a[1:2]", []string{"a", "[", "1", ":", "2", "]"}},
		{"objref", "#1f2b", []string{"#1f2b"}},
		{"hash operator", "#ifdef X", []string{"#", "ifdef", "X"}},
		{"compound operators", "a+=1 b<>c d^^e $$f", []string{"a", "+=", "1", "b", "<>", "c", "d", "^^", "e", "$$", "f"}},
		{"unknown character", "a @ b", []string{"a", "@", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := values(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("values(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		input string
		want  []Kind
	}{
		{" this is /* here \n are some \r\n lines */ test   ", []Kind{Name, Name, Newline, Name}},
		{"'t' \"u\"", []Kind{String, String}},
		{"x = #1A;", []Kind{Name, Operator, ObjRef, Newline}},
		{"1 .5", []Kind{Number, Number}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := kinds(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("kinds(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLocations(t *testing.T) {
	tokens, _ := Tokenize("a = 'x'\n  foo")
	want := []struct {
		value string
		rng   Range
		start Position
		end   Position
	}{
		{"a", Range{0, 0}, Position{1, 0}, Position{1, 0}},
		{"=", Range{2, 2}, Position{1, 2}, Position{1, 2}},
		{"x", Range{4, 6}, Position{1, 4}, Position{1, 6}},
		{"\n", Range{7, 7}, Position{1, 7}, Position{1, 7}},
		{"foo", Range{10, 12}, Position{2, 2}, Position{2, 4}},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Value != w.value || tok.Range != w.rng || tok.Loc.Start != w.start || tok.Loc.End != w.end {
			t.Errorf("token %d = %+v, want %q %v %v-%v", i, tok, w.value, w.rng, w.start, w.end)
		}
	}
}

// Concatenating the source text of every token and whitespace record in
// offset order reproduces the input when no comments are present.
func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"function f( a, b )\n\treturn a + b\nend\n",
		"x = 'it''s' ; y=#1f \\\n + 2",
		"if ( a<>b ) x.y[1:2] = {1, 2} end",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			l := New(input)
			var tokens []Token
			for tok := l.Next(); tok.Kind != EOF; tok = l.Next() {
				tokens = append(tokens, tok)
			}
			pieces := map[int]string{}
			for _, tok := range tokens {
				pieces[tok.Range[0]] = input[tok.Range[0] : tok.Range[1]+1]
			}
			for _, ws := range l.Whitespace() {
				pieces[ws.Range[0]] = ws.Value
			}
			var sb strings.Builder
			for i := 0; i < len(input); {
				piece, ok := pieces[i]
				if !ok {
					t.Fatalf("no token or whitespace starts at offset %d", i)
				}
				sb.WriteString(piece)
				i += len(piece)
			}
			if sb.String() != input {
				t.Errorf("round trip = %q, want %q", sb.String(), input)
			}
		})
	}
}
