package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/bannockburn/parser"
)

func TestASTJSONEncoder(t *testing.T) {
	nodes, err := parser.New().Parse("function x(a); return a + 1; end")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(nodes); err != nil {
		t.Fatal(err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, buf.String())
	}
	if len(got) != 1 {
		t.Fatalf("got %d statements, want 1", len(got))
	}
	fn := got[0]
	if fn["type"] != "FunctionDeclaration" || fn["name"] != "x" {
		t.Errorf("function = %v", fn)
	}
	body, ok := fn["body"].([]any)
	if !ok || len(body) != 1 {
		t.Fatalf("body = %v", fn["body"])
	}
	ret := body[0].(map[string]any)
	if ret["type"] != "ReturnStatement" {
		t.Errorf("body[0].type = %v", ret["type"])
	}
	if !strings.Contains(buf.String(), "\n  {") {
		t.Error("output is not indented")
	}
}

func TestASTJSONEncoderEmpty(t *testing.T) {
	text, err := NewASTJSONEncoder(nil).MarshalText(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "[]" {
		t.Errorf("MarshalText(nil) = %s, want []", text)
	}
}

func TestTokenJSONEncoder(t *testing.T) {
	tests := []struct {
		name           string
		withWhitespace bool
		wantWhitespace bool
	}{
		{"tokens only", false, false},
		{"with whitespace", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewTokenJSONEncoder(&buf).Encode(Lex("a = 1 // one\n", tt.withWhitespace)); err != nil {
				t.Fatal(err)
			}
			var got struct {
				Tokens []struct {
					Type  string `json:"type"`
					Value string `json:"value"`
					Range [2]int `json:"range"`
				} `json:"tokens"`
				Whitespace []json.RawMessage `json:"whitespace"`
			}
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			if len(got.Tokens) != 4 {
				t.Fatalf("tokens = %+v", got.Tokens)
			}
			first := got.Tokens[0]
			if first.Type != "name" || first.Value != "a" || first.Range != [2]int{0, 0} {
				t.Errorf("first token = %+v", first)
			}
			if last := got.Tokens[3]; last.Type != "(nl)" {
				t.Errorf("last token = %+v", last)
			}
			if (len(got.Whitespace) > 0) != tt.wantWhitespace {
				t.Errorf("whitespace = %s", got.Whitespace)
			}
		})
	}
}

func TestTokenLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTokenLineEncoder(&buf).Encode(Lex("s = 'x'\n", true)); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"1:0\tname\ts",
		"1:2\toperator\t=",
		"1:4\tstring\tx",
		"1:7\t(nl)\t\"\\n\"",
		"ws\t1-1\t ",
		"ws\t3-3\t ",
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}
