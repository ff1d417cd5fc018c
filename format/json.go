package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/bannockburn/lexer"
)

type TokenJSONEncoder struct {
	w io.Writer
}

func NewTokenJSONEncoder(w io.Writer) *TokenJSONEncoder {
	return &TokenJSONEncoder{w: w}
}

func (e *TokenJSONEncoder) Encode(l Lexed) error {
	text, err := e.MarshalText(l)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *TokenJSONEncoder) MarshalText(l Lexed) ([]byte, error) {
	if l.Tokens == nil {
		l.Tokens = []lexer.Token{}
	}
	return json.MarshalIndent(l, "", "  ")
}
