package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TokenLineEncoder writes one tab-separated line per token:
//
//	line:col  kind  value
//
// Whitespace records follow as "ws" lines holding their byte range.
type TokenLineEncoder struct {
	w io.Writer
}

func NewTokenLineEncoder(w io.Writer) *TokenLineEncoder {
	return &TokenLineEncoder{w: w}
}

func (e *TokenLineEncoder) Encode(l Lexed) error {
	text, err := e.MarshalText(l)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenLineEncoder) MarshalText(l Lexed) ([]byte, error) {
	var sb strings.Builder

	for _, tok := range l.Tokens {
		fmt.Fprintf(&sb, "%s\t%s\t%s\n", tok.Loc.Start, tok.Kind, quote(tok.Value))
	}
	for _, ws := range l.Whitespace {
		fmt.Fprintf(&sb, "ws\t%d-%d\t%s\n", ws.Range[0], ws.Range[1], quote(ws.Value))
	}

	return []byte(sb.String()), nil
}

// quote escapes values holding control characters so every record stays on
// one line.
func quote(s string) string {
	q := strconv.Quote(s)
	if q[1:len(q)-1] == s {
		return s
	}
	return q
}
