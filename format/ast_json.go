package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/bannockburn/ast"
)

// ASTJSONEncoder writes a statement list as indented JSON, one array per
// Encode call.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(nodes []*ast.Node) error {
	text, err := e.MarshalText(nodes)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(nodes []*ast.Node) ([]byte, error) {
	if nodes == nil {
		nodes = []*ast.Node{}
	}
	return json.MarshalIndent(nodes, "", "  ")
}
