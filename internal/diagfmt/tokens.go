package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"calc/internal/source"
	"calc/internal/token"
)

type TokenOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text"`
	Value *float64    `json:"value,omitempty"`
	Span  source.Span `json:"span"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-10s %-8q at %d-%d", i+1, tok.Kind, tok.Text, tok.Span.Start, tok.Span.End); err != nil {
			return err
		}
		if tok.Kind == token.Number {
			if _, err := fmt.Fprintf(w, " = %s", token.FormatNumber(tok.Value)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tokensJSON(tokens))
}

func tokensJSON(tokens []token.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		to := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		}
		if tok.Kind == token.Number {
			v := tok.Value
			to.Value = &v
		}
		out = append(out, to)
	}
	return out
}
