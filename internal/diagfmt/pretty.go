package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"calc/internal/diag"
	"calc/internal/source"
)

type palette struct {
	err, code, gutter, caret, value, name *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		code:   color.New(color.FgYellow),
		gutter: color.New(color.FgCyan),
		caret:  color.New(color.FgRed, color.Bold),
		value:  color.New(color.FgGreen, color.Bold),
		name:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.code, p.gutter, p.caret, p.value, p.name} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty печатает ошибку в человекочитаемом виде:
//
//	<name>: Error: <message> [<code>]
//	  | <input>
//	  |     ^~~
//
// Подчёркивание строится по Span ошибки, если он есть.
func Pretty(w io.Writer, input string, err error, opts PrettyOpts) error {
	if err == nil {
		return nil
	}
	p := newPalette(opts.Color)

	var sb strings.Builder
	if opts.Name != "" {
		sb.WriteString(p.name.Sprint(opts.Name))
		sb.WriteString(": ")
	}
	sb.WriteString(p.err.Sprint("Error:"))
	sb.WriteString(" ")
	sb.WriteString(err.Error())
	if code := diag.CodeOf(err); code != diag.UnknownCode {
		sb.WriteString(" ")
		sb.WriteString(p.code.Sprintf("[%s]", code.ID()))
	}
	sb.WriteString("\n")

	if sp, ok := diag.SpanOf(err); ok && !opts.NoCaret && strings.TrimSpace(input) != "" {
		line, caret := caretLines(input, sp)
		sb.WriteString(p.gutter.Sprint("  | "))
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(p.gutter.Sprint("  | "))
		sb.WriteString(p.caret.Sprint(caret))
		sb.WriteString("\n")
	}

	_, werr := io.WriteString(w, sb.String())
	return werr
}

// Caret returns the input line and an underline for sp, with columns
// measured in terminal cells.
func Caret(input string, sp source.Span) (line, caret string) {
	return caretLines(input, sp)
}

func caretLines(input string, sp source.Span) (string, string) {
	line := strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(input)
	n, err := safecast.Conv[uint32](len(line))
	if err != nil {
		return line, "^"
	}
	sp = sp.Clamp(n)

	pad := runewidth.StringWidth(line[:sp.Start])
	width := runewidth.StringWidth(line[sp.Start:sp.End])
	if width < 1 {
		width = 1
	}
	return line, strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
}

// PrettyValue печатает успешный результат.
func PrettyValue(w io.Writer, v float64, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	text := FormatValue(v, opts.Precision)
	var err error
	if opts.Name != "" {
		_, err = fmt.Fprintf(w, "%s: %s\n", p.name.Sprint(opts.Name), p.value.Sprint(text))
	} else {
		_, err = fmt.Fprintln(w, p.value.Sprint(text))
	}
	return err
}
