package driver

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize ограничивает длину одной строки во входном файле
const maxLineSize = 1 << 20

// ReadItems reads one expression per line. Blank lines and lines starting
// with '#' are skipped; Item.Line keeps the 1-based line number.
func ReadItems(r io.Reader, name string) ([]Item, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)

	var items []Item
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		items = append(items, Item{Name: name, Line: line, Expr: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return items, nil
}

// ArgsItem joins command-line arguments into a single expression.
func ArgsItem(args []string) Item {
	return Item{Name: "<args>", Expr: strings.TrimSpace(strings.Join(args, " "))}
}
