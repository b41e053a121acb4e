package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"calc/internal/diag"
	"calc/internal/driver"
	"calc/internal/source"
	"calc/internal/token"
)

// FormatResultsPretty печатает результаты пакета по порядку. Имя каждого
// результата строится из Result.Name и Result.Line.
func FormatResultsPretty(w io.Writer, results []*driver.Result, opts PrettyOpts) error {
	for _, res := range results {
		if res == nil {
			continue
		}
		o := opts
		o.Name = ResultName(res)
		var err error
		if res.OK() {
			err = PrettyValue(w, res.Value, o)
		} else {
			err = Pretty(w, res.Input, res.Err, o)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ResultName returns "name:line", "name" or "" for a result.
func ResultName(res *driver.Result) string {
	switch {
	case res.Name != "" && res.Line > 0:
		return fmt.Sprintf("%s:%d", res.Name, res.Line)
	default:
		return res.Name
	}
}

// ErrorJSON описывает ошибку вычисления
type ErrorJSON struct {
	Code    string       `json:"code"`
	Kind    string       `json:"kind"`
	Message string       `json:"message"`
	Stage   string       `json:"stage"`
	Span    *source.Span `json:"span,omitempty"`
}

// ResultJSON описывает результат одного выражения
type ResultJSON struct {
	Name    string        `json:"name,omitempty"`
	Line    int           `json:"line,omitempty"`
	Input   string        `json:"input"`
	OK      bool          `json:"ok"`
	Value   *float64      `json:"value,omitempty"`
	Text    string        `json:"text,omitempty"`
	Error   *ErrorJSON    `json:"error,omitempty"`
	Tokens  []TokenOutput `json:"tokens,omitempty"`
	Postfix string        `json:"postfix,omitempty"`
}

// ResultsOutput представляет корневую структуру JSON вывода
type ResultsOutput struct {
	Results []ResultJSON `json:"results"`
	Count   int          `json:"count"`
	Failed  int          `json:"failed"`
}

// BuildResultsJSON converts results into their JSON shape.
func BuildResultsJSON(results []*driver.Result, opts JSONOpts) ResultsOutput {
	out := ResultsOutput{Results: make([]ResultJSON, 0, len(results))}
	for _, res := range results {
		if res == nil {
			continue
		}
		rj := ResultJSON{
			Name:  res.Name,
			Line:  res.Line,
			Input: res.Input,
			OK:    res.OK(),
		}
		if res.OK() {
			rj.Text = FormatValue(res.Value, opts.Precision)
			// JSON не умеет Inf и NaN, остаётся только text
			if !math.IsInf(res.Value, 0) && !math.IsNaN(res.Value) {
				v := res.Value
				rj.Value = &v
			}
		} else {
			out.Failed++
			rj.Error = errorJSON(res)
		}
		if opts.IncludeTokens {
			rj.Tokens = tokensJSON(res.Tokens)
			if res.Postfix != nil {
				rj.Postfix = token.Join(res.Postfix)
			}
		}
		out.Results = append(out.Results, rj)
	}
	out.Count = len(out.Results)
	return out
}

// FormatResultsJSON выводит результаты в JSON формате
func FormatResultsJSON(w io.Writer, results []*driver.Result, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(BuildResultsJSON(results, opts))
}

func errorJSON(res *driver.Result) *ErrorJSON {
	code := diag.CodeOf(res.Err)
	ej := &ErrorJSON{
		Code:    code.ID(),
		Kind:    code.Kind(),
		Message: res.Err.Error(),
		Stage:   res.FailedStage.String(),
	}
	if sp, ok := diag.SpanOf(res.Err); ok {
		ej.Span = &sp
	}
	return ej
}
