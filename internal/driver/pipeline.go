package driver

import (
	"context"
	"fmt"

	"calc/internal/diag"
	"calc/internal/lexer"
	"calc/internal/observ"
	"calc/internal/parser"
	"calc/internal/token"
	"calc/internal/trace"
	"calc/internal/vm"
)

// Result содержит всё, что известно о вычислении одного выражения
type Result struct {
	Name  string // источник, например имя файла или "<args>"
	Line  int    // номер строки в источнике, 0 если нет
	Input string

	Tokens  []token.Token
	Postfix []token.Token
	Value   float64

	Err         error
	FailedStage Stage
	Timings     observ.Report
}

// OK reports whether the expression evaluated without error.
func (r *Result) OK() bool { return r.Err == nil }

// Run tokenizes, checks, converts and evaluates input. Expression errors are
// reported in Result.Err; the first failing stage stops the pipeline.
func Run(ctx context.Context, input string) *Result {
	res := &Result{Input: input}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	timer := observ.NewTimer()
	defer func() { res.Timings = timer.Report() }()

	err := runStage(tracer, timer, parent, StageTokenize, func(stageID uint64) (string, error) {
		tokens, err := lexer.Tokenize(input)
		if err != nil {
			return "", err
		}
		res.Tokens = tokens
		if tracer.Level().ShouldEmit(trace.ScopeToken) {
			for _, tok := range tokens {
				trace.Point(tracer, trace.ScopeToken, tok.Kind.String(), tok.String(), stageID)
			}
		}
		return fmt.Sprintf("%d tokens", len(tokens)), nil
	})
	if err != nil {
		res.fail(StageTokenize, err)
		return res
	}

	err = runStage(tracer, timer, parent, StageParens, func(uint64) (string, error) {
		return "", parser.ValidateParens(res.Tokens)
	})
	if err != nil {
		res.fail(StageParens, err)
		return res
	}

	err = runStage(tracer, timer, parent, StagePostfix, func(uint64) (string, error) {
		postfix, err := parser.ToPostfix(res.Tokens)
		if err != nil {
			return "", err
		}
		res.Postfix = postfix
		return token.Join(postfix), nil
	})
	if err != nil {
		res.fail(StagePostfix, err)
		return res
	}

	err = runStage(tracer, timer, parent, StageEval, func(uint64) (string, error) {
		v, err := vm.Evaluate(res.Postfix)
		if err != nil {
			return "", err
		}
		res.Value = v
		return token.FormatNumber(v), nil
	})
	if err != nil {
		res.fail(StageEval, err)
	}
	return res
}

// Evaluate runs the pipeline and returns only the value.
func Evaluate(ctx context.Context, input string) (float64, error) {
	res := Run(ctx, input)
	return res.Value, res.Err
}

func (r *Result) fail(stage Stage, err error) {
	r.Err = err
	r.FailedStage = stage
}

// runStage оборачивает стадию в спан трассировки и фазу таймера
func runStage(tracer trace.Tracer, timer *observ.Timer, parent uint64, stage Stage, fn func(stageID uint64) (string, error)) error {
	span := trace.Begin(tracer, trace.ScopeStage, stage.String(), parent)
	idx := timer.Begin(stage.String())

	note, err := fn(span.ID())
	if err != nil {
		note = fmt.Sprintf("%s: %v", diag.CodeOf(err).ID(), err)
	}

	timer.End(idx, note)
	span.End(note)
	return err
}
