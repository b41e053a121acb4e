package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"calc/internal/trace"
)

// Item is one expression of a batch together with its origin.
type Item struct {
	Name string
	Line int
	Expr string
}

// BatchOptions configures EvalBatchWithOptions.
type BatchOptions struct {
	Jobs     int // 0 = GOMAXPROCS
	Observer ItemObserver
}

// EvalBatch evaluates items in parallel with at most jobs workers.
func EvalBatch(ctx context.Context, items []Item, jobs int) ([]*Result, error) {
	return EvalBatchWithOptions(ctx, items, BatchOptions{Jobs: jobs})
}

// EvalBatchWithOptions evaluates items in parallel. Results keep the order of
// items. Expression failures stay in each Result; the returned error is only
// set when ctx is cancelled, and then some results may be nil.
func EvalBatchWithOptions(ctx context.Context, items []Item, opts BatchOptions) ([]*Result, error) {
	results := make([]*Result, len(items))
	if len(items) == 0 {
		return results, ctx.Err()
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	batchSpan := trace.Begin(tracer, trace.ScopeDriver, "batch", trace.CurrentSpan(ctx).SpanID).
		WithExtra("items", fmt.Sprint(len(items))).
		WithExtra("jobs", fmt.Sprint(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(items)))

	for i, item := range items {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			notify(opts.Observer, ItemEvent{Index: i, Status: ItemStarted})

			span := trace.Begin(tracer, trace.ScopeExpr, itemName(item), batchSpan.ID())
			ictx := trace.WithSpanContext(gctx, trace.SpanContext{SpanID: span.ID()})

			res := Run(ictx, item.Expr)
			res.Name, res.Line = item.Name, item.Line
			span.End(resultNote(res))

			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = res
			notify(opts.Observer, ItemEvent{Index: i, Status: ItemDone, Result: res})
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		// отмена могла случиться, когда все задачи уже прошли проверку
		err = ctx.Err()
	}
	failed := 0
	for _, r := range results {
		if r != nil && !r.OK() {
			failed++
		}
	}
	batchSpan.WithExtra("failed", fmt.Sprint(failed))
	if err != nil {
		batchSpan.End(err.Error())
		return results, err
	}
	batchSpan.End("")
	return results, nil
}

func notify(obs ItemObserver, ev ItemEvent) {
	if obs != nil {
		obs(ev)
	}
}

func itemName(item Item) string {
	if item.Line > 0 {
		return fmt.Sprintf("%s:%d", item.Name, item.Line)
	}
	return item.Name
}

func resultNote(r *Result) string {
	if r.Err != nil {
		return r.FailedStage.String() + ": " + r.Err.Error()
	}
	return ""
}
