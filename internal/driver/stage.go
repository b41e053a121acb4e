package driver

// Stage names one step of the evaluation pipeline.
type Stage uint8

const (
	StageNone Stage = iota
	StageTokenize
	StageParens
	StagePostfix
	StageEval
)

// Stages lists the pipeline in execution order.
var Stages = [...]Stage{StageTokenize, StageParens, StagePostfix, StageEval}

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageTokenize:
		return "tokenize"
	case StageParens:
		return "parens"
	case StagePostfix:
		return "postfix"
	case StageEval:
		return "eval"
	default:
		return "unknown"
	}
}

// ItemStatus reports progress of a batch item.
type ItemStatus int

const (
	// ItemStarted indicates that a worker picked up the item.
	ItemStarted ItemStatus = iota
	ItemDone
)

// ItemEvent describes a batch item boundary. Result is set for ItemDone.
type ItemEvent struct {
	Index  int
	Status ItemStatus
	Result *Result
}

// ItemObserver receives item events emitted by EvalBatchWithOptions.
// It is called from worker goroutines and must be safe for concurrent use.
type ItemObserver func(ItemEvent)
