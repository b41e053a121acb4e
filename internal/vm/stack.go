package vm

import "calc/internal/source"

// stack хранит значения вместе с диапазоном исходного текста,
// из которого они получены
type stack struct {
	vals  []float64
	spans []source.Span
}

func newStack(capacity int) *stack {
	return &stack{
		vals:  make([]float64, 0, capacity),
		spans: make([]source.Span, 0, capacity),
	}
}

func (s *stack) len() int { return len(s.vals) }

func (s *stack) push(v float64, sp source.Span) {
	s.vals = append(s.vals, v)
	s.spans = append(s.spans, sp)
}

func (s *stack) pop() (float64, source.Span, bool) {
	n := len(s.vals)
	if n == 0 {
		return 0, source.Span{}, false
	}
	v, sp := s.vals[n-1], s.spans[n-1]
	s.vals = s.vals[:n-1]
	s.spans = s.spans[:n-1]
	return v, sp, true
}
