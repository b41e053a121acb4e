package trace

// MultiTracer backs --trace-mode=both: every event goes to the NDJSON or
// text stream and also to the ring that is dumped when a command fails.
type MultiTracer struct {
	stream Tracer
	ring   *RingTracer
	level  Level
}

func NewMultiTracer(level Level, stream Tracer, ring *RingTracer) *MultiTracer {
	return &MultiTracer{stream: stream, ring: ring, level: level}
}

func (t *MultiTracer) Emit(ev *Event) {
	t.stream.Emit(ev)
	t.ring.Emit(ev)
}

// Flush and Close only touch the stream; the ring is dumped by the
// caller before Close and keeps its events afterwards.
func (t *MultiTracer) Flush() error { return t.stream.Flush() }
func (t *MultiTracer) Close() error { return t.stream.Close() }

func (t *MultiTracer) Level() Level  { return t.level }
func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }
