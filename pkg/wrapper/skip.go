package wrapper

// SkipRequest is panicked by a step function body to abandon the remainder
// of the current scenario without failing it. The wrapper recovers it and
// reports the step as skipped rather than failed.
type SkipRequest struct {
	Reason string
}

// Skip panics with a SkipRequest. Step functions call this directly; it
// never returns.
func Skip(reason string) {
	panic(SkipRequest{Reason: reason})
}
