package domain

// Result is the uniform envelope returned for every record-system call.
// Exactly one of the success/failure sides is populated: Err == nil means
// success. Expected failures are reported here instead of as Go errors.
type Result[T any] struct {
	Value             T            `json:"value,omitempty"`
	Err               *ErrorRecord `json:"error,omitempty"`
	Attempts          int          `json:"attempts"`
	ElapsedMs         int64        `json:"elapsed_ms"`
	AttemptsExhausted bool         `json:"attempts_exhausted,omitempty"`
}

// OK reports whether the result carries a success value.
func (r Result[T]) OK() bool { return r.Err == nil }

// Success wraps a value produced after the given number of attempts.
func Success[T any](value T, attempts int, elapsedMs int64) Result[T] {
	return Result[T]{Value: value, Attempts: attempts, ElapsedMs: elapsedMs}
}

// Failure wraps a terminal error record.
func Failure[T any](err *ErrorRecord, attempts int, elapsedMs int64, exhausted bool) Result[T] {
	return Result[T]{Err: err, Attempts: attempts, ElapsedMs: elapsedMs, AttemptsExhausted: exhausted}
}
