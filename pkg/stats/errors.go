// Package stats implements significance tests over aligned per-topic
// metric scores from two or more systems.
package stats

// InputError reports a sample that cannot feed the requested test:
// too few topics or systems, mismatched topic sets, or rows whose
// length differs from the declared number of systems.
type InputError struct {
	msg string
}

func (e *InputError) Error() string {
	return e.msg
}

// NumericError reports a degenerate computation, such as a zero
// variance that would otherwise produce a non-finite statistic.
type NumericError struct {
	msg string
}

func (e *NumericError) Error() string {
	return e.msg
}
