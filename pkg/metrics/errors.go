package metrics

import "fmt"

// UnknownMetricError reports an unrecognized metric name or cutoff.
type UnknownMetricError struct {
	Spec string
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("unknown metric: %s", e.Spec)
}
