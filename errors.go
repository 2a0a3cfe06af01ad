package tso

import "fmt"

// ConfigError reports an invalid swarm configuration.  Constructors return
// it before any agents are built - a swarm is never partially created.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("tso: invalid %v: %v", e.Field, e.Reason)
}

// EvalError wraps a failed objective evaluation.  The optimizer performs no
// retry and no recovery; the error propagates straight out of the iteration
// that hit it.
type EvalError struct {
	Point Point
	Err   error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("tso: objective evaluation at %v failed: %v", e.Point.Pos(), e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }
