package chronofold

import "errors"

var (
	// ErrOutOfBounds is returned when a log index does not exist locally.
	ErrOutOfBounds = errors.New("log index out of bounds")
	// ErrUnknownTimestamp is returned when a timestamp was never appended locally.
	ErrUnknownTimestamp = errors.New("unknown timestamp")
	// ErrMissingCausalDependency is returned by Apply when an op arrives
	// before one of its causal ancestors. The op can be retried once the
	// dependency has been applied.
	ErrMissingCausalDependency = errors.New("missing causal dependency")
	// ErrInvalidRange is returned when a splice range does not describe an
	// increasing interval of weave positions.
	ErrInvalidRange = errors.New("invalid splice range")
)
