package engine

import "errors"

var (
	// ErrUnknownPool is returned when the configured pool is not registered.
	ErrUnknownPool = errors.New("unknown pool")

	// ErrUnknownStrategy is returned when the configured strategy is not
	// registered.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrUnknownProperty is returned when a configured property is not
	// registered.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrInvalidConfig wraps struct validation failures.
	ErrInvalidConfig = errors.New("invalid config")
)
