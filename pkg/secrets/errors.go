package secrets

import "errors"

var (
	// ErrInvalidPattern indicates a custom pattern failed to compile.
	ErrInvalidPattern = errors.New("invalid secret pattern")

	// ErrDuplicatePattern indicates two active patterns share a name.
	ErrDuplicatePattern = errors.New("duplicate pattern name")

	// ErrInvalidMode indicates an unrecognized security mode value.
	ErrInvalidMode = errors.New("invalid security mode")

	// ErrInvalidTOML indicates an allowlist file could not be parsed.
	ErrInvalidTOML = errors.New("invalid TOML format")
)
