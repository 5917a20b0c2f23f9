package classgen

import "errors"

var (
	// ErrInvalidRequest is returned when a request cannot describe a class,
	// for instance when it declares no properties at all.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNoBuilder is returned by a ClassGenerator created without a builder.
	ErrNoBuilder = errors.New("no source builder configured")
)
