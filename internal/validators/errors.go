package validators

import "errors"

var (
	// ErrRequestValidation is the sentinel every [RequestError] unwraps to.
	ErrRequestValidation = errors.New("request validation failed")

	ErrUnsupportedType = errors.New("unsupported type for validation")
)
