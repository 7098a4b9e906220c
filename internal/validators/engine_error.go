package validators

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EngineError is a schema engine failure returned by [SchemaValidator].
//
// The engine prefixes field namespaces with the name of the validated type
// when that type is a named struct. Root records that prefix so paths can be
// rebuilt exactly.
type EngineError struct {
	Errors validator.ValidationErrors
	Root   string
}

func (e *EngineError) Error() string {
	return e.Errors.Error()
}

func (e *EngineError) Unwrap() error {
	return e.Errors
}

// RootOf returns the namespace prefix of errs, which must have been
// extracted from err. Errors produced by [SchemaValidator] carry it. For
// errors built directly by the engine it is inferred: a named root type
// shows up as the same leading segment in both the field and struct
// namespaces of every error.
func RootOf(err error, errs validator.ValidationErrors) string {
	var engineErr *EngineError
	if errors.As(err, &engineErr) && sameErrors(engineErr.Errors, errs) {
		return engineErr.Root
	}
	return inferRoot(errs)
}

func sameErrors(a, b validator.ValidationErrors) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || a[0] == b[0]
}

func inferRoot(errs validator.ValidationErrors) string {
	root := ""
	for i, fe := range errs {
		head, _, nested := strings.Cut(fe.Namespace(), ".")
		structHead, _, _ := strings.Cut(fe.StructNamespace(), ".")
		if !nested || head != structHead || (i > 0 && head != root) {
			return ""
		}
		root = head
	}
	return root
}
