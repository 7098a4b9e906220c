package validators

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/MKhiriev/integrador/models"
	"github.com/go-playground/validator/v10"
)

// SchemaValidator validates decoded request and response values against the
// `validate` struct tags of their types.
//
// Field names in reported paths come from the `json` tag, then the `query`
// tag, then the `path` tag, falling back to the Go field name.
type SchemaValidator struct {
	engine *validator.Validate
}

var _ Validator = (*SchemaValidator)(nil)

// NewSchemaValidator constructs a SchemaValidator with a configured engine.
// The engine caches struct metadata and is safe for concurrent use.
func NewSchemaValidator() *SchemaValidator {
	engine := validator.New(validator.WithRequiredStructEnabled())
	engine.RegisterTagNameFunc(fieldName)

	return &SchemaValidator{engine: engine}
}

// Validate runs the engine over obj. Structs are checked against their
// tags. Slices, arrays and maps are walked and every element is checked the
// same way. When fields are given only those top-level struct fields are
// validated.
//
// A failure is an [*EngineError], which unwraps to the
// [validator.ValidationErrors] produced by the engine.
func (v *SchemaValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var err error
	switch {
	case isStruct(obj) && len(fields) > 0:
		err = v.engine.StructPartialCtx(ctx, obj, fields...)
	case isStruct(obj):
		err = v.engine.StructCtx(ctx, obj)
	case isCollection(obj) && len(fields) == 0:
		err = v.engine.VarCtx(ctx, obj, "dive")
	default:
		return ErrUnsupportedType
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return &EngineError{Errors: fieldErrs, Root: rootName(obj)}
	}
	return err
}

// ValidatePart validates one request part. Scalars and nil carry no rules
// and pass. Engine failures are returned as a *RequestError for part; any
// other engine error is returned as is.
func (v *SchemaValidator) ValidatePart(ctx context.Context, part Context, obj any) error {
	err := v.Validate(ctx, obj)
	if err == nil || errors.Is(err, ErrUnsupportedType) {
		return nil
	}

	var engineErr *EngineError
	if !errors.As(err, &engineErr) {
		return err
	}

	return NewRequestError(part, Issues(engineErr.Errors, engineErr.Root))
}

// Issues converts engine field errors into validation issues. root is the
// type name the engine prefixed the namespaces with, see [RootOf].
func Issues(errs validator.ValidationErrors, root string) []models.ValidationIssue {
	issues := make([]models.ValidationIssue, 0, len(errs))
	for _, fe := range errs {
		issue := models.ValidationIssue{
			InstancePath: instancePath(fieldPath(fe.Namespace(), root)),
			Keyword:      fe.Tag(),
			Message:      message(fe),
		}
		switch {
		case fe.Tag() == "required":
			issue.Params = map[string]any{"missingProperty": fe.Field()}
		case fe.Param() != "":
			issue.Params = map[string]any{"limit": fe.Param()}
		}
		issues = append(issues, issue)
	}
	return issues
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "query", "path"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return ""
}

func isStruct(obj any) bool {
	t := derefType(reflect.TypeOf(obj))
	return t != nil && t.Kind() == reflect.Struct
}

func isCollection(obj any) bool {
	t := derefType(reflect.TypeOf(obj))
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

func derefType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// rootName is the prefix the engine puts in front of every namespace when
// validating obj: the name of a named struct type, nothing for anonymous
// structs and collections.
func rootName(obj any) string {
	t := derefType(reflect.TypeOf(obj))
	if t == nil || t.Kind() != reflect.Struct {
		return ""
	}
	return t.Name()
}

// fieldPath splits an engine namespace such as "createBody.items[0].name"
// into ["items", "0", "name"], dropping the root type name when there is one.
func fieldPath(namespace, root string) []string {
	if root != "" {
		rest, found := strings.CutPrefix(namespace, root+".")
		if !found {
			return nil
		}
		namespace = rest
	}
	if namespace == "" {
		return nil
	}

	var path []string
	for _, piece := range strings.Split(namespace, ".") {
		name, indexes, _ := strings.Cut(piece, "[")
		if name != "" {
			path = append(path, name)
		}
		if indexes == "" {
			continue
		}
		for _, idx := range strings.Split(strings.TrimSuffix(indexes, "]"), "][") {
			path = append(path, idx)
		}
	}
	return path
}

func instancePath(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return "/" + strings.Join(path, "/")
}
