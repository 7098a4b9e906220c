package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/MKhiriev/integrador/internal/utils"
	"github.com/MKhiriev/integrador/internal/validators"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

// Route is an entry of the route table passed to [NewHandler]. The only
// implementation is [Endpoint].
type Route interface {
	method() string
	path() string
	check() error
	handler(h *Handler) http.Handler
	describe(d *docsBuilder) (*openapi3.Operation, error)
}

// Endpoint declares one typed route.
//
// In may be a struct with any of the fields Params, Query and Body:
//
//	type getItemInput struct {
//		Params struct {
//			ID int `path:"id" validate:"gt=0"`
//		}
//		Query struct {
//			Expand bool `query:"expand"`
//		}
//	}
//
// Params is filled from route parameters (`path` tags), Query from the query
// string (`query` tags) and Body from the JSON request body (`json` tags).
// Each part is validated against its `validate` tags in the order params,
// querystring, body, before Handle is called. The value returned by Handle
// is validated the same way and written as JSON with Status.
type Endpoint[In, Out any] struct {
	Method  string
	Path    string
	Summary string
	Tags    []string

	// Secured routes require a verified credential, see [Handler.authenticate].
	Secured bool

	// Status is the success status code. Defaults to 200.
	Status int

	Handle func(ctx context.Context, in In) (Out, error)
}

func (e Endpoint[In, Out]) method() string { return e.Method }
func (e Endpoint[In, Out]) path() string   { return e.Path }

func (e Endpoint[In, Out]) status() int {
	if e.Status == 0 {
		return http.StatusOK
	}
	return e.Status
}

func (e Endpoint[In, Out]) check() error {
	switch e.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
	default:
		return fmt.Errorf("%w: unsupported method %q", ErrInvalidEndpoint, e.Method)
	}
	if !strings.HasPrefix(e.Path, "/") {
		return fmt.Errorf("%w: path %q must start with /", ErrInvalidEndpoint, e.Path)
	}
	if e.Handle == nil {
		return fmt.Errorf("%w: %s %s has no handler", ErrInvalidEndpoint, e.Method, e.Path)
	}
	if status := e.status(); status < 100 || status > 399 {
		return fmt.Errorf("%w: %s %s has success status %d", ErrInvalidEndpoint, e.Method, e.Path, status)
	}
	if _, err := layoutOf(reflect.TypeFor[In]()); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrInvalidEndpoint, e.Method, e.Path, err)
	}
	return nil
}

func (e Endpoint[In, Out]) describe(d *docsBuilder) (*openapi3.Operation, error) {
	layout, err := layoutOf(reflect.TypeFor[In]())
	if err != nil {
		return nil, err
	}
	return d.operation(operationInfo{
		summary: e.Summary,
		tags:    e.Tags,
		secured: e.Secured,
		status:  e.status(),
		input:   reflect.TypeFor[In](),
		layout:  layout,
		output:  reflect.TypeFor[Out](),
	})
}

func (e Endpoint[In, Out]) handler(h *Handler) http.Handler {
	// check has already rejected a bad layout
	layout, _ := layoutOf(reflect.TypeFor[In]())
	status := e.status()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := h.bind(r, reflect.ValueOf(&in).Elem(), layout); err != nil {
			h.fail(w, r, err)
			return
		}

		ctx := r.Context()
		if e.Secured {
			identity, err := h.authenticate(r)
			if err != nil {
				h.fail(w, r, err)
				return
			}
			ctx = utils.WithIdentity(ctx, identity)
		}

		out, err := e.Handle(ctx, in)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		if err = h.checkOutput(ctx, out); err != nil {
			h.fail(w, r, err)
			return
		}

		if _, err = utils.WriteJSON(w, out, status); err != nil {
			h.fail(w, r, fmt.Errorf("%w: %w", ErrResponseSerialization, err))
		}
	})
}

// inputLayout holds the field indexes of the request parts inside an
// endpoint input type. A negative index means the part is absent.
type inputLayout struct {
	params int
	query  int
	body   int
}

func layoutOf(t reflect.Type) (inputLayout, error) {
	layout := inputLayout{params: -1, query: -1, body: -1}
	if t.Kind() != reflect.Struct {
		return layout, nil
	}

	for i := range t.NumField() {
		field := t.Field(i)
		switch field.Name {
		case "Params", "Query":
			if field.Type.Kind() != reflect.Struct {
				return layout, fmt.Errorf("field %s must be a struct, got %s", field.Name, field.Type)
			}
			if field.Name == "Params" {
				layout.params = i
			} else {
				layout.query = i
			}
		case "Body":
			layout.body = i
		}
	}
	return layout, nil
}

// bind decodes and validates the request parts into in, stopping at the
// first failing part.
func (h *Handler) bind(r *http.Request, in reflect.Value, layout inputLayout) error {
	ctx := r.Context()

	if layout.params >= 0 {
		field := in.Field(layout.params)
		if err := h.paramsDecoder.Decode(field.Addr().Interface(), urlParams(r)); err != nil {
			return err
		}
		if err := h.validator.ValidatePart(ctx, validators.ContextParams, field.Interface()); err != nil {
			return err
		}
	}

	if layout.query >= 0 {
		field := in.Field(layout.query)
		if err := h.queryDecoder.Decode(field.Addr().Interface(), r.URL.Query()); err != nil {
			return err
		}
		if err := h.validator.ValidatePart(ctx, validators.ContextQuerystring, field.Interface()); err != nil {
			return err
		}
	}

	if layout.body >= 0 {
		field := in.Field(layout.body)
		if err := utils.DecodeJSON(r.Body, field.Addr().Interface(), h.cfg.Server.BodyLimit); err != nil {
			return validators.NewBodyDecodeError(err)
		}
		if err := h.validator.ValidatePart(ctx, validators.ContextBody, field.Interface()); err != nil {
			return err
		}
	}

	return nil
}

// checkOutput validates a handler result. The engine error is flattened into
// the message so the failure is never mistaken for a client error.
func (h *Handler) checkOutput(ctx context.Context, out any) error {
	v := reflect.ValueOf(out)
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return nil
	}

	err := h.validator.Validate(ctx, out)
	if err == nil || errors.Is(err, validators.ErrUnsupportedType) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrResponseSerialization, err.Error())
}

func urlParams(r *http.Request) map[string][]string {
	values := make(map[string][]string)

	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return values
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "*" {
			continue
		}
		values[key] = append(values[key], rctx.URLParams.Values[i])
	}
	return values
}
