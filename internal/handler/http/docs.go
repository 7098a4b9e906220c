package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"slices"
	"strings"

	"github.com/MKhiriev/integrador/internal/utils"
	"github.com/MKhiriev/integrador/models"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

const (
	openAPIVersion     = "3.0.3"
	bearerSchemeName   = "bearerAuth"
	errorEnvelopeName  = "ErrorEnvelope"
	errorEnvelopeRef   = "#/components/schemas/" + errorEnvelopeName
	docsJSONPath       = "/docs/json"
	docsPagePath       = "/docs"
	swaggerUIAssetsURL = "https://unpkg.com/swagger-ui-dist@5"
)

// docsContentSecurityPolicy replaces the default policy on the docs page,
// which loads the Swagger UI assets from a CDN.
const docsContentSecurityPolicy = "default-src 'self';img-src 'self' data: https:;" +
	"script-src 'self' 'unsafe-inline' https://unpkg.com;style-src 'self' 'unsafe-inline' https://unpkg.com"

var docsPage = []byte(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Integrador API</title>
  <link rel="stylesheet" href="` + swaggerUIAssetsURL + `/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="` + swaggerUIAssetsURL + `/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({ url: "` + docsJSONPath + `", dom_id: "#swagger-ui" });
  </script>
</body>
</html>
`)

// docsBuilder turns route declarations into OpenAPI operations.
type docsBuilder struct {
	schemas openapi3.Schemas
}

type operationInfo struct {
	summary string
	tags    []string
	secured bool
	status  int
	input   reflect.Type
	layout  inputLayout
	output  reflect.Type
}

// buildDocs renders the OpenAPI document of routes.
func buildDocs(version string, routes []Route) ([]byte, error) {
	d := &docsBuilder{schemas: openapi3.Schemas{}}

	envelope, err := d.schemaRef(reflect.TypeFor[models.ErrorEnvelope]())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocsGeneration, err)
	}
	d.schemas[errorEnvelopeName] = envelope

	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:       "Integrador API",
			Description: "HTTP entry pipeline of the integrador service.",
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: d.schemas,
			SecuritySchemes: openapi3.SecuritySchemes{
				bearerSchemeName: &openapi3.SecuritySchemeRef{Value: openapi3.NewJWTSecurityScheme()},
			},
		},
	}

	for _, route := range routes {
		op, err := route.describe(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s: %w", ErrDocsGeneration, route.method(), route.path(), err)
		}
		op.OperationID = operationID(route.method(), route.path())

		item := doc.Paths.Value(route.path())
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(route.path(), item)
		}
		item.SetOperation(route.method(), op)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocsGeneration, err)
	}
	return raw, nil
}

func (d *docsBuilder) operation(info operationInfo) (*openapi3.Operation, error) {
	op := openapi3.NewOperation()
	op.Summary = info.summary
	op.Tags = slices.Clone(info.tags)

	if info.layout.params >= 0 {
		params, err := d.parameters(info.input.Field(info.layout.params).Type, openapi3.ParameterInPath)
		if err != nil {
			return nil, err
		}
		op.Parameters = append(op.Parameters, params...)
	}
	if info.layout.query >= 0 {
		params, err := d.parameters(info.input.Field(info.layout.query).Type, openapi3.ParameterInQuery)
		if err != nil {
			return nil, err
		}
		op.Parameters = append(op.Parameters, params...)
	}
	if info.layout.body >= 0 {
		body, err := d.schemaRef(info.input.Field(info.layout.body).Type)
		if err != nil {
			return nil, err
		}
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(body),
		}
	}

	result, err := d.schemaRef(info.output)
	if err != nil {
		return nil, err
	}

	errorResponse := func(description string) *openapi3.ResponseRef {
		return &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription(description).
			WithJSONSchemaRef(openapi3.NewSchemaRef(errorEnvelopeRef, nil))}
	}

	options := []openapi3.NewResponsesOption{
		openapi3.WithStatus(info.status, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription(http.StatusText(info.status)).
			WithJSONSchemaRef(result)}),
		openapi3.WithStatus(http.StatusTooManyRequests, errorResponse("Rate limit exceeded")),
		openapi3.WithStatus(http.StatusInternalServerError, errorResponse("Internal server error")),
	}
	if info.layout.params >= 0 || info.layout.query >= 0 || info.layout.body >= 0 {
		options = append(options, openapi3.WithStatus(http.StatusBadRequest, errorResponse("Validation error")))
	}
	op.Responses = openapi3.NewResponses(options...)

	if info.secured {
		op.Security = openapi3.NewSecurityRequirements().
			With(openapi3.NewSecurityRequirement().Authenticate(bearerSchemeName))
	}

	return op, nil
}

func (d *docsBuilder) parameters(t reflect.Type, in string) (openapi3.Parameters, error) {
	tag := "query"
	if in == openapi3.ParameterInPath {
		tag = "path"
	}

	var params openapi3.Parameters
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}

		schema, err := d.schemaRef(field.Type)
		if err != nil {
			return nil, err
		}

		var param *openapi3.Parameter
		if in == openapi3.ParameterInPath {
			param = openapi3.NewPathParameter(name)
		} else {
			param = openapi3.NewQueryParameter(name).WithRequired(isRequired(field))
		}
		param.Schema = schema
		params = append(params, &openapi3.ParameterRef{Value: param})
	}
	return params, nil
}

func (d *docsBuilder) schemaRef(t reflect.Type) (*openapi3.SchemaRef, error) {
	if t.Kind() == reflect.Interface {
		return openapi3.NewSchema().NewRef(), nil
	}
	return openapi3gen.NewSchemaRefForValue(reflect.New(t).Elem().Interface(), nil)
}

func isRequired(field reflect.StructField) bool {
	return slices.Contains(strings.Split(field.Tag.Get("validate"), ","), "required")
}

// operationID turns "GET /items/{id}" into "getItemsId".
func operationID(method, path string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, part := range strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '{' || r == '}' || r == '-' || r == '_'
	}) {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	if b.Len() == len(method) {
		b.WriteString("Root")
	}
	return b.String()
}

func (h *Handler) serveDocsJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", utils.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.docs); err != nil {
		h.fail(w, r, err)
	}
}

func (h *Handler) serveDocsPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Security-Policy", docsContentSecurityPolicy)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(docsPage); err != nil {
		h.fail(w, r, err)
	}
}
