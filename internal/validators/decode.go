package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/MKhiriev/integrador/internal/utils"
	"github.com/MKhiriev/integrador/models"
	"github.com/gorilla/schema"
)

// Decoder coerces string-valued request parts (query strings, route
// parameters) into typed struct fields.
type Decoder struct {
	part    Context
	decoder *schema.Decoder
}

// NewQueryDecoder returns a Decoder reading `query` struct tags.
func NewQueryDecoder() *Decoder {
	return newDecoder(ContextQuerystring, "query")
}

// NewParamsDecoder returns a Decoder reading `path` struct tags.
func NewParamsDecoder() *Decoder {
	return newDecoder(ContextParams, "path")
}

func newDecoder(part Context, tag string) *Decoder {
	decoder := schema.NewDecoder()
	decoder.SetAliasTag(tag)
	decoder.IgnoreUnknownKeys(true)

	return &Decoder{part: part, decoder: decoder}
}

// Decode fills dst, a pointer to a struct, from values. Values that cannot
// be converted to their field type are reported as a *RequestError.
func (d *Decoder) Decode(dst any, values map[string][]string) error {
	err := d.decoder.Decode(dst, values)
	if err == nil {
		return nil
	}

	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return fmt.Errorf("error decoding %s: %w", d.part, err)
	}

	keys := make([]string, 0, len(multi))
	for key := range multi {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	issues := make([]models.ValidationIssue, 0, len(keys))
	for _, key := range keys {
		issues = append(issues, decodeIssue(key, multi[key]))
	}

	return NewRequestError(d.part, issues)
}

func decodeIssue(key string, err error) models.ValidationIssue {
	path := "/" + strings.ReplaceAll(key, ".", "/")

	var conversion schema.ConversionError
	if errors.As(err, &conversion) && conversion.Type != nil {
		return models.ValidationIssue{
			InstancePath: path,
			Keyword:      "type",
			Message:      fmt.Sprintf("Expected %s, received string", typeNoun(conversion.Type)),
			Params:       map[string]any{"type": typeNoun(conversion.Type)},
		}
	}

	var empty schema.EmptyFieldError
	if errors.As(err, &empty) {
		return models.ValidationIssue{
			InstancePath: path,
			Keyword:      "required",
			Message:      "Required",
			Params:       map[string]any{"missingProperty": key},
		}
	}

	return models.ValidationIssue{InstancePath: path, Keyword: "type", Message: "Invalid input"}
}

// NewBodyDecodeError converts a JSON body decoding failure into a
// *RequestError for the body part. Errors that are not about the payload
// itself, such as an oversized or unreadable body, are returned unchanged.
func NewBodyDecodeError(err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.Is(err, utils.ErrEmptyBody):
		return NewRequestError(ContextBody, []models.ValidationIssue{{
			Keyword: "required",
			Message: "Required",
		}})
	case errors.As(err, &typeErr):
		issue := models.ValidationIssue{
			Keyword: "type",
			Message: fmt.Sprintf("Expected %s, received %s", typeNoun(typeErr.Type), typeErr.Value),
			Params:  map[string]any{"type": typeNoun(typeErr.Type)},
		}
		if typeErr.Field != "" {
			issue.InstancePath = "/" + strings.ReplaceAll(typeErr.Field, ".", "/")
		}
		return NewRequestError(ContextBody, []models.ValidationIssue{issue})
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return NewRequestError(ContextBody, []models.ValidationIssue{{
			Keyword: "parse",
			Message: "Invalid JSON",
		}})
	default:
		return err
	}
}
