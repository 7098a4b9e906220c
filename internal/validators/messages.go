package validators

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// message renders a field error in the wording clients already receive from
// the service.
func message(fe validator.FieldError) string {
	noun := kindNoun(fe.Kind())

	switch fe.Tag() {
	case "required", "required_if", "required_unless", "required_with", "required_without":
		return "Required"
	case "email":
		return "Invalid email"
	case "url", "http_url", "uri":
		return "Invalid url"
	case "uuid", "uuid4", "uuid7":
		return "Invalid uuid"
	case "datetime":
		return "Invalid datetime"
	case "oneof":
		options := strings.Fields(fe.Param())
		return fmt.Sprintf("Invalid enum value. Expected '%s'", strings.Join(options, "' | '"))
	case "min", "gte":
		return lowerBound(noun, fe.Param(), true)
	case "gt":
		return lowerBound(noun, fe.Param(), false)
	case "max", "lte":
		return upperBound(noun, fe.Param(), true)
	case "lt":
		return upperBound(noun, fe.Param(), false)
	case "len", "eq":
		if noun == "Number" {
			return fmt.Sprintf("Number must be exactly %s", fe.Param())
		}
		return fmt.Sprintf("%s must contain exactly %s %s", noun, fe.Param(), unit(noun))
	default:
		return fmt.Sprintf("Invalid input: failed on '%s'", fe.Tag())
	}
}

func lowerBound(noun, limit string, inclusive bool) string {
	if noun == "Number" {
		if inclusive {
			return fmt.Sprintf("Number must be greater than or equal to %s", limit)
		}
		return fmt.Sprintf("Number must be greater than %s", limit)
	}
	qualifier := "at least"
	if !inclusive {
		qualifier = "more than"
	}
	return fmt.Sprintf("%s must contain %s %s %s", noun, qualifier, limit, unit(noun))
}

func upperBound(noun, limit string, inclusive bool) string {
	if noun == "Number" {
		if inclusive {
			return fmt.Sprintf("Number must be less than or equal to %s", limit)
		}
		return fmt.Sprintf("Number must be less than %s", limit)
	}
	qualifier := "at most"
	if !inclusive {
		qualifier = "fewer than"
	}
	return fmt.Sprintf("%s must contain %s %s %s", noun, qualifier, limit, unit(noun))
}

func kindNoun(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return "String"
	case reflect.Slice, reflect.Array:
		return "Array"
	case reflect.Map:
		return "Object"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "Number"
	default:
		return "Value"
	}
}

func unit(noun string) string {
	switch noun {
	case "String":
		return "character(s)"
	case "Object":
		return "key(s)"
	default:
		return "element(s)"
	}
}

// typeNoun names the JSON type a Go type is decoded from.
func typeNoun(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch kindNoun(t.Kind()) {
	case "String":
		return "string"
	case "Number":
		return "number"
	case "Array":
		return "array"
	case "Object":
		return "object"
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Struct:
		return "object"
	default:
		return t.String()
	}
}
