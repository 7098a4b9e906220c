package validators

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/MKhiriev/integrador/internal/utils"
	"github.com/MKhiriev/integrador/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageQuery struct {
	Page   int    `query:"page"`
	Search string `query:"q"`
	Active bool   `query:"active"`
}

type userParams struct {
	ID int64 `path:"id"`
}

func TestQueryDecoder_Coerces(t *testing.T) {
	var q pageQuery

	err := NewQueryDecoder().Decode(&q, map[string][]string{
		"page":    {"3"},
		"q":       {"ana"},
		"active":  {"true"},
		"unknown": {"ignored"},
	})

	require.NoError(t, err)
	assert.Equal(t, pageQuery{Page: 3, Search: "ana", Active: true}, q)
}

func TestQueryDecoder_ConversionFailure(t *testing.T) {
	var q pageQuery

	err := NewQueryDecoder().Decode(&q, map[string][]string{"page": {"three"}})

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, ContextQuerystring, reqErr.Context)
	assert.Equal(t, "querystring/page Expected number, received string", reqErr.Error())
	assert.Equal(t, "type", reqErr.ValidationIssues()[0].Keyword)
}

func TestParamsDecoder(t *testing.T) {
	var p userParams

	require.NoError(t, NewParamsDecoder().Decode(&p, map[string][]string{"id": {"42"}}))
	assert.Equal(t, int64(42), p.ID)

	err := NewParamsDecoder().Decode(&p, map[string][]string{"id": {"x"}})
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, ContextParams, reqErr.Context)
	assert.Equal(t, "/id", reqErr.ValidationIssues()[0].InstancePath)
}

func TestDecoder_NonPointerIsInternal(t *testing.T) {
	err := NewQueryDecoder().Decode(pageQuery{}, map[string][]string{"page": {"1"}})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRequestValidation)
}

func TestNewBodyDecodeError(t *testing.T) {
	var typed struct {
		Age int `json:"age"`
	}
	typeErr := json.Unmarshal([]byte(`{"age":"old"}`), &typed)
	syntaxErr := json.Unmarshal([]byte(`{"age":`), &typed)

	tests := []struct {
		name      string
		err       error
		wantIssue models.ValidationIssue
	}{
		{
			name:      "empty body",
			err:       utils.ErrEmptyBody,
			wantIssue: models.ValidationIssue{Keyword: "required", Message: "Required"},
		},
		{
			name: "wrong type",
			err:  typeErr,
			wantIssue: models.ValidationIssue{
				InstancePath: "/age",
				Keyword:      "type",
				Message:      "Expected number, received string",
				Params:       map[string]any{"type": "number"},
			},
		},
		{
			name:      "syntax",
			err:       syntaxErr,
			wantIssue: models.ValidationIssue{Keyword: "parse", Message: "Invalid JSON"},
		},
		{
			name:      "wrapped unexpected EOF",
			err:       errors.Join(errors.New("read"), io.ErrUnexpectedEOF),
			wantIssue: models.ValidationIssue{Keyword: "parse", Message: "Invalid JSON"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reqErr *RequestError
			require.True(t, errors.As(NewBodyDecodeError(tt.err), &reqErr))
			assert.Equal(t, ContextBody, reqErr.Context)
			assert.Equal(t, []models.ValidationIssue{tt.wantIssue}, reqErr.ValidationIssues())
		})
	}
}

func TestNewBodyDecodeError_PassesThroughTransportErrors(t *testing.T) {
	tooLarge := &http.MaxBytesError{Limit: 10}

	err := NewBodyDecodeError(tooLarge)

	assert.Same(t, tooLarge, err)
	assert.NotErrorIs(t, err, ErrRequestValidation)
}
