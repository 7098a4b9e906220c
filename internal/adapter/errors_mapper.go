package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/integrador/models"
	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := describeBody(resp.Body())

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusTooManyRequests:
		if retry := resp.Header().Get("Retry-After"); retry != "" {
			return fmt.Errorf("%w: %s (retry after %ss)", ErrRateLimited, body, retry)
		}
		return fmt.Errorf("%w: %s", ErrRateLimited, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}

// describeBody renders an error envelope as "message: error", falling back
// to the trimmed raw body when it is not one.
func describeBody(raw []byte) string {
	var envelope models.ErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Message == "" {
		return strings.TrimSpace(string(raw))
	}
	if envelope.Error != nil && *envelope.Error != "" {
		return envelope.Message + ": " + *envelope.Error
	}
	return envelope.Message
}
