package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/utafrali/estatehub/pkg/errors"
)

const maxErrorBody = 64 << 10

// upstreamError accepts the error body shapes common among JSON APIs:
// {"error": "msg"}, {"message": "msg"} and {"error": {"message": "msg"}}.
type upstreamError struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

func (e upstreamError) text() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Error) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(e.Error, &s) == nil {
		return s
	}
	var nested struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(e.Error, &nested) == nil {
		return nested.Message
	}
	return ""
}

// ParseResponseError consumes and closes the body of a non-2xx response
// from upstream and translates it into an error.
//
// Statuses that describe the caller's request (400, 404, 422) become
// AppErrors the handler can surface. Rate limiting and 503 become
// Unavailable. Everything else, including the upstream rejecting our own
// credentials, is returned as a plain error so it surfaces as a 500.
func ParseResponseError(resp *http.Response, upstream string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("%s returned status %d (read body: %w)", upstream, resp.StatusCode, err)
	}

	msg := strings.TrimSpace(string(body))
	var parsed upstreamError
	if json.Unmarshal(body, &parsed) == nil {
		if t := parsed.text(); t != "" {
			msg = t
		}
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperrors.NotFound(upstream, "result")
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.InvalidInput(fmt.Sprintf("%s: %s", upstream, msg))
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return apperrors.Unavailable(fmt.Sprintf("%s is temporarily unavailable", upstream))
	default:
		return fmt.Errorf("%s returned status %d: %s", upstream, resp.StatusCode, msg)
	}
}
