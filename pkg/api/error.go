package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
)

// APIError is a non-2xx reply from the video service
type APIError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("[%d] %s: %s", e.StatusCode, e.Code, e.Message)
	if len(e.Details) > 0 {
		msg += fmt.Sprintf(" (details: %v)", e.Details)
	}
	return msg
}

// CheckResponse turns a failed request or a non-2xx reply into an error
func CheckResponse(resp *resty.Response, err error) error {
	switch {
	case err != nil:
		return err
	case resp.IsSuccess():
		return nil
	default:
		return responseError(resp)
	}
}

// responseError decodes the service's error envelope. Bodies that are not
// an envelope keep their raw text as the message.
func responseError(resp *resty.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode(), Code: "unknown_error"}

	var body ErrorResponse
	if json.Unmarshal(resp.Body(), &body) == nil && body.Code != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
		apiErr.Details = body.Details
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(resp.Body()))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(apiErr.StatusCode)
	}
	return apiErr
}

// statusOf reports the HTTP status carried by err, or 0 when err did not
// come from a service reply.
func statusOf(err error) int {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return 0
	}
	return apiErr.StatusCode
}

// IsUnauthorized reports a missing or rejected token
func IsUnauthorized(err error) bool { return statusOf(err) == http.StatusUnauthorized }

// IsForbidden reports a video the caller may not see
func IsForbidden(err error) bool { return statusOf(err) == http.StatusForbidden }

// IsNotFound reports a video that does not exist
func IsNotFound(err error) bool { return statusOf(err) == http.StatusNotFound }

// IsServerError reports a 5xx reply
func IsServerError(err error) bool { return statusOf(err) >= http.StatusInternalServerError }
