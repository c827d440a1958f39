package component

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

var (
	ErrUnauthorized      = errors.New("component runtime rejected the token")
	ErrComponentNotFound = errors.New("component not found")
)

// ErrorResponse is the error body of the component runtime.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIError is a non-2xx answer of the component runtime.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("component runtime error (status %d, %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("component runtime error (status %d): %s", e.Status, e.Message)
}

// Unwrap maps well-known statuses to sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrComponentNotFound
	}
	return nil
}

// Temporary reports whether retrying may succeed.
func (e *APIError) Temporary() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

func handleError(resp *resty.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode(), Message: resp.Status()}
	if body, ok := resp.Error().(*ErrorResponse); ok && body != nil && body.Message != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	return apiErr
}
