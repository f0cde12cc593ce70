package kosisapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// StatusError is returned when KOSIS answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected HTTP status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("unexpected HTTP status %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// APIError is the error object KOSIS returns with a 200 status,
// e.g. {"err":"10","errMsg":"인증KEY 누락"} for a missing key.
type APIError struct {
	Code    string `json:"err"`
	Message string `json:"errMsg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("KOSIS error %s: %s", e.Code, e.Message)
}

// ParseAPIError reports whether body is a KOSIS error object
func ParseAPIError(body []byte) (*APIError, bool) {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return nil, false
	}
	if apiErr.Code == "" {
		return nil, false
	}
	return &apiErr, true
}
