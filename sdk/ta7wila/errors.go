package ta7wila

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FallbackErrorMessage is shown when an error body carries no recognizable
// message in any known shape.
const FallbackErrorMessage = "something went wrong, please try again"

// NoResponseMessage is shown when the request never reached the server.
const NoResponseMessage = "no response received"

// RequestError wraps a transport-level failure: the request never produced
// an HTTP response.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return NoResponseMessage
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response from the server with its decoded message.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d message=%s", e.StatusCode, e.Message)
}

// IsNoResponse reports whether err represents a request that never reached
// the server.
func IsNoResponse(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

// DisplayMessage maps any client error to the single string a user should
// see. Transport failures and application errors produce distinct messages;
// anything else falls back to the raw error text.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsNoResponse(err) {
		return NoResponseMessage
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// errorBody covers the structured shapes a Ta7wila backend may answer with.
// The plain-string shape is tried separately before this one.
type errorBody struct {
	ErrorMessage string `json:"errorMessage"`
	Message      string `json:"message"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
	Result map[string]string `json:"result"`
}

// DecodeErrorMessage extracts a display message from an error response body.
// Shapes are tried in a fixed priority order: a bare JSON string, an
// errorMessage field, a message field (top-level or nested under error),
// then the values of a result validation map joined with ", ". Anything
// unrecognized yields the generic fallback.
func DecodeErrorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return FallbackErrorMessage
	}

	var plain string
	if err := json.Unmarshal(body, &plain); err == nil && plain != "" {
		return plain
	}

	var decoded errorBody
	if err := json.Unmarshal(body, &decoded); err != nil {
		return FallbackErrorMessage
	}

	if decoded.ErrorMessage != "" {
		return decoded.ErrorMessage
	}
	if decoded.Message != "" {
		return decoded.Message
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return decoded.Error.Message
	}
	if len(decoded.Result) > 0 {
		keys := make([]string, 0, len(decoded.Result))
		for k := range decoded.Result {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		values := make([]string, 0, len(keys))
		for _, k := range keys {
			values = append(values, decoded.Result[k])
		}
		return strings.Join(values, ", ")
	}

	return FallbackErrorMessage
}
