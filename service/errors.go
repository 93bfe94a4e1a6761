package service

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	MessageFillAllFields = "Please fill in all fields."
	MessageUnknown       = "An unknown error occurred."
)

// ValidationError is returned when required search fields are empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Missing) == 0 {
		return "please fill in all fields"
	}
	return fmt.Sprintf("please fill in all fields (missing: %s)", strings.Join(e.Missing, ", "))
}

// APIError is returned when the API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	StatusText string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "seat plan api error"
	}
	if e.Body == "" {
		return fmt.Sprintf("seat plan api error: %s", e.Status)
	}
	return fmt.Sprintf("seat plan api error: %s: %s", e.Status, e.Body)
}

// TransportError wraps a failure that happened before a response was read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e == nil || e.Err == nil {
		return "seat plan request failed"
	}
	return "seat plan request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Message is the transport failure without the method and URL prefix.
func (e *TransportError) Message() string {
	if e == nil || e.Err == nil {
		return "request failed"
	}
	var urlErr *url.Error
	if errors.As(e.Err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return e.Err.Error()
}

// MalformedPlanError is returned when a 2xx body does not match the seat plan schema.
type MalformedPlanError struct {
	Problems []string
}

func (e *MalformedPlanError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "malformed seat plan"
	}
	return "malformed seat plan: " + strings.Join(e.Problems, "; ")
}

// IsValidation reports whether err is a missing-fields error.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// ErrorMessage converts any search failure into the single line shown to the user.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		vErr    *ValidationError
		apiErr  *APIError
		tErr    *TransportError
		planErr *MalformedPlanError
	)
	switch {
	case errors.As(err, &vErr):
		return MessageFillAllFields
	case errors.As(err, &apiErr):
		text := apiErr.StatusText
		if text == "" {
			text = fmt.Sprintf("request failed with status code %d", apiErr.StatusCode)
		}
		return "API error: " + text
	case errors.As(err, &tErr):
		return "API error: " + tErr.Message()
	case errors.As(err, &planErr):
		if len(planErr.Problems) == 0 {
			return "API error: malformed seat plan"
		}
		return fmt.Sprintf("API error: malformed seat plan (%s)", planErr.Problems[0])
	default:
		return MessageUnknown
	}
}
