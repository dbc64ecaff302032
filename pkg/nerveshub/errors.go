package nerveshub

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// ErrInvalidConfiguration is the root of all configuration errors. Every
// construction-time failure wraps it, so callers can branch on the whole class
// with errors.Is or on a specific cause with the sentinels below.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Static configuration errors. Each wraps ErrInvalidConfiguration.
var (
	ErrConfigRequired        = fmt.Errorf("%w: config is required", ErrInvalidConfiguration)
	ErrMissingOrganization   = fmt.Errorf("%w: organization is required", ErrInvalidConfiguration)
	ErrMissingProduct        = fmt.Errorf("%w: product is required", ErrInvalidConfiguration)
	ErrNoCredential          = fmt.Errorf("%w: no credential provided, supply a certificate/key pair or a token", ErrInvalidConfiguration)
	ErrAmbiguousCredential   = fmt.Errorf("%w: certificate/key pair and token are mutually exclusive", ErrInvalidConfiguration)
	ErrIncompleteCertificate = fmt.Errorf("%w: certificate credential requires both certificate and private key", ErrInvalidConfiguration)
	ErrEmptyToken            = fmt.Errorf("%w: token credential requires a non-empty token", ErrInvalidConfiguration)
	ErrInvalidCertificate    = fmt.Errorf("%w: client certificate or private key is not valid PEM", ErrInvalidConfiguration)
	ErrInvalidCACert         = fmt.Errorf("%w: CA certificate is not valid PEM", ErrInvalidConfiguration)
	ErrNoHostInURL           = fmt.Errorf("%w: no host specified in URL", ErrInvalidConfiguration)
)

// APIError represents a non-2xx response from the NervesHub API. It carries
// the HTTP status code, the raw response body, and the field-error map parsed
// from the standard {"errors": {"field": ["message", ...]}} envelope when the
// body has that shape.
type APIError struct {
	StatusCode int                 `json:"status_code"      yaml:"status_code"`
	Errors     map[string][]string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Body       []byte              `json:"-"                yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if msg := e.FirstMessage(); msg != "" {
		return fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}

	return fmt.Sprintf("%s (status %d)", http.StatusText(e.StatusCode), e.StatusCode)
}

// FirstMessage returns the first field error as "field message", or "" when
// the response carried no parseable field errors. Fields are visited in
// sorted order so the result is deterministic.
func (e *APIError) FirstMessage() string {
	if len(e.Errors) == 0 {
		return ""
	}

	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	for _, field := range fields {
		if len(e.Errors[field]) > 0 {
			return fmt.Sprintf("%s %s", field, e.Errors[field][0])
		}
	}

	return ""
}

// errorEnvelope is the error body shape returned by the API.
type errorEnvelope struct {
	Errors map[string][]string `json:"errors"`
}

// ParseAPIError builds an APIError from a non-2xx response. The body is kept
// verbatim; the field-error map is populated only when the body parses as the
// standard error envelope.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       body,
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Errors = envelope.Errors
	}

	return apiErr
}

// TransportError represents a network-level failure (DNS, TCP, TLS handshake,
// or timeout) that prevented an HTTP response from arriving.
type TransportError struct {
	Op  string
	URL string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsConfigurationError checks if the error is a construction-time
// configuration error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsTransportError checks if the error is a network-level failure.
func IsTransportError(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}

// IsNotFound checks if the error is a 404 API error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 API error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 API error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsUnprocessable checks if the error is a 422 API error.
func IsUnprocessable(err error) bool {
	return hasStatus(err, http.StatusUnprocessableEntity)
}

func hasStatus(err error, statusCode int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == statusCode
	}

	return false
}
