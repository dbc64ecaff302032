package nerveshub

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name: "field errors",
			err: &APIError{
				StatusCode: 422,
				Errors:     map[string][]string{"identifier": {"has already been taken"}},
			},
			expected: "identifier has already been taken (status 422)",
		},
		{
			name:     "no field errors",
			err:      &APIError{StatusCode: 401},
			expected: "Unauthorized (status 401)",
		},
		{
			name:     "empty message list",
			err:      &APIError{StatusCode: 500, Errors: map[string][]string{"detail": {}}},
			expected: "Internal Server Error (status 500)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAPIError_FirstMessage(t *testing.T) {
	t.Run("fields visited in sorted order", func(t *testing.T) {
		err := &APIError{
			StatusCode: 422,
			Errors: map[string][]string{
				"version":    {"must be semantic"},
				"identifier": {"has already been taken", "is too long"},
			},
		}

		assert.Equal(t, "identifier has already been taken", err.FirstMessage())
	})

	t.Run("no errors", func(t *testing.T) {
		err := &APIError{StatusCode: 404}
		assert.Empty(t, err.FirstMessage())
	})
}

func TestParseAPIError(t *testing.T) {
	t.Run("error envelope", func(t *testing.T) {
		body := []byte(`{"errors": {"identifier": ["has already been taken"]}}`)

		apiErr := ParseAPIError(422, body)
		require.NotNil(t, apiErr)
		assert.Equal(t, 422, apiErr.StatusCode)
		assert.Equal(t, body, apiErr.Body)
		assert.Equal(t, []string{"has already been taken"}, apiErr.Errors["identifier"])
	})

	t.Run("non-envelope body keeps raw bytes", func(t *testing.T) {
		body := []byte(`upstream proxy error`)

		apiErr := ParseAPIError(502, body)
		require.NotNil(t, apiErr)
		assert.Equal(t, 502, apiErr.StatusCode)
		assert.Equal(t, body, apiErr.Body)
		assert.Empty(t, apiErr.Errors)
	})

	t.Run("empty body", func(t *testing.T) {
		apiErr := ParseAPIError(401, nil)
		require.NotNil(t, apiErr)
		assert.Equal(t, 401, apiErr.StatusCode)
		assert.Empty(t, apiErr.Errors)
	})
}

func TestTransportError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	transportErr := &TransportError{
		Op:  "GET",
		URL: "https://api.nerves-hub.org/users/me",
		Err: cause,
	}

	assert.Equal(t, "transport error: GET https://api.nerves-hub.org/users/me: dial tcp: connection refused", transportErr.Error())
	assert.Equal(t, cause, transportErr.Unwrap())
	assert.True(t, errors.Is(fmt.Errorf("getting user: %w", transportErr), cause))
}

func TestIsConfigurationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "missing organization", err: ErrMissingOrganization, expected: true},
		{name: "missing product", err: ErrMissingProduct, expected: true},
		{name: "no credential", err: ErrNoCredential, expected: true},
		{name: "ambiguous credential", err: ErrAmbiguousCredential, expected: true},
		{name: "incomplete certificate", err: ErrIncompleteCertificate, expected: true},
		{name: "empty token", err: ErrEmptyToken, expected: true},
		{name: "invalid certificate", err: ErrInvalidCertificate, expected: true},
		{name: "invalid CA cert", err: ErrInvalidCACert, expected: true},
		{name: "wrapped with context", err: fmt.Errorf("building client: %w", ErrMissingProduct), expected: true},
		{name: "API error", err: &APIError{StatusCode: 401}, expected: false},
		{name: "transport error", err: &TransportError{Err: errors.New("refused")}, expected: false},
		{name: "nil error", err: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsConfigurationError(tt.err))
		})
	}
}

func TestIsTransportError(t *testing.T) {
	transportErr := &TransportError{Op: "GET", URL: "https://example.com", Err: errors.New("timeout")}

	assert.True(t, IsTransportError(transportErr))
	assert.True(t, IsTransportError(fmt.Errorf("listing devices: %w", transportErr)))
	assert.False(t, IsTransportError(&APIError{StatusCode: 500}))
	assert.False(t, IsTransportError(nil))
}

func TestStatusHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		check    func(error) bool
		expected bool
	}{
		{name: "not found", err: &APIError{StatusCode: 404}, check: IsNotFound, expected: true},
		{name: "not found wrapped", err: fmt.Errorf("getting device: %w", &APIError{StatusCode: 404}), check: IsNotFound, expected: true},
		{name: "not found on 401", err: &APIError{StatusCode: 401}, check: IsNotFound, expected: false},
		{name: "unauthorized", err: &APIError{StatusCode: 401}, check: IsUnauthorized, expected: true},
		{name: "unauthorized on other error", err: errors.New("some error"), check: IsUnauthorized, expected: false},
		{name: "forbidden", err: &APIError{StatusCode: 403}, check: IsForbidden, expected: true},
		{name: "forbidden on 404", err: &APIError{StatusCode: 404}, check: IsForbidden, expected: false},
		{name: "unprocessable", err: &APIError{StatusCode: 422}, check: IsUnprocessable, expected: true},
		{name: "unprocessable on nil", err: nil, check: IsUnprocessable, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.check(tt.err))
		})
	}
}
