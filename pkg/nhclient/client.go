// Package nhclient provides the main entry point for creating NervesHub API clients
package nhclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nerves-hub/nerveshub-go/internal/client"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
)

// New creates a new NervesHub API client. The configuration is validated
// before any client state is built, so a misconfigured client is reported
// here rather than on the first request. New performs no network I/O.
func New(config *nerveshub.Config) (nerveshub.Client, error) {
	if config == nil {
		return nil, nerveshub.ErrConfigRequired
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := normalizeBaseURL(config.BaseURL)
	if err != nil {
		return nil, err
	}

	config.BaseURL = baseURL

	// Use the internal client implementation
	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// normalizeBaseURL applies the default, adds the https scheme when none is
// given, checks a host is present, and trims a trailing slash. Any path
// component is preserved for servers mounted behind a prefix.
func normalizeBaseURL(baseURL string) (string, error) {
	if baseURL == "" {
		return nerveshub.DefaultBaseURL, nil
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", nerveshub.ErrNoHostInURL, baseURL)
	}

	return strings.TrimSuffix(baseURL, "/"), nil
}

// NewFromEnv creates a new client configured entirely from NERVES_HUB_*
// environment variables. See nerveshub.ConfigFromEnv for the variables read
// and how credentials are resolved.
func NewFromEnv() (nerveshub.Client, error) {
	config, err := nerveshub.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return New(config)
}

// NewWithToken creates a new client for the given organization/product pair
// using bearer-token authentication.
func NewWithToken(organization, product, token string) (nerveshub.Client, error) {
	return New(&nerveshub.Config{
		Organization: organization,
		Product:      product,
		Credential:   nerveshub.TokenCredential{Token: token},
	})
}

// NewWithCertificate creates a new client for the given organization/product
// pair authenticating with a PEM client certificate and key over mutual TLS.
func NewWithCertificate(organization, product string, certPEM, keyPEM []byte) (nerveshub.Client, error) {
	return New(&nerveshub.Config{
		Organization: organization,
		Product:      product,
		Credential: nerveshub.CertificateCredential{
			CertPEM: certPEM,
			KeyPEM:  keyPEM,
		},
	})
}
