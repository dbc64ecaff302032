package nerveshub

import (
	"encoding/base64"
	"fmt"
	"os"
	"time"
)

// DefaultBaseURL is the public hosted NervesHub API.
const DefaultBaseURL = "https://api.nerves-hub.org"

// Environment variables read by ConfigFromEnv.
const (
	EnvOrganization = "NERVES_HUB_ORG"
	EnvProduct      = "NERVES_HUB_PRODUCT"
	EnvCert         = "NERVES_HUB_CERT"
	EnvKey          = "NERVES_HUB_KEY"
	EnvToken        = "NERVES_HUB_TOKEN"
	EnvBaseURL      = "NERVES_HUB_BASE_URL"
	EnvCACert       = "NERVES_HUB_CA_CERT"
)

// DefaultHTTPTimeout bounds each round trip when Config.HTTPTimeout is zero.
const DefaultHTTPTimeout = 30 * time.Second

// Config represents client configuration for building a nerveshub.Client.
//
// # Authentication
//
// Credential must hold exactly one form: CertificateCredential (a PEM client
// certificate and private key, sent via mutual TLS) or TokenCredential (an
// opaque bearer token sent as "Authorization: Bearer <token>"). The form is
// validated once at construction; a misconfigured client is never created and
// no network traffic is issued for it.
//
// # Trust
//
// CACert optionally holds one or more PEM certificate blocks that replace the
// system trust store when verifying the server, which self-hosted deployments
// with a private trust root need. When nil, the system store is used. CACert,
// BaseURL, and Credential are independent: any combination is accepted as
// long as exactly one credential form is present.
//
// # Timeouts
//
// Each call is one round trip bounded by HTTPTimeout (DefaultHTTPTimeout when
// zero). Cancellation and deadlines also propagate through the context passed
// to client methods. There are no retries; a timeout surfaces to the caller
// as a *TransportError.
type Config struct {
	// BaseURL is the API host (default DefaultBaseURL). nhclient.New
	// normalizes this value by trimming a trailing slash and adding
	// "https://" if no scheme is present.
	BaseURL string
	// Organization is the tenant-scoping organization name. Required.
	Organization string
	// Product is the product name within the organization. Required.
	Product string
	// Credential is the authentication material. Required, exactly one form.
	Credential Credential
	// CACert: optional PEM block(s) replacing the system trust store.
	CACert []byte

	// HTTPTimeout bounds each round trip. Zero means DefaultHTTPTimeout.
	HTTPTimeout time.Duration
	// UserAgent overrides the default User-Agent header sent by the client.
	UserAgent string
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
}

// Validate checks the invariants that every constructor enforces:
// organization and product non-empty, exactly one valid credential form.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	if c.Organization == "" {
		return ErrMissingOrganization
	}

	if c.Product == "" {
		return ErrMissingProduct
	}

	if c.Credential == nil {
		return ErrNoCredential
	}

	return c.Credential.validate()
}

// ConfigFromEnv builds a Config from the NERVES_HUB_* environment variables:
//
//   - NERVES_HUB_ORG - organization name, required
//   - NERVES_HUB_PRODUCT - product name, required
//   - NERVES_HUB_CERT / NERVES_HUB_KEY - PEM client certificate and key
//   - NERVES_HUB_TOKEN - bearer token, mutually exclusive with CERT/KEY
//   - NERVES_HUB_BASE_URL - optional, defaults to DefaultBaseURL
//   - NERVES_HUB_CA_CERT - optional PEM CA certificate(s) for BASE_URL
//
// CERT, KEY, and CA_CERT accept either raw PEM or base64-encoded PEM; strict
// base64 decoding is attempted first and the raw value is used when it fails.
// The returned Config is fully validated; no network call is made.
func ConfigFromEnv() (*Config, error) {
	org := os.Getenv(EnvOrganization)
	if org == "" {
		return nil, fmt.Errorf("%w (set %s)", ErrMissingOrganization, EnvOrganization)
	}

	product := os.Getenv(EnvProduct)
	if product == "" {
		return nil, fmt.Errorf("%w (set %s)", ErrMissingProduct, EnvProduct)
	}

	cert := os.Getenv(EnvCert)
	key := os.Getenv(EnvKey)
	token := os.Getenv(EnvToken)

	certSet := cert != "" || key != ""
	tokenSet := token != ""

	var credential Credential

	switch {
	case certSet && tokenSet:
		return nil, fmt.Errorf("%w (unset %s or %s/%s)", ErrAmbiguousCredential, EnvToken, EnvCert, EnvKey)
	case !certSet && !tokenSet:
		return nil, fmt.Errorf("%w (set %s/%s or %s)", ErrNoCredential, EnvCert, EnvKey, EnvToken)
	case certSet:
		if cert == "" || key == "" {
			return nil, fmt.Errorf("%w (set both %s and %s)", ErrIncompleteCertificate, EnvCert, EnvKey)
		}

		credential = CertificateCredential{
			CertPEM: decodePEMValue(cert),
			KeyPEM:  decodePEMValue(key),
		}
	default:
		credential = TokenCredential{Token: token}
	}

	config := &Config{
		BaseURL:      os.Getenv(EnvBaseURL),
		Organization: org,
		Product:      product,
		Credential:   credential,
	}

	if caCert := os.Getenv(EnvCACert); caCert != "" {
		config.CACert = decodePEMValue(caCert)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// decodePEMValue returns the strict base64 decoding of value, or the raw
// bytes when value is not base64. Raw PEM always falls through because the
// "-----BEGIN" header is outside the base64 alphabet.
func decodePEMValue(value string) []byte {
	decoded, err := base64.StdEncoding.Strict().DecodeString(value)
	if err != nil {
		return []byte(value)
	}

	return decoded
}
