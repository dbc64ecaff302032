// Package auth prepares NervesHub credential material for the HTTP transport:
// bearer tokens for header authentication and PEM certificate material for
// mutual TLS.
package auth

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"

	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
)

// TokenProvider supplies the bearer token attached to outgoing requests. A
// nil provider on the transport means the request carries no Authorization
// header (certificate credentials authenticate at the TLS layer instead).
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// StaticTokenProvider returns a fixed token. NervesHub tokens are opaque and
// never refreshed by the client.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider for a fixed token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// GetToken implements TokenProvider.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	return p.token, nil
}

// ClientCertificate assembles the mutual-TLS keypair from PEM material.
func ClientCertificate(credential nerveshub.CertificateCredential) (tls.Certificate, error) {
	certificate, err := tls.X509KeyPair(credential.CertPEM, credential.KeyPEM)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("%w: %v", nerveshub.ErrInvalidCertificate, err)
	}

	return certificate, nil
}

// CertPool builds an x509 pool from one or more PEM certificate blocks.
func CertPool(caCert []byte) (*x509.CertPool, error) {
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCert) {
		return nil, nerveshub.ErrInvalidCACert
	}

	return pool, nil
}

// TLSConfig builds the client TLS configuration for a validated Config: the
// client keypair when the credential is certificate-based, and a replacement
// root pool when a custom CA is configured. A nil RootCAs falls back to the
// system trust store.
func TLSConfig(config *nerveshub.Config) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if credential, ok := config.Credential.(nerveshub.CertificateCredential); ok {
		certificate, err := ClientCertificate(credential)
		if err != nil {
			return nil, err
		}

		tlsConfig.Certificates = []tls.Certificate{certificate}
	}

	if len(config.CACert) > 0 {
		pool, err := CertPool(config.CACert)
		if err != nil {
			return nil, err
		}

		tlsConfig.RootCAs = pool
	}

	return tlsConfig, nil
}
