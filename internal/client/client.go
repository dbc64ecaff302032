// Package client provides the internal implementation of the NervesHub API client.
package client

import (
	"crypto/tls"
	"fmt"

	"github.com/nerves-hub/nerveshub-go/internal/auth"
	nhhttp "github.com/nerves-hub/nerveshub-go/internal/http"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
)

// Client implements the nerveshub.Client interface.
type Client struct {
	httpClient *nhhttp.Client
	config     *nerveshub.Config

	// Resource clients
	devices     *DevicesClient
	products    *ProductsClient
	firmwares   *FirmwaresClient
	deployments *DeploymentsClient
	users       *UsersClient
}

// New creates a new NervesHub API client from a validated configuration. The
// configuration is assumed to have passed Validate; New only fails when the
// credential or CA material cannot be turned into a TLS configuration.
func New(config *nerveshub.Config) (*Client, error) {
	tlsConfig, err := auth.TLSConfig(config)
	if err != nil {
		return nil, fmt.Errorf("building TLS configuration: %w", err)
	}

	httpClient := nhhttp.NewClient(
		config.BaseURL,
		createTokenProvider(config),
		createHTTPClientOptions(config, tlsConfig)...,
	)

	client := &Client{
		httpClient: httpClient,
		config:     config,
	}

	client.initializeResourceClients()

	return client, nil
}

// createTokenProvider selects the Authorization token source for the
// configured credential. Certificate credentials authenticate during the TLS
// handshake and send no Authorization header.
func createTokenProvider(config *nerveshub.Config) auth.TokenProvider {
	if credential, ok := config.Credential.(nerveshub.TokenCredential); ok {
		return auth.NewStaticTokenProvider(credential.Token)
	}

	return nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *nerveshub.Config, tlsConfig *tls.Config) []nhhttp.Option {
	options := []nhhttp.Option{
		nhhttp.WithTLSConfig(tlsConfig),
	}

	if config.HTTPTimeout > 0 {
		options = append(options, nhhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.UserAgent != "" {
		options = append(options, nhhttp.WithUserAgent(config.UserAgent))
	}

	if config.Logger != nil {
		options = append(options, nhhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		options = append(options, nhhttp.WithDebug(true))
	}

	return options
}

// initializeResourceClients creates all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.devices = NewDevicesClient(c.httpClient, c.config.Organization, c.config.Product)
	c.products = NewProductsClient(c.httpClient, c.config.Organization)
	c.firmwares = NewFirmwaresClient(c.httpClient, c.config.Organization, c.config.Product)
	c.deployments = NewDeploymentsClient(c.httpClient, c.config.Organization, c.config.Product)
	c.users = NewUsersClient(c.httpClient)
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *nhhttp.Client {
	return c.httpClient
}

// Resource client accessors

// Devices implements nerveshub.Client.Devices.
func (c *Client) Devices() nerveshub.DevicesClient {
	return c.devices
}

// Products implements nerveshub.Client.Products.
func (c *Client) Products() nerveshub.ProductsClient {
	return c.products
}

// Firmwares implements nerveshub.Client.Firmwares.
func (c *Client) Firmwares() nerveshub.FirmwaresClient {
	return c.firmwares
}

// Deployments implements nerveshub.Client.Deployments.
func (c *Client) Deployments() nerveshub.DeploymentsClient {
	return c.deployments
}

// Users implements nerveshub.Client.Users.
func (c *Client) Users() nerveshub.UsersClient {
	return c.users
}

// Close implements nerveshub.Client.Close.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()

	return nil
}
