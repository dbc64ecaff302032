package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	nhhttp "github.com/nerves-hub/nerveshub-go/internal/http"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
)

// DevicesClient implements nerveshub.DevicesClient
type DevicesClient struct {
	httpClient   *nhhttp.Client
	organization string
	product      string
}

// NewDevicesClient creates a new devices client
func NewDevicesClient(httpClient *nhhttp.Client, organization, product string) *DevicesClient {
	return &DevicesClient{
		httpClient:   httpClient,
		organization: organization,
		product:      product,
	}
}

func (c *DevicesClient) collectionPath() string {
	return fmt.Sprintf("/orgs/%s/products/%s/devices", c.organization, c.product)
}

func (c *DevicesClient) devicePath(identifier string) string {
	return fmt.Sprintf("%s/%s", c.collectionPath(), identifier)
}

// deviceWriteRequest is the wire form of device create and update requests.
// The API expects tags as a single comma-joined string rather than an array.
type deviceWriteRequest struct {
	Identifier  string  `json:"identifier,omitempty"`
	Description *string `json:"description,omitempty"`
	Tags        *string `json:"tags,omitempty"`
}

// deviceCertificateCreateRequest is the wire form of a certificate
// registration. The PEM travels base64 encoded.
type deviceCertificateCreateRequest struct {
	Identifier string `json:"identifier"`
	Cert       string `json:"cert"`
}

// List implements nerveshub.DevicesClient.List
func (c *DevicesClient) List(ctx context.Context) ([]nerveshub.Device, error) {
	resp, err := c.httpClient.Get(ctx, c.collectionPath(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	var result nerveshub.Envelope[[]nerveshub.Device]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing devices list response: %w", err)
	}

	return result.Data, nil
}

// Get implements nerveshub.DevicesClient.Get
func (c *DevicesClient) Get(ctx context.Context, identifier string) (*nerveshub.Device, error) {
	resp, err := c.httpClient.Get(ctx, c.devicePath(identifier), nil)
	if err != nil {
		return nil, fmt.Errorf("getting device: %w", err)
	}

	var result nerveshub.Envelope[nerveshub.Device]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing device response: %w", err)
	}

	return &result.Data, nil
}

// Create implements nerveshub.DevicesClient.Create
func (c *DevicesClient) Create(ctx context.Context, request *nerveshub.CreateDeviceRequest) (*nerveshub.Device, error) {
	tags := strings.Join(request.Tags, ",")
	body := deviceWriteRequest{
		Identifier:  request.Identifier,
		Description: &request.Description,
		Tags:        &tags,
	}

	resp, err := c.httpClient.Post(ctx, c.collectionPath(), body)
	if err != nil {
		return nil, fmt.Errorf("creating device: %w", err)
	}

	var result nerveshub.Envelope[nerveshub.Device]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing device response: %w", err)
	}

	return &result.Data, nil
}

// Update implements nerveshub.DevicesClient.Update
func (c *DevicesClient) Update(ctx context.Context, identifier string, request *nerveshub.UpdateDeviceRequest) (*nerveshub.Device, error) {
	body := deviceWriteRequest{
		Description: request.Description,
	}
	if request.Tags != nil {
		tags := strings.Join(request.Tags, ",")
		body.Tags = &tags
	}

	resp, err := c.httpClient.Put(ctx, c.devicePath(identifier), body)
	if err != nil {
		return nil, fmt.Errorf("updating device: %w", err)
	}

	var result nerveshub.Envelope[nerveshub.Device]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing device response: %w", err)
	}

	return &result.Data, nil
}

// Delete implements nerveshub.DevicesClient.Delete
func (c *DevicesClient) Delete(ctx context.Context, identifier string) error {
	resp, err := c.httpClient.Delete(ctx, c.devicePath(identifier))
	if err != nil {
		return fmt.Errorf("deleting device: %w", err)
	}

	// The API acknowledges removal with 204 No Content only.
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("deleting device: %w", nerveshub.ParseAPIError(resp.StatusCode, resp.Body))
	}

	return nil
}

// ListCertificates implements nerveshub.DevicesClient.ListCertificates
func (c *DevicesClient) ListCertificates(ctx context.Context, identifier string) ([]nerveshub.DeviceCertificate, error) {
	path := c.devicePath(identifier) + "/certificates"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing device certificates: %w", err)
	}

	var result nerveshub.Envelope[[]nerveshub.DeviceCertificate]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing device certificates response: %w", err)
	}

	return result.Data, nil
}

// CreateCertificate implements nerveshub.DevicesClient.CreateCertificate
func (c *DevicesClient) CreateCertificate(ctx context.Context, identifier string, certPEM []byte) (*nerveshub.DeviceCertificate, error) {
	path := c.devicePath(identifier) + "/certificates"
	body := deviceCertificateCreateRequest{
		Identifier: identifier,
		Cert:       base64.StdEncoding.EncodeToString(certPEM),
	}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("creating device certificate: %w", err)
	}

	var result nerveshub.Envelope[nerveshub.DeviceCertificate]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing device certificate response: %w", err)
	}

	return &result.Data, nil
}
