package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	nhhttp "github.com/nerves-hub/nerveshub-go/internal/http"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
)

// firmwareFormField is the multipart form field the API reads the firmware
// file from.
const firmwareFormField = "firmware"

// FirmwaresClient implements nerveshub.FirmwaresClient
type FirmwaresClient struct {
	httpClient   *nhhttp.Client
	organization string
	product      string
}

// NewFirmwaresClient creates a new firmwares client
func NewFirmwaresClient(httpClient *nhhttp.Client, organization, product string) *FirmwaresClient {
	return &FirmwaresClient{
		httpClient:   httpClient,
		organization: organization,
		product:      product,
	}
}

func (c *FirmwaresClient) collectionPath() string {
	return fmt.Sprintf("/orgs/%s/products/%s/firmwares", c.organization, c.product)
}

func (c *FirmwaresClient) firmwarePath(uuid string) string {
	return fmt.Sprintf("%s/%s", c.collectionPath(), uuid)
}

// List implements nerveshub.FirmwaresClient.List
func (c *FirmwaresClient) List(ctx context.Context) ([]nerveshub.Firmware, error) {
	resp, err := c.httpClient.Get(ctx, c.collectionPath(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing firmwares: %w", err)
	}

	var result nerveshub.Envelope[[]nerveshub.Firmware]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing firmwares list response: %w", err)
	}

	return result.Data, nil
}

// Upload implements nerveshub.FirmwaresClient.Upload
func (c *FirmwaresClient) Upload(ctx context.Context, firmware io.Reader, filename string) (*nerveshub.Firmware, error) {
	resp, err := c.httpClient.PostMultipart(ctx, c.collectionPath(), firmwareFormField, filename, firmware)
	if err != nil {
		return nil, fmt.Errorf("uploading firmware: %w", err)
	}

	var result nerveshub.Envelope[nerveshub.Firmware]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing firmware response: %w", err)
	}

	return &result.Data, nil
}

// Delete implements nerveshub.FirmwaresClient.Delete
func (c *FirmwaresClient) Delete(ctx context.Context, uuid string) error {
	resp, err := c.httpClient.Delete(ctx, c.firmwarePath(uuid))
	if err != nil {
		return fmt.Errorf("deleting firmware: %w", err)
	}

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("deleting firmware: %w", nerveshub.ParseAPIError(resp.StatusCode, resp.Body))
	}

	return nil
}
