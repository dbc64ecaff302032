package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	nhhttp "github.com/nerves-hub/nerveshub-go/internal/http"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
)

// DeploymentsClient implements nerveshub.DeploymentsClient
type DeploymentsClient struct {
	httpClient   *nhhttp.Client
	organization string
	product      string
}

// NewDeploymentsClient creates a new deployments client
func NewDeploymentsClient(httpClient *nhhttp.Client, organization, product string) *DeploymentsClient {
	return &DeploymentsClient{
		httpClient:   httpClient,
		organization: organization,
		product:      product,
	}
}

func (c *DeploymentsClient) collectionPath() string {
	return fmt.Sprintf("/orgs/%s/products/%s/deployments", c.organization, c.product)
}

func (c *DeploymentsClient) deploymentPath(name string) string {
	return fmt.Sprintf("%s/%s", c.collectionPath(), name)
}

// Deployment write requests nest the parameters under a "deployment" key, and
// the firmware UUID is sent as "firmware" even though responses carry it as
// "firmware_uuid".
type deploymentCreateParams struct {
	Name       string                         `json:"name"`
	Firmware   string                         `json:"firmware"`
	IsActive   bool                           `json:"is_active"`
	Conditions nerveshub.DeploymentConditions `json:"conditions"`
}

type deploymentCreateRequest struct {
	Deployment deploymentCreateParams `json:"deployment"`
}

type deploymentUpdateParams struct {
	Firmware   *string                         `json:"firmware,omitempty"`
	IsActive   *bool                           `json:"is_active,omitempty"`
	Conditions *nerveshub.DeploymentConditions `json:"conditions,omitempty"`
}

type deploymentUpdateRequest struct {
	Deployment deploymentUpdateParams `json:"deployment"`
}

// List implements nerveshub.DeploymentsClient.List
func (c *DeploymentsClient) List(ctx context.Context) ([]nerveshub.Deployment, error) {
	resp, err := c.httpClient.Get(ctx, c.collectionPath(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing deployments: %w", err)
	}

	var result nerveshub.Envelope[[]nerveshub.Deployment]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing deployments list response: %w", err)
	}

	return result.Data, nil
}

// Get implements nerveshub.DeploymentsClient.Get
func (c *DeploymentsClient) Get(ctx context.Context, name string) (*nerveshub.Deployment, error) {
	resp, err := c.httpClient.Get(ctx, c.deploymentPath(name), nil)
	if err != nil {
		return nil, fmt.Errorf("getting deployment: %w", err)
	}

	var result nerveshub.Envelope[nerveshub.Deployment]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing deployment response: %w", err)
	}

	return &result.Data, nil
}

// Create implements nerveshub.DeploymentsClient.Create
func (c *DeploymentsClient) Create(ctx context.Context, request *nerveshub.CreateDeploymentRequest) (*nerveshub.Deployment, error) {
	body := deploymentCreateRequest{
		Deployment: deploymentCreateParams{
			Name:       request.Name,
			Firmware:   request.FirmwareUUID,
			IsActive:   request.IsActive,
			Conditions: request.Conditions,
		},
	}

	resp, err := c.httpClient.Post(ctx, c.collectionPath(), body)
	if err != nil {
		return nil, fmt.Errorf("creating deployment: %w", err)
	}

	var result nerveshub.Envelope[nerveshub.Deployment]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing deployment response: %w", err)
	}

	return &result.Data, nil
}

// Update implements nerveshub.DeploymentsClient.Update
func (c *DeploymentsClient) Update(ctx context.Context, name string, request *nerveshub.UpdateDeploymentRequest) (*nerveshub.Deployment, error) {
	body := deploymentUpdateRequest{
		Deployment: deploymentUpdateParams{
			Firmware:   request.FirmwareUUID,
			IsActive:   request.IsActive,
			Conditions: request.Conditions,
		},
	}

	resp, err := c.httpClient.Put(ctx, c.deploymentPath(name), body)
	if err != nil {
		return nil, fmt.Errorf("updating deployment: %w", err)
	}

	var result nerveshub.Envelope[nerveshub.Deployment]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing deployment response: %w", err)
	}

	return &result.Data, nil
}

// Delete implements nerveshub.DeploymentsClient.Delete
func (c *DeploymentsClient) Delete(ctx context.Context, name string) error {
	resp, err := c.httpClient.Delete(ctx, c.deploymentPath(name))
	if err != nil {
		return fmt.Errorf("deleting deployment: %w", err)
	}

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("deleting deployment: %w", nerveshub.ParseAPIError(resp.StatusCode, resp.Body))
	}

	return nil
}
