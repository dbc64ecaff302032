package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	nhhttp "github.com/nerves-hub/nerveshub-go/internal/http"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
)

// ProductsClient implements nerveshub.ProductsClient
type ProductsClient struct {
	httpClient   *nhhttp.Client
	organization string
}

// NewProductsClient creates a new products client
func NewProductsClient(httpClient *nhhttp.Client, organization string) *ProductsClient {
	return &ProductsClient{
		httpClient:   httpClient,
		organization: organization,
	}
}

func (c *ProductsClient) collectionPath() string {
	return fmt.Sprintf("/orgs/%s/products", c.organization)
}

func (c *ProductsClient) productPath(name string) string {
	return fmt.Sprintf("%s/%s", c.collectionPath(), name)
}

// List implements nerveshub.ProductsClient.List
func (c *ProductsClient) List(ctx context.Context) ([]nerveshub.Product, error) {
	resp, err := c.httpClient.Get(ctx, c.collectionPath(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	var result nerveshub.Envelope[[]nerveshub.Product]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing products list response: %w", err)
	}

	return result.Data, nil
}

// Get implements nerveshub.ProductsClient.Get
func (c *ProductsClient) Get(ctx context.Context, name string) (*nerveshub.Product, error) {
	resp, err := c.httpClient.Get(ctx, c.productPath(name), nil)
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}

	var result nerveshub.Envelope[nerveshub.Product]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing product response: %w", err)
	}

	return &result.Data, nil
}

// Create implements nerveshub.ProductsClient.Create
func (c *ProductsClient) Create(ctx context.Context, request *nerveshub.CreateProductRequest) (*nerveshub.Product, error) {
	resp, err := c.httpClient.Post(ctx, c.collectionPath(), request)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	var result nerveshub.Envelope[nerveshub.Product]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing product response: %w", err)
	}

	return &result.Data, nil
}

// Delete implements nerveshub.ProductsClient.Delete
func (c *ProductsClient) Delete(ctx context.Context, name string) error {
	resp, err := c.httpClient.Delete(ctx, c.productPath(name))
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("deleting product: %w", nerveshub.ParseAPIError(resp.StatusCode, resp.Body))
	}

	return nil
}
