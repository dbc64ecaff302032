package client

import (
	"encoding/json"
	"net/http"

	nhhttp "github.com/nerves-hub/nerveshub-go/internal/http"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
)

// Fixed path components used by the resource client tests.
const (
	testOrganization = "acme"
	testProduct      = "widget"
)

// NewTestClient creates a test client against the given base URL using the
// fixed test organization/product pair.
func NewTestClient(baseURL string) *Client {
	// HTTP client without a token provider for testing
	httpClient := nhhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
		config: &nerveshub.Config{
			BaseURL:      baseURL,
			Organization: testOrganization,
			Product:      testProduct,
			Credential:   nerveshub.TokenCredential{Token: "test-token"},
		},
	}

	client.initializeResourceClients()

	return client
}

// writeData writes v wrapped in the standard {"data": ...} response envelope.
func writeData(writer http.ResponseWriter, statusCode int, v interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(map[string]interface{}{"data": v})
}

// writeErrors writes the standard {"errors": {field: [messages]}} envelope.
func writeErrors(writer http.ResponseWriter, statusCode int, errs map[string][]string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(map[string]interface{}{"errors": errs})
}
