// Package http implements the single-attempt HTTP transport used by the
// NervesHub client: URL assembly, the JSON codec, authentication headers, and
// the mapping of failures onto the nerveshub error taxonomy. Every call is
// exactly one round trip; there is no retry or backoff machinery.
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nerves-hub/nerveshub-go/internal/auth"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
)

// DefaultUserAgent identifies the client when Config.UserAgent is empty.
const DefaultUserAgent = "nerveshub-go/1.0"

// Request describes one API call before encoding.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-marshaled unless it is an io.Reader or []byte, which are
	// sent verbatim (multipart uploads set their own Content-Type header).
	Body    interface{}
	Headers map[string]string
}

// Response is the materialized wire response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client executes requests against a fixed base URL.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokenProvider auth.TokenProvider
	userAgent     string
	logger        nerveshub.Logger
	debug         bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger used for debug output.
func WithLogger(logger nerveshub.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithTLSConfig installs the TLS material (client certificate, root pool)
// on the underlying transport.
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(c *Client) {
		c.httpClient.Transport = &http.Transport{
			TLSClientConfig:   tlsConfig,
			Proxy:             http.ProxyFromEnvironment,
			ForceAttemptHTTP2: true,
		}
	}
}

// NewClient creates a transport for the given base URL. tokenProvider may be
// nil, in which case requests carry no Authorization header (mutual TLS
// authenticates at the connection layer instead).
func NewClient(baseURL string, tokenProvider auth.TokenProvider, options ...Option) *Client {
	client := &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		tokenProvider: tokenProvider,
		userAgent:     DefaultUserAgent,
		httpClient: &http.Client{
			Timeout: nerveshub.DefaultHTTPTimeout,
		},
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// Do executes one request. Network-level failures come back as
// *nerveshub.TransportError; non-2xx statuses come back as
// *nerveshub.APIError alongside the materialized response.
func (c *Client) Do(ctx context.Context, request *Request) (*Response, error) {
	endpoint := c.baseURL + request.Path
	if len(request.Query) > 0 {
		endpoint += "?" + request.Query.Encode()
	}

	body, contentType, err := encodeBody(request.Body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, request.Method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if c.tokenProvider != nil {
		token, err := c.tokenProvider.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	for key, value := range request.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": request.Method,
			"url":    endpoint,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &nerveshub.TransportError{Op: request.Method, URL: endpoint, Err: err}
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &nerveshub.TransportError{Op: request.Method, URL: endpoint, Err: err}
	}

	response := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"bytes":  len(respBody),
		})
	}

	if httpResp.StatusCode >= http.StatusMultipleChoices {
		return response, nerveshub.ParseAPIError(httpResp.StatusCode, respBody)
	}

	return response, nil
}

// encodeBody prepares the request payload. JSON marshaling applies to
// anything that is not already raw bytes or a stream.
func encodeBody(payload interface{}) (io.Reader, string, error) {
	switch body := payload.(type) {
	case nil:
		return nil, "", nil
	case io.Reader:
		return body, "", nil
	case []byte:
		return bytes.NewReader(body), "", nil
	default:
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, "", fmt.Errorf("marshaling request body: %w", err)
		}

		return bytes.NewReader(data), "application/json", nil
	}
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// PostMultipart sends one file as a multipart/form-data request. The payload
// is assembled in memory before the single round trip.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, content io.Reader) (*Response, error) {
	var buffer bytes.Buffer

	writer := multipart.NewWriter(&buffer)

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}

	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   &buffer,
		Headers: map[string]string{
			"Content-Type": writer.FormDataContentType(),
		},
	})
}

// CloseIdleConnections releases the connections held by the underlying
// transport. The client remains usable but a fresh connection will be dialed
// for the next request.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}
