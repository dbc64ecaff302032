package nerveshub

import (
	"context"
	"io"
)

// Client provides access to all NervesHub resource clients. Implementations
// are safe for concurrent use; every method on the resource clients is a
// single blocking round trip governed by the passed context.
type Client interface {
	Devices() DevicesClient
	Products() ProductsClient
	Firmwares() FirmwaresClient
	Deployments() DeploymentsClient
	Users() UsersClient

	// Close releases the idle connections held by the client's transport.
	// The client must not be used afterwards.
	Close() error
}

// DevicesClient wraps the device endpoints of the configured
// organization/product pair.
type DevicesClient interface {
	List(ctx context.Context) ([]Device, error)
	Get(ctx context.Context, identifier string) (*Device, error)
	Create(ctx context.Context, request *CreateDeviceRequest) (*Device, error)
	Update(ctx context.Context, identifier string, request *UpdateDeviceRequest) (*Device, error)
	// Delete removes a device registration. The server signals success with
	// 204 No Content; any other status is an error.
	Delete(ctx context.Context, identifier string) error
	ListCertificates(ctx context.Context, identifier string) ([]DeviceCertificate, error)
	// CreateCertificate registers a PEM client certificate for the device.
	CreateCertificate(ctx context.Context, identifier string, certPEM []byte) (*DeviceCertificate, error)
}

// ProductsClient wraps the product endpoints of the configured organization.
type ProductsClient interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, name string) (*Product, error)
	Create(ctx context.Context, request *CreateProductRequest) (*Product, error)
	Delete(ctx context.Context, name string) error
}

// FirmwaresClient wraps the firmware endpoints of the configured
// organization/product pair.
type FirmwaresClient interface {
	List(ctx context.Context) ([]Firmware, error)
	// Upload streams a signed firmware file to the product as a multipart
	// request. filename is the name reported in the form data.
	Upload(ctx context.Context, firmware io.Reader, filename string) (*Firmware, error)
	Delete(ctx context.Context, uuid string) error
}

// DeploymentsClient wraps the deployment endpoints of the configured
// organization/product pair.
type DeploymentsClient interface {
	List(ctx context.Context) ([]Deployment, error)
	Get(ctx context.Context, name string) (*Deployment, error)
	Create(ctx context.Context, request *CreateDeploymentRequest) (*Deployment, error)
	Update(ctx context.Context, name string, request *UpdateDeploymentRequest) (*Deployment, error)
	Delete(ctx context.Context, name string) error
}

// UsersClient wraps the account endpoints.
type UsersClient interface {
	// Me returns the account the credential authenticates as.
	Me(ctx context.Context) (*User, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
