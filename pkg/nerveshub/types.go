package nerveshub

import (
	"time"
)

// Envelope wraps every successful NervesHub response body.
type Envelope[T any] struct {
	Data T `json:"data" yaml:"data"`
}

// Device represents a device registered under an organization/product pair.
type Device struct {
	Identifier        string            `json:"identifier"                   yaml:"identifier"`
	Description       string            `json:"description,omitempty"        yaml:"description,omitempty"`
	Tags              []string          `json:"tags,omitempty"               yaml:"tags,omitempty"`
	Version           string            `json:"version,omitempty"            yaml:"version,omitempty"`
	Status            string            `json:"status,omitempty"             yaml:"status,omitempty"`
	Online            bool              `json:"online"                       yaml:"online"`
	FirmwareMetadata  *FirmwareMetadata `json:"firmware_metadata,omitempty"  yaml:"firmware_metadata,omitempty"`
	LastCommunication *time.Time        `json:"last_communication,omitempty" yaml:"last_communication,omitempty"`
	UpdatesEnabled    bool              `json:"updates_enabled"              yaml:"updates_enabled"`
}

// FirmwareMetadata describes the firmware a device reported running.
type FirmwareMetadata struct {
	UUID         string `json:"uuid"                   yaml:"uuid"`
	Product      string `json:"product,omitempty"      yaml:"product,omitempty"`
	Platform     string `json:"platform,omitempty"     yaml:"platform,omitempty"`
	Architecture string `json:"architecture,omitempty" yaml:"architecture,omitempty"`
	Version      string `json:"version,omitempty"      yaml:"version,omitempty"`
	Author       string `json:"author,omitempty"       yaml:"author,omitempty"`
}

// DeviceCertificate represents a client certificate registered for a device.
type DeviceCertificate struct {
	Serial    string    `json:"serial"     yaml:"serial"`
	NotBefore time.Time `json:"not_before" yaml:"not_before"`
	NotAfter  time.Time `json:"not_after"  yaml:"not_after"`
}

// Product represents a product within an organization.
type Product struct {
	Name           string `json:"name"            yaml:"name"`
	DeltaUpdatable bool   `json:"delta_updatable" yaml:"delta_updatable"`
}

// Firmware represents a signed firmware image uploaded to a product.
type Firmware struct {
	UUID         string `json:"uuid"                   yaml:"uuid"`
	Version      string `json:"version"                yaml:"version"`
	Product      string `json:"product,omitempty"      yaml:"product,omitempty"`
	Platform     string `json:"platform,omitempty"     yaml:"platform,omitempty"`
	Architecture string `json:"architecture,omitempty" yaml:"architecture,omitempty"`
	Author       string `json:"author,omitempty"       yaml:"author,omitempty"`
}

// Deployment represents a firmware rollout targeting devices by conditions.
type Deployment struct {
	Name         string               `json:"name"            yaml:"name"`
	FirmwareUUID string               `json:"firmware_uuid"   yaml:"firmware_uuid"`
	IsActive     bool                 `json:"is_active"       yaml:"is_active"`
	State        string               `json:"state,omitempty" yaml:"state,omitempty"`
	Conditions   DeploymentConditions `json:"conditions"      yaml:"conditions"`
}

// DeploymentConditions select which devices a deployment applies to.
type DeploymentConditions struct {
	Tags    []string `json:"tags"              yaml:"tags"`
	Version string   `json:"version,omitempty" yaml:"version,omitempty"`
}

// User represents the authenticated account.
type User struct {
	Name  string `json:"name"  yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// CreateDeviceRequest is the request for registering a device.
type CreateDeviceRequest struct {
	// Identifier is the unique device identifier within the product.
	Identifier string `json:"identifier" yaml:"identifier"`
	// Description is free-form text describing the device.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Tags are sent to the API as a single comma-joined string.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// UpdateDeviceRequest is the request for updating a device. Nil fields are
// left unchanged.
type UpdateDeviceRequest struct {
	Description *string  `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"        yaml:"tags,omitempty"`
}

// CreateProductRequest is the request for creating a product.
type CreateProductRequest struct {
	Name string `json:"name" yaml:"name"`
}

// CreateDeploymentRequest is the request for creating a deployment.
type CreateDeploymentRequest struct {
	Name         string               `json:"name"          yaml:"name"`
	FirmwareUUID string               `json:"firmware_uuid" yaml:"firmware_uuid"`
	IsActive     bool                 `json:"is_active"     yaml:"is_active"`
	Conditions   DeploymentConditions `json:"conditions"    yaml:"conditions"`
}

// UpdateDeploymentRequest is the request for updating a deployment. Nil fields
// are left unchanged.
type UpdateDeploymentRequest struct {
	FirmwareUUID *string               `json:"firmware_uuid,omitempty" yaml:"firmware_uuid,omitempty"`
	IsActive     *bool                 `json:"is_active,omitempty"     yaml:"is_active,omitempty"`
	Conditions   *DeploymentConditions `json:"conditions,omitempty"    yaml:"conditions,omitempty"`
}
