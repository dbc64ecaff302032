// Package nerveshub provides types, interfaces, and helpers for working with
// the NervesHub device-management API.
//
// # Overview
//
// The nerveshub package defines the domain types (e.g., Device,
// DeviceCertificate, Product, Firmware, Deployment) and the interfaces for
// resource-oriented clients (e.g., DevicesClient, FirmwaresClient). A concrete
// implementation of these clients is provided by the nhclient package, which
// wires configuration, transport, and authentication. Most consumers should
// import nhclient to construct a client and then interact with the resource
// client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
//	  "github.com/nerves-hub/nerveshub-go/pkg/nhclient"
//	)
//
//	func example() {
//	  cli, err := nhclient.New(&nerveshub.Config{
//	    Organization: "acme",
//	    Product:      "thermostat",
//	    Credential:   nerveshub.TokenCredential{Token: "nh-token"},
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  ctx := context.Background()
//
//	  devices, err := cli.Devices().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = devices
//	}
//
// # Configuration
//
// Config is an explicit, immutable value: organization, product, a credential,
// and optionally a base URL override and a custom CA certificate for
// self-hosted deployments. ConfigFromEnv builds the same value from the
// NERVES_HUB_* environment variables. Exactly one credential form must be
// present — either a client certificate/key pair for mutual TLS or a bearer
// token. Validation happens once at construction; a misconfigured client is
// never created and no network traffic is issued for it.
//
// # Errors
//
// Construction problems surface as configuration errors (wrapped sentinels
// such as ErrMissingOrganization). At call time, network-level failures are
// wrapped in *TransportError and non-2xx responses in *APIError, which carries
// the HTTP status code, the raw body, and the parsed field-error map. Helpers
// such as IsNotFound, IsUnauthorized, and IsTransportError make it easy to
// branch on common cases. Calls are never retried; every method is exactly one
// round trip.
//
// # Resources
//
// Resource clients follow a consistent pattern across NervesHub resources
// (Devices and their certificates, Products, Firmwares, Deployments, Users).
// See the interfaces in client.go for the full surface area.
package nerveshub
