// Package nhclient provides the primary entry point for constructing a
// NervesHub API client that implements the nerveshub.Client interface.
//
// It layers configuration, HTTP transport, and authentication on top of the
// resource interfaces and types defined in the nerveshub package. Most
// applications should import nhclient to build a client, then use the
// returned nerveshub.Client to access resource-specific clients, for example
// Devices(), Products(), Firmwares(), etc.
//
// Quick start
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
//	  ctx := context.Background()
//
//	  // With an access token you already have:
//	  cli, err := nhclient.NewWithToken("acme", "widget", "nh-token")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a client certificate and key for mutual TLS:
//	  cli, err = nhclient.NewWithCertificate("acme", "widget", certPEM, keyPEM)
//	  if err != nil { log.Fatal(err) }
//
//	  // Or entirely from NERVES_HUB_* environment variables:
//	  cli, err = nhclient.NewFromEnv()
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the nerveshub.Client interface
//	  devices, err := cli.Devices().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = devices
//	}
//
// # Self-hosted servers
//
// Config.BaseURL points the client at a self-hosted NervesHub instance, and
// Config.CACert supplies the PEM bundle used to verify its server
// certificate. When CACert is nil the system trust store is used.
//
// # Helpers
//
// The package also provides convenience constructors NewFromEnv,
// NewWithToken, and NewWithCertificate that wrap New with the appropriate
// configuration.
package nhclient
