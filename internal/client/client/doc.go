// Package client talks to the TaskKeeper HTTP API.
//
// HTTPClient keeps the bearer token of the current session in memory only.
// Error responses are decoded into *APIError, which carries the server's
// machine-readable code; transport failures wrap ErrUnavailable.
package client
