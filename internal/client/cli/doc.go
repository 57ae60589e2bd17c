// Package cli provides the interactive TaskKeeper command-line client.
//
// App wires configuration, the HTTP API client and the services, then
// runs a REPL until the user exits. The bearer token of the session lives
// only in memory, so every run starts logged out.
//
// Commands:
//   - signup, login, logout
//   - todos [search], todo add|rename|rm
//   - tasks <todo> [search], task add|done|rm
//   - help, exit
//
// Items may be referred to by id or by their number in the last listing.
package cli
