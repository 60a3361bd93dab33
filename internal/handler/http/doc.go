// Package http implements the HTTP transport of the devnet.
//
// It exposes the ledger, key service and blob store routes the client
// adapters call. Request tracing, access logging, response compression,
// bearer token extraction and blob integrity checks are handled here
// before requests reach the devnet collaborators.
package http
