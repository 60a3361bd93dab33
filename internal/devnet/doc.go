// Package devnet provides in-process stand-ins for the collaborators the
// client talks to: a ledger that enforces the Vault and Safe rules, an age
// based key service and a content-addressed blob store.
//
// They are test doubles for local development and integration tests. The
// ledger holds everything in memory and the key service does not split
// keys; it only honours the request and answer shapes the client expects.
package devnet
