// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the go-safe-keeper command line.
//
// Each command loads the merged configuration, unlocks the identity when it
// needs to sign, and runs one client service operation against the
// configured ledger, key service and blob store.
package client
