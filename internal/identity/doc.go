// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package identity holds the user's ed25519 signing key.
//
// The key lives in a keystore file sealed under a passphrase-derived key
// (Argon2id, AES-256-GCM). A [LocalIdentity] signs on behalf of the user
// once an [Approver] agrees: the terminal prompt in interactive use, or
// [AutoApprover] against a devnet.
package identity
