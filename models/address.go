// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/hex"
	"strings"
)

// Address identifies an account on the ledger: "0x" followed by 64
// lowercase hex digits.
type Address string

// ObjectID identifies a ledger object (Vault, Cap, Safe, Item). It shares
// the Address encoding.
type ObjectID string

const hexLen = 64

// ParseAddress normalises s into canonical form. Short inputs are
// left-padded with zeros, so "0x1" and "0x00..01" name the same account.
func ParseAddress(s string) (Address, error) {
	norm, err := normalizeHex32(s)
	if err != nil {
		return "", ErrInvalidAddress
	}
	return Address(norm), nil
}

// MustAddress is ParseAddress for constants and tests.
func MustAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool { return a == "" }

// Bytes returns the 32 raw bytes behind a canonical address.
func (a Address) Bytes() []byte {
	b, _ := hex.DecodeString(strings.TrimPrefix(string(a), "0x"))
	return b
}

// Short renders the address as 0xabcd…wxyz for terminal output.
func (a Address) Short() string {
	s := string(a)
	if len(s) < 12 {
		return s
	}
	return s[:6] + "…" + s[len(s)-4:]
}

func (a Address) String() string { return string(a) }

// ParseObjectID normalises s the same way ParseAddress does.
func ParseObjectID(s string) (ObjectID, error) {
	norm, err := normalizeHex32(s)
	if err != nil {
		return "", ErrInvalidObjectID
	}
	return ObjectID(norm), nil
}

// MustObjectID is ParseObjectID for constants and tests.
func MustObjectID(s string) ObjectID {
	id, err := ParseObjectID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsZero reports whether the id is unset.
func (id ObjectID) IsZero() bool { return id == "" }

// Bytes returns the 32 raw bytes behind a canonical object id.
func (id ObjectID) Bytes() []byte {
	b, _ := hex.DecodeString(strings.TrimPrefix(string(id), "0x"))
	return b
}

func (id ObjectID) String() string { return string(id) }

// Short renders the id like [Address.Short].
func (id ObjectID) Short() string { return Address(id).Short() }

func normalizeHex32(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "0x")
	if s == "" || len(s) > hexLen {
		return "", ErrInvalidAddress
	}
	if _, err := hex.DecodeString(padEven(s)); err != nil {
		return "", err
	}
	return "0x" + strings.Repeat("0", hexLen-len(s)) + s, nil
}

func padEven(s string) string {
	if len(s)%2 == 1 {
		return "0" + s
	}
	return s
}
