package models

import "errors"

var (
	// ErrInvalidAddress is returned when a string is not a hex account address.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidObjectID is returned when a string is not a hex object id.
	ErrInvalidObjectID = errors.New("invalid object id")
	// ErrUnknownHolding is returned when a Cap holder has an unknown kind tag.
	ErrUnknownHolding = errors.New("unknown cap holding kind")
)
