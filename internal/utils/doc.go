// Package utils provides general-purpose helpers shared by the client and
// the devnet: the resty client wrapper, JSON response writing, common
// header names and identifier generation.
package utils
