// Package config provides configuration loading, merging, and validation
// facilities for the client and the devnet.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Config file: JSON with comments, or TOML by extension
//  3. Environment variables
//  4. Command-line flags
//
// The main entry points are [GetClientConfig] for the client runtime and
// [GetDevnetConfig] for the local collaborator stack.
package config
