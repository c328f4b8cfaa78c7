// Package config loads, merges, and validates configuration for the sync
// engine binaries.
//
// Configuration is assembled from multiple sources; later sources override
// earlier non-zero fields:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// [GetStructuredConfig] is the entry point for the syncd daemon and
// [GetClientConfig] for the interactive client.
package config
