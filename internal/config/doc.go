// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables, with envDefault fallbacks
//  2. Command-line flags
//  3. JSON or YAML config file, chosen by file extension
//
// The main entry point is [GetStructuredConfig].
package config
