// Package config provides centralized configuration management for parkcli.
// It loads configuration from environment variables and an optional YAML
// file, validates it, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Configuration file (config.yaml, or PARK_CONFIG_FILE)
//	2. Environment variables
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern PARK_* for namespacing:
//
//	PARK_SERVER_PORT=8080
//	PARK_LOGGING_LEVEL=info
//	PARK_INGEST_INPUT_DIR=data/exports
//	PARK_ANALYSIS_IN_STATE_CODE=MI
package config
