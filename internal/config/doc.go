// Package config loads and validates application settings from
// environment variables. It exposes explicit, typed configuration
// structs so no component reads the environment directly.
package config
