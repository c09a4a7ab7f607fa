// Package config loads testdrop settings.
// Values are layered from embedded TOML defaults, an optional TOML file
// named by TESTDROP_CONFIG, TESTDROP_* environment variables and finally
// programmatic overrides.
package config
