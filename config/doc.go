// Package config loads adapter settings from a YAML file and the
// environment, honoring a local .env file when present.
package config
