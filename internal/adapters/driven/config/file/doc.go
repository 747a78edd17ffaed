// Package file provides the TOML-backed ConfigStore.
//
// Values are addressed by dot-notation keys ("fetch.timeout_seconds") and
// written back as nested TOML tables.
package file
