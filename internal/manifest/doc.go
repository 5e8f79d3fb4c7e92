// Package manifest defines the registry catalog (registry.json) and parses it.
// Documents are validated against an embedded JSON Schema before decoding so a
// malformed registry is rejected as a whole instead of yielding a partial catalog.
package manifest
