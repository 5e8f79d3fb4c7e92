// Package cli defines the Cobra command tree for the laraui CLI. Each file
// in this package registers one top-level command (init, list, add, diff,
// config, version) with the root command. Commands delegate to the internal
// packages for registry access, installation and drift detection, and only
// handle flag parsing, output formatting and exit status.
package cli
