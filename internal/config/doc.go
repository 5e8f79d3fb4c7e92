// Package config manages the project-level settings stored in lara-ui.json at
// the project root. Only a fixed set of keys is recognized; Load rejects any
// other key. The typed File is turned into an InstallConfig for each command.
package config
