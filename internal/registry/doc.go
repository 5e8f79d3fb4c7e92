// Package registry talks to a remote component registry. It fetches and
// caches the registry manifest, fetches individual component source files,
// and expands requested component names into their transitive install set.
package registry
