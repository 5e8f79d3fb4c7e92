// Package install copies registry components into a project. Each component
// is an independent unit of work: its files are fetched, rewritten to the
// project's conventions and written in order, and its result is reported as
// an Outcome. A failing component never blocks the ones after it, and files
// it wrote before failing stay on disk.
package install
