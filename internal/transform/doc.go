// Package transform rewrites registry source files to a project's
// conventions and normalizes local and remote copies for comparison.
//
// Registry files are authored against a fixed set of well-known tokens: the
// PHP namespace Amsiam\LaraUi\Components, view references of the form
// 'lu::components.<name>', and Blade component tags x-lu::<name>. Rewriting
// substitutes exactly those tokens; normalizing erases whatever a rewrite
// could have put in their place.
package transform
