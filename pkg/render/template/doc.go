// Package template defines the template rendering seam shared by the HTML
// renderers. The gotemplate subpackage provides the pongo2 backed engine.
package template
