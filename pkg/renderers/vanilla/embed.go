package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/partials/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in template bundle so callers can layer their
// own partials over it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
