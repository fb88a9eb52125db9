package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// FormTemplate is the entry template rendered for every tree.
const FormTemplate = "templates/form.tmpl"

// TemplatesFS exposes the embedded template bundle so callers can copy and
// override it through WithTemplatesFS.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
