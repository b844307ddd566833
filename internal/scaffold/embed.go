package scaffold

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templatesFS embed.FS

// GetTemplates returns the file tree of the named starter.
func GetTemplates(templateName string) (fs.FS, error) {
	return fs.Sub(templatesFS, "templates/"+templateName)
}

func TemplateExists(name string) bool {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() && entry.Name() == name {
			return true
		}
	}
	return false
}

func AvailableTemplates() []string {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}
