// Package scaffold writes a starter config and public directory for a new
// user panel deployment.
package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Sid16p/Task-7---Fetch-API/internal/app/config"
)

const DefaultTemplate = "starter"

// tmplSuffix marks files rendered through text/template; others are copied.
const tmplSuffix = ".tmpl"

type Options struct {
	Template  string
	OutputDir string
	Port      int
	SourceURL string
	Title     string
	Force     bool
}

type templateData struct {
	Port      int
	SourceURL string
	Title     string
}

// Init renders the template into opts.OutputDir and returns the written
// paths. Existing files are left alone unless Force is set.
func Init(opts Options) ([]string, error) {
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}
	if !TemplateExists(opts.Template) {
		return nil, fmt.Errorf("unknown template: %s (available: %v)", opts.Template, AvailableTemplates())
	}

	data := templateData{
		Port:      opts.Port,
		SourceURL: opts.SourceURL,
		Title:     opts.Title,
	}
	if data.Port == 0 {
		data.Port = 3000
	}
	if data.SourceURL == "" {
		data.SourceURL = config.DefaultSourceURL
	}
	if data.Title == "" {
		data.Title = "User Directory"
	}

	targetDir := opts.OutputDir
	if targetDir == "" {
		targetDir = "."
	}

	templateFS, err := GetTemplates(opts.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	var written []string
	err = fs.WalkDir(templateFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		dest := filepath.Join(targetDir, filepath.FromSlash(strings.TrimSuffix(p, tmplSuffix)))
		if !opts.Force {
			if _, err := os.Stat(dest); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", dest)
			}
		}

		if err := copyTemplateFile(templateFS, p, dest, data); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}
		written = append(written, dest)
		return nil
	})
	if err != nil {
		return written, err
	}
	return written, nil
}

func copyTemplateFile(srcFS fs.FS, srcPath, destPath string, data templateData) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	content, err := fs.ReadFile(srcFS, srcPath)
	if err != nil {
		return err
	}

	if path.Ext(srcPath) != tmplSuffix {
		return os.WriteFile(destPath, content, 0644)
	}

	tmpl, err := template.New(srcPath).Parse(string(content))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}

	return os.WriteFile(destPath, buf.Bytes(), 0644)
}
