package renderer

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

//go:embed theme/index.html theme/book.css
var themeFS embed.FS

// ThemeFiles lists the files of the built-in theme.
var ThemeFiles = []string{"index.html", "book.css"}

// WriteTheme copies the built-in theme into dir so it can be customised.
func WriteTheme(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create theme directory: %w", err)
	}
	for _, name := range ThemeFiles {
		data, err := themeFS.ReadFile("theme/" + name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return fmt.Errorf("failed to write theme file %s: %w", name, err)
		}
	}
	return nil
}

// themeFile returns a theme file from dir when present, otherwise the
// built-in one.
func themeFile(dir, name string) ([]byte, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read theme file %s: %w", name, err)
		}
	}
	return themeFS.ReadFile("theme/" + name)
}

func loadTemplate(dir string) (*template.Template, error) {
	data, err := themeFile(dir, "index.html")
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New("index.html").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme template: %w", err)
	}
	return tmpl, nil
}
