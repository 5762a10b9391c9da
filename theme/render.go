package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/flosch/pongo2"
)

// Entry is one theme color as seen by templates.
type Entry struct {
	Name string
	Hex  string
}

// ErrUnknownFormat is returned by Render for a format without a built-in template.
var ErrUnknownFormat = errors.New("unknown output format")

var builtin = map[string]string{
	"hex": "{% for c in colors %}{{ c.Hex }}\n{% endfor %}",
	"css": ":root {\n" +
		"{% for c in colors %}  --{{ c.Name }}: {{ c.Hex }};\n{% endfor %}" +
		"  --background: {{ background }};\n" +
		"  --foreground: {{ foreground }};\n" +
		"}\n",
	"xresources": "{% for c in colors %}*{{ c.Name }}: {{ c.Hex }}\n{% endfor %}" +
		"*background: {{ background }}\n" +
		"*foreground: {{ foreground }}\n",
}

// Formats lists the names accepted by Render.
func Formats() []string {
	names := []string{"json"}
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render formats t with one of the built-in formats.
func Render(t Theme, format string) (string, error) {
	if format == "json" {
		b, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return "", fmt.Errorf("render theme: %w", err)
		}
		return string(b) + "\n", nil
	}

	src, ok := builtin[format]
	if !ok {
		return "", fmt.Errorf("render theme as %q: %w", format, ErrUnknownFormat)
	}

	tpl, err := pongo2.FromString(src)
	if err != nil {
		return "", fmt.Errorf("render theme: %w", err)
	}
	return execute(tpl, t)
}

// RenderFile formats t with the pongo2 template stored at path.
func RenderFile(t Theme, path string) (string, error) {
	tpl, err := pongo2.FromFile(path)
	if err != nil {
		return "", fmt.Errorf("load template %s: %w", path, err)
	}
	return execute(tpl, t)
}

// Save writes t as JSON to dir/name, creating dir when needed.
func Save(dir string, name string, t Theme) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}

	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("save theme: %w", err)
	}

	if err := ioutil.WriteFile(filepath.Join(dir, name), b, 0644); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Load reads a theme written by Save.
func Load(dir string, name string) (Theme, error) {
	f, err := ioutil.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}

	t := make(Theme)
	if err := json.Unmarshal(f, &t); err != nil {
		return nil, fmt.Errorf("load theme %s: %w", name, err)
	}
	return t, nil
}

func execute(tpl *pongo2.Template, t Theme) (string, error) {
	ctxt := pongo2.Context{
		"colors":     t.Colors(),
		"background": t["background"],
		"foreground": t["foreground"],
		"theme":      map[string]interface{}(t),
	}

	o, err := tpl.Execute(ctxt)
	if err != nil {
		return "", fmt.Errorf("render theme: %w", err)
	}
	return o, nil
}
