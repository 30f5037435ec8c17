/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"sort"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Manifest describes the record types whose registry wiring should be
// generated.
type Manifest struct {
	// Package is the Go package the generated file belongs to.
	Package string `yaml:"package"`
	// Models lists the record types to register.
	Models []Model `yaml:"models"`
}

// Model is one record type entry in the manifest.
type Model struct {
	// Name is the Go type name, which must be visible in the target package.
	Name string `yaml:"name"`
	// KeyMap maps key attributes to macro templates, e.g. PK: "PLAYER#{Id}".
	KeyMap map[string]string `yaml:"keymap"`
	// Key optionally names the field used as the primary-key extractor.
	Key string `yaml:"key,omitempty"`
}

// Load reads and validates a YAML manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for the fields generation requires.
func (m *Manifest) Validate() error {
	if m.Package == "" {
		return fmt.Errorf("manifest missing package name")
	}
	if len(m.Models) == 0 {
		return fmt.Errorf("manifest lists no models")
	}
	for _, model := range m.Models {
		if model.Name == "" {
			return fmt.Errorf("manifest model missing name")
		}
		if len(model.KeyMap) == 0 {
			return fmt.Errorf("model %s has no key map", model.Name)
		}
	}
	return nil
}

const fileTemplate = `// Code generated by keymap. DO NOT EDIT.

package {{.Package}}

import (
{{- if .NeedsFmt}}
	"fmt"
{{end}}
	"github.com/suparena/querycache/registry"
)

func init() {
{{- range .Models}}
	registry.RegisterKeyMap[{{.Name}}](map[string]string{
{{- range .SortedKeyMap}}
		{{printf "%q" .Attr}}: {{printf "%q" .Template}},
{{- end}}
	})
{{- if .Key}}
	registry.RegisterKeyFunc[{{.Name}}](func(m {{.Name}}) string {
		return fmt.Sprintf("%v", m.{{.Key}})
	})
{{- end}}
{{- end}}
}
`

type keyEntry struct {
	Attr     string
	Template string
}

type modelView struct {
	Model
}

func (v modelView) SortedKeyMap() []keyEntry {
	attrs := make([]string, 0, len(v.KeyMap))
	for a := range v.KeyMap {
		attrs = append(attrs, a)
	}
	sort.Strings(attrs)
	entries := make([]keyEntry, 0, len(attrs))
	for _, a := range attrs {
		entries = append(entries, keyEntry{Attr: a, Template: v.KeyMap[a]})
	}
	return entries
}

type fileView struct {
	Package string
	Models  []modelView
}

func (v fileView) NeedsFmt() bool {
	for _, m := range v.Models {
		if m.Key != "" {
			return true
		}
	}
	return false
}

// Generate renders the registration source for a manifest, gofmt-formatted.
func Generate(m *Manifest) ([]byte, error) {
	tmpl, err := template.New("registrations").Parse(fileTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	view := fileView{Package: m.Package}
	for _, model := range m.Models {
		view.Models = append(view.Models, modelView{Model: model})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render registrations: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated code does not parse: %w", err)
	}
	return src, nil
}

// Run loads a manifest and writes the generated registrations to outPath, or
// stdout when outPath is empty.
func Run(manifestPath, outPath string) error {
	m, err := Load(manifestPath)
	if err != nil {
		return err
	}

	src, err := Generate(m)
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err = os.Stdout.Write(src)
		return err
	}
	return os.WriteFile(outPath, src, 0o644)
}
