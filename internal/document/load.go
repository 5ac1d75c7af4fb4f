package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default viewport used when a document does not declare one.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

// fileSpec is the YAML document format.
type fileSpec struct {
	Viewport struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"viewport"`
	Elements []NodeSpec `yaml:"elements"`
}

// LoadFile loads a document from an .html/.htm or .yaml/.yml file.
func LoadFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var tree *Tree
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		tree, err = LoadHTML(bytes.NewReader(data))
	case ".yaml", ".yml":
		tree, err = LoadYAML(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%s: unsupported document type (want .html or .yaml)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// LoadYAML parses the YAML document format.
func LoadYAML(r io.Reader) (*Tree, error) {
	var spec fileSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	width, height := spec.Viewport.Width, spec.Viewport.Height
	if width <= 0 {
		width = DefaultViewportWidth
	}
	if height <= 0 {
		height = DefaultViewportHeight
	}

	tree := NewTree(width, height)
	for _, el := range spec.Elements {
		if _, err := tree.Append(nil, el); err != nil {
			return nil, err
		}
	}
	return tree, nil
}
