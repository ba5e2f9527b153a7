package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/raysh454/apiprobe/internal/model"
)

// fileCatalog is the on-disk YAML shape. Bodies may be written either as a
// YAML mapping or as a literal JSON string.
type fileCatalog struct {
	BaseURL   string                `yaml:"base_url"`
	Endpoints map[string][]Endpoint `yaml:"endpoints"`
	Bodies    map[string]yaml.Node  `yaml:"bodies"`
}

// LoadFile reads a YAML catalog and overlays it on Default. Methods named in
// the file replace the built-in entries for that method; others are kept.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse is LoadFile without the file.
func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := Default()
	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}

	for name, eps := range fc.Endpoints {
		m, ok := model.ParseMethod(name)
		if !ok {
			return nil, fmt.Errorf("parse catalog: unsupported method %q", name)
		}
		for i, ep := range eps {
			if ep.Path == "" {
				return nil, fmt.Errorf("parse catalog: %s endpoint %d has no path", m, i)
			}
			if ep.Label == "" {
				eps[i].Label = ep.Path
			}
		}
		c.Endpoints[m] = eps
	}

	for name, node := range fc.Bodies {
		m, ok := model.ParseMethod(name)
		if !ok {
			return nil, fmt.Errorf("parse catalog: unsupported method %q", name)
		}
		if !m.RequiresBody() {
			return nil, fmt.Errorf("parse catalog: %s requests carry no body", m)
		}
		body, err := bodyFromNode(&node)
		if err != nil {
			return nil, fmt.Errorf("parse catalog: %s body: %w", m, err)
		}
		c.Bodies[m] = body
	}

	return c, nil
}

func bodyFromNode(node *yaml.Node) (string, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!str" {
		return node.Value, nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return "", err
	}
	return indent(v), nil
}
