package content

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Payload is one locale's parsed content. The zero value is not usable; build
// payloads with Parse, LoadFile or LoadFS.
type Payload struct {
	source string
	root   *yaml.Node
}

// Parse decodes YAML data into a Payload. An empty or null document yields an
// empty mapping. Any other non-mapping root, duplicate keys and alias cycles
// are reported as *ParseError.
func Parse(data []byte, source string) (*Payload, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return emptyPayload(source), nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return emptyPayload(source), nil
	}
	if root.Kind == yaml.AliasNode && root.Alias != nil {
		root = root.Alias
	}
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return emptyPayload(source), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{Source: source, Err: ErrNotMapping}
	}

	// Decoding into a generic value runs yaml.v3's duplicate key, alias cycle
	// and alias expansion checks which a plain node decode skips.
	var probe map[string]any
	if err := root.Decode(&probe); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	return &Payload{source: source, root: root}, nil
}

// LoadFile reads and parses a YAML file from disk. A missing file surfaces an
// error wrapping fs.ErrNotExist.
func LoadFile(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and parses a YAML document from fsys.
func LoadFS(fsys fs.FS, name string) (*Payload, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// Source returns the path or name the payload was parsed from.
func (p *Payload) Source() string {
	if p == nil {
		return ""
	}
	return p.source
}

// Len reports the number of top-level keys.
func (p *Payload) Len() int {
	if p == nil || p.root == nil {
		return 0
	}
	return len(p.root.Content) / 2
}

// Decode unmarshals the payload into v using yaml.v3 semantics.
func (p *Payload) Decode(v any) error {
	if p == nil || p.root == nil {
		return nil
	}
	return p.root.Decode(v)
}

func emptyPayload(source string) *Payload {
	return &Payload{
		source: source,
		root:   &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"},
	}
}
