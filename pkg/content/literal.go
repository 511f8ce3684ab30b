package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const literalIndent = "  "

// MarshalLiteral renders the payload as an indented JSON object literal with
// keys in document order. Aliases and merge keys are expanded. Characters that
// are significant inside an HTML <script> element are escaped.
func (p *Payload) MarshalLiteral() ([]byte, error) {
	if p == nil || p.root == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	if err := writeNode(&buf, p.root, 0); err != nil {
		return nil, fmt.Errorf("content: encode %s: %w", p.source, err)
	}
	return buf.Bytes(), nil
}

type pair struct {
	key   string
	value *yaml.Node
}

func writeNode(buf *bytes.Buffer, n *yaml.Node, depth int) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeNode(buf, n.Content[0], depth)
	case yaml.AliasNode:
		if n.Alias == nil {
			buf.WriteString("null")
			return nil
		}
		return writeNode(buf, n.Alias, depth)
	case yaml.MappingNode:
		pairs, err := mappingPairs(n)
		if err != nil {
			return err
		}
		if len(pairs) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i, p := range pairs {
			writeIndent(buf, depth+1)
			if err := writeString(buf, p.key); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := writeNode(buf, p.value, depth+1); err != nil {
				return err
			}
			if i < len(pairs)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
		return nil
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range n.Content {
			writeIndent(buf, depth+1)
			if err := writeNode(buf, item, depth+1); err != nil {
				return err
			}
			if i < len(n.Content)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
		return nil
	case yaml.ScalarNode:
		return writeScalar(buf, n)
	default:
		return fmt.Errorf("unexpected node kind %v at line %d", n.Kind, n.Line)
	}
}

// mappingPairs flattens a mapping into ordered pairs. A key keeps the position
// of its first appearance; explicit keys override merged ones and earlier
// merge sources win over later ones.
func mappingPairs(n *yaml.Node) ([]pair, error) {
	var (
		pairs []pair
		index = make(map[string]int, len(n.Content)/2)
	)
	set := func(key string, value *yaml.Node, override bool) {
		if i, ok := index[key]; ok {
			if override {
				pairs[i].value = value
			}
			return
		}
		index[key] = len(pairs)
		pairs = append(pairs, pair{key: key, value: value})
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if isMergeKey(k) {
			sources, err := mergeSources(v)
			if err != nil {
				return nil, err
			}
			for _, src := range sources {
				merged, err := mappingPairs(src)
				if err != nil {
					return nil, err
				}
				for _, p := range merged {
					set(p.key, p.value, false)
				}
			}
			continue
		}
		key, err := keyString(k)
		if err != nil {
			return nil, err
		}
		set(key, v, true)
	}
	return pairs, nil
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!merge"
}

func mergeSources(n *yaml.Node) ([]*yaml.Node, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{n}, nil
	case yaml.SequenceNode:
		out := make([]*yaml.Node, 0, len(n.Content))
		for _, item := range n.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("merge source at line %d is not a mapping", item.Line)
			}
			out = append(out, item)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("merge source at line %d is not a mapping", n.Line)
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func keyString(n *yaml.Node) (string, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%w at line %d", ErrUnsupportedKey, n.Line)
	}
	if n.ShortTag() == "!!null" {
		return "null", nil
	}
	return n.Value, nil
}

func writeScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		if b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case "!!int":
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		return writeJSON(buf, v)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			if overflowsFloat(n) {
				buf.WriteString("null")
				return nil
			}
			return err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			buf.WriteString("null")
			return nil
		}
		return writeJSON(buf, f)
	case "!!timestamp":
		var ts time.Time
		if err := n.Decode(&ts); err != nil {
			return writeString(buf, n.Value)
		}
		return writeString(buf, ts.UTC().Format("2006-01-02T15:04:05.000Z"))
	default:
		if overflowsFloat(n) {
			buf.WriteString("null")
			return nil
		}
		return writeString(buf, n.Value)
	}
}

// overflowsFloat reports whether n is a plain number too large for a float64.
// The YAML resolver types such values as strings, 1e400 for example.
func overflowsFloat(n *yaml.Node) bool {
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return false
	}
	if n.Tag != "" && n.Tag != "!!str" && n.Tag != "!!float" {
		return false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64)
	return errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0)
}

func writeString(buf *bytes.Buffer, s string) error {
	return writeJSON(buf, s)
}

// writeJSON relies on encoding/json's default HTML escaping of <, > and &.
func writeJSON(buf *bytes.Buffer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(raw)
	return nil
}

func writeIndent(buf *bytes.Buffer, depth int) {
	buf.WriteString(strings.Repeat(literalIndent, depth))
}
