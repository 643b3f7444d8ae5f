package format

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"confstruct/internal/errors"
	"confstruct/internal/value"
)

// Encode renders a value tree in the given format. JSON and YAML keep the
// tree's key order; TOML output sorts keys and drops nulls, which TOML
// cannot express.
func Encode(v *value.Value, tag string) ([]byte, error) {
	f, err := Lookup(tag)
	if err != nil {
		return nil, err
	}

	switch f {
	case JSON:
		return json.MarshalIndent(orderedJSON{v}, "", "  ")
	case YAML:
		var buf bytes.Buffer

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)

		if err := enc.Encode(yamlNode(v)); err != nil {
			return nil, err
		}

		if err := enc.Close(); err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	case TOML:
		root, ok := dropNulls(v.Interface()).(map[string]any)
		if !ok {
			return nil, errors.Newf("toml output needs an object at the root, got %s", v.Kind)
		}

		return toml.Marshal(root)
	default:
		return nil, &UnsupportedFormatError{Tag: tag}
	}
}

// orderedJSON marshals a value tree keeping object key order.
type orderedJSON struct {
	v *value.Value
}

func (o orderedJSON) MarshalJSON() ([]byte, error) {
	v := o.v
	if v == nil {
		return []byte("null"), nil
	}

	switch v.Kind {
	case value.KindObject:
		var buf bytes.Buffer

		buf.WriteByte('{')

		for i, key := range v.Object.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}

			k, err := json.Marshal(key)
			if err != nil {
				return nil, err
			}

			child, _ := v.Object.Get(key)

			c, err := json.Marshal(orderedJSON{child})
			if err != nil {
				return nil, err
			}

			buf.Write(k)
			buf.WriteByte(':')
			buf.Write(c)
		}

		buf.WriteByte('}')

		return buf.Bytes(), nil
	case value.KindArray:
		items := make([]orderedJSON, len(v.Array))
		for i, item := range v.Array {
			items[i] = orderedJSON{item}
		}

		return json.Marshal(items)
	default:
		return json.Marshal(v.Interface())
	}
}

func yamlNode(v *value.Value) *yaml.Node {
	switch v.Kind {
	case value.KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

		for _, key := range v.Object.Keys() {
			child, _ := v.Object.Get(key)
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				yamlNode(child))
		}

		return n
	case value.KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Array {
			n.Content = append(n.Content, yamlNode(item))
		}

		return n
	case value.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool)}
	case value.KindNumber:
		if v.Number.Kind == value.NumberFloat {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(v.Number.Float)}
		}

		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v.Number.String()}
	case value.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.String}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

func dropNulls(raw any) any {
	switch v := raw.(type) {
	case map[string]any:
		for k, child := range v {
			if child == nil {
				delete(v, k)
				continue
			}

			v[k] = dropNulls(child)
		}

		return v
	case []any:
		out := v[:0]

		for _, child := range v {
			if child != nil {
				out = append(out, dropNulls(child))
			}
		}

		return out
	default:
		return raw
	}
}
