package format

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"confstruct/internal/errors"
	"confstruct/internal/value"
)

// maxYAMLDepth bounds alias expansion; self-referencing anchors would
// otherwise recurse forever.
const maxYAMLDepth = 512

const mergeTag = "!!merge"

func parseYAML(content []byte) (*value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return value.Null(), nil
	}

	return convertYAML(&doc, 0)
}

func convertYAML(n *yaml.Node, depth int) (*value.Value, error) {
	if depth > maxYAMLDepth {
		return nil, errors.Newf("line %d: nesting deeper than %d (recursive alias?)", n.Line, maxYAMLDepth)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null(), nil
		}

		return convertYAML(n.Content[0], depth+1)
	case yaml.AliasNode:
		return convertYAML(n.Alias, depth+1)
	case yaml.ScalarNode:
		return convertYAMLScalar(n)
	case yaml.SequenceNode:
		items := make([]*value.Value, 0, len(n.Content))

		for i, child := range n.Content {
			v, err := convertYAML(child, depth+1)
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", i)
			}

			items = append(items, v)
		}

		return value.Arr(items...), nil
	case yaml.MappingNode:
		return convertYAMLMapping(n, depth)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

func convertYAMLScalar(n *yaml.Node) (*value.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return value.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}

		return value.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return value.Int(i), nil
		}

		var u uint64
		if err := n.Decode(&u); err == nil {
			return value.Uint(u), nil
		}

		num, err := value.ParseNumber(n.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: integer %q out of range", n.Line, n.Value)
		}

		return value.Num(num), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}

		return value.Float(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their text.
		return value.Str(n.Value), nil
	}
}

func convertYAMLMapping(n *yaml.Node, depth int) (*value.Value, error) {
	explicit := make(map[string]bool)

	for i := 0; i+1 < len(n.Content); i += 2 {
		key := resolveAlias(n.Content[i])
		if key.ShortTag() == mergeTag {
			continue
		}

		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
		}

		explicit[key.Value] = true
	}

	obj := value.NewObject()

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := resolveAlias(n.Content[i]), n.Content[i+1]

		if key.ShortTag() == mergeTag {
			if err := mergeYAML(obj, val, explicit, depth); err != nil {
				return nil, err
			}

			continue
		}

		v, err := convertYAML(val, depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", key.Value)
		}

		obj.Set(key.Value, v)
	}

	return value.Obj(obj), nil
}

// mergeYAML applies a "<<" merge key. Explicit keys of the mapping and keys
// merged earlier take precedence.
func mergeYAML(obj *value.Object, src *yaml.Node, explicit map[string]bool, depth int) error {
	src = resolveAlias(src)

	sources := []*yaml.Node{src}
	if src.Kind == yaml.SequenceNode {
		sources = src.Content
	}

	for _, s := range sources {
		v, err := convertYAML(s, depth+1)
		if err != nil {
			return errors.Wrap(err, "merge")
		}

		if !v.IsObject() {
			return fmt.Errorf("line %d: merge value must be a mapping", s.Line)
		}

		for _, k := range v.Object.Keys() {
			if explicit[k] || obj.Has(k) {
				continue
			}

			child, _ := v.Object.Get(k)
			obj.Set(k, child)
		}
	}

	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for i := 0; n.Kind == yaml.AliasNode && n.Alias != nil && i < maxYAMLDepth; i++ {
		n = n.Alias
	}

	return n
}
