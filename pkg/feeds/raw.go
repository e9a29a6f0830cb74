package feeds

import (
	"slices"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/PlanktoScope/depfeed/pkg/structures"
)

// A Raw is a YAML value which is copied into the feed without being interpreted.
type Raw struct {
	node *yaml.Node
}

// Extra holds the keys of a manifest object which aren't interpreted, in manifest order.
type Extra = structures.OrderedMap[string, Raw]

// Raw: yaml.Unmarshaler

func (r *Raw) UnmarshalYAML(node *yaml.Node) error {
	r.node = node
	return nil
}

// Raw: json.Marshaler

// MarshalJSON encodes the value as JSON, keeping the order of the keys of any mappings within it.
func (r Raw) MarshalJSON() ([]byte, error) {
	value, err := r.Value()
	if err != nil {
		return nil, err
	}
	return structures.MarshalUnescaped(value)
}

// Value converts the YAML value into nil, a scalar, a []any, or an ordered map with string keys.
func (r Raw) Value() (any, error) {
	if r.node == nil {
		return nil, nil
	}
	return rawValue(r.node)
}

func rawValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return rawValue(node.Content[0])
	case yaml.AliasNode:
		return rawValue(node.Alias)
	case yaml.SequenceNode:
		values := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := rawValue(child)
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		return values, nil
	case yaml.MappingNode:
		values := &structures.OrderedMap[string, any]{}
		if err := addRawEntries(values, node, false); err != nil {
			return nil, err
		}
		return values, nil
	default:
		switch node.ShortTag() {
		case "!!null", "!!bool", "!!int", "!!float":
			var value any
			if err := node.Decode(&value); err != nil {
				return nil, errors.Wrapf(err, "couldn't decode value on line %d", node.Line)
			}
			return value, nil
		default:
			// timestamps and other tagged scalars are kept as written
			return node.Value, nil
		}
	}
}

// addRawEntries adds the entries of a mapping node to values. Entries from `<<` merge keys never
// replace existing entries, and when merged is set, neither do any other entries.
func addRawEntries(values *structures.OrderedMap[string, any], node *yaml.Node, merged bool) error {
	node = resolveAlias(node)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if isMergeKey(keyNode) {
			sources := []*yaml.Node{valueNode}
			if resolveAlias(valueNode).Kind == yaml.SequenceNode {
				sources = resolveAlias(valueNode).Content
			}
			for _, source := range sources {
				if err := addRawEntries(values, source, true); err != nil {
					return err
				}
			}
			continue
		}
		var key string
		if err := keyNode.Decode(&key); err != nil {
			return errors.Wrapf(err, "couldn't decode key on line %d", keyNode.Line)
		}
		if merged && values.Has(key) {
			continue
		}
		value, err := rawValue(valueNode)
		if err != nil {
			return errors.Wrapf(err, "couldn't decode value of %s", key)
		}
		values.Set(key, value)
	}
	return nil
}

func isMergeKey(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Value == "<<" &&
		(node.Tag == "" || node.Tag == "!" || node.ShortTag() == "!!merge")
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

// decodeExtra collects the entries of a mapping node whose keys aren't among the known keys.
func decodeExtra(node *yaml.Node, known ...string) (extra Extra, err error) {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return extra, nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		if isMergeKey(keyNode) {
			continue
		}
		var key string
		if err = keyNode.Decode(&key); err != nil {
			return Extra{}, errors.Wrapf(err, "couldn't decode key on line %d", keyNode.Line)
		}
		if slices.Contains(known, key) {
			continue
		}
		extra.Set(key, Raw{node: node.Content[i+1]})
	}
	return extra, nil
}

// decodeOrder lists the keys of a mapping node in manifest order, leaving out `<<` merge keys.
func decodeOrder(node *yaml.Node) ([]string, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return nil, nil
	}
	order := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		if isMergeKey(keyNode) {
			continue
		}
		var key string
		if err := keyNode.Decode(&key); err != nil {
			return nil, errors.Wrapf(err, "couldn't decode key on line %d", keyNode.Line)
		}
		order = append(order, key)
	}
	return order, nil
}

// orderFields arranges the known fields and extra fields of an object: keys from the manifest
// come first in manifest order, followed by the remaining known fields in the order in which they
// were set. Known fields take precedence over extra fields with the same key.
func orderFields(
	order []string, fields *structures.OrderedMap[string, any], extra Extra,
) *structures.OrderedMap[string, any] {
	ordered := &structures.OrderedMap[string, any]{}
	for _, key := range order {
		if value, ok := fields.Get(key); ok {
			ordered.Set(key, value)
			continue
		}
		if value, ok := extra.Get(key); ok {
			ordered.Set(key, value)
		}
	}
	for key, value := range fields.All() {
		if !ordered.Has(key) {
			ordered.Set(key, value)
		}
	}
	for key, value := range extra.All() {
		if !ordered.Has(key) && !fields.Has(key) {
			ordered.Set(key, value)
		}
	}
	return ordered
}

// objectJSON encodes an object whose fields are arranged by orderFields.
func objectJSON(
	order []string, fields *structures.OrderedMap[string, any], extra Extra,
) ([]byte, error) {
	return orderFields(order, fields, extra).MarshalJSON()
}
