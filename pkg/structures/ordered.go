package structures

import (
	"bytes"
	"encoding/json"
	"iter"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// An OrderedMap is a map which remembers the order in which its keys were first inserted.
// The zero value is an empty map ready to use.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// Len returns the number of entries in the map.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Get returns the value stored under the key, if it exists.
func (m *OrderedMap[K, V]) Get(key K) (value V, ok bool) {
	value, ok = m.values[key]
	return value, ok
}

// Has checks whether the key is in the map.
func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Set stores the value under the key. A key which is already in the map keeps its position.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Keys returns the keys of the map in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	return append([]K(nil), m.keys...)
}

// All iterates over the entries of the map in insertion order.
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// OrderedMap: yaml.Unmarshaler

// UnmarshalYAML decodes a YAML mapping node, keeping the order of its keys. Later duplicates of a
// key overwrite earlier values but keep the position of the first occurrence.
func (m *OrderedMap[K, V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*m = OrderedMap[K, V]{}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: expected a mapping", node.Line)
	}
	result := OrderedMap[K, V]{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key K
		if err := node.Content[i].Decode(&key); err != nil {
			return errors.Wrapf(err, "couldn't decode key on line %d", node.Content[i].Line)
		}
		var value V
		if err := node.Content[i+1].Decode(&value); err != nil {
			return errors.Wrapf(err, "couldn't decode value of key %v", key)
		}
		result.Set(key, value)
	}
	*m = result
	return nil
}

// OrderedMap: json.Marshaler

// MarshalJSON encodes the map as a JSON object whose members appear in insertion order. Keys are
// encoded like values, so they must encode as JSON strings.
func (m OrderedMap[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := MarshalUnescaped(k)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't encode key %v", k)
		}
		if len(key) == 0 || key[0] != '"' {
			return nil, errors.Errorf("key %v doesn't encode as a JSON string", k)
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := MarshalUnescaped(m.values[k])
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't encode value of key %v", k)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalUnescaped is like [json.Marshal], but it leaves HTML characters such as `&` unescaped.
func MarshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
