package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MapEntry is a single key/value pair as stored by 'OrderedMap', exposed
// directly (rather than hidden behind an accessor pair) since callers
// iterate entries far more often than they look one up by key alone.
type MapEntry[K comparable, V any] struct {
	Key   K
	Value V
}

// OrderedMap behaves like a regular map but remembers insertion order, which
// a plain Go map cannot guarantee. The Jack lowering and type-checking passes
// rely on this to visit classes, subroutines and arguments in a stable order
// across runs (otherwise generated label counters and argument indices would
// vary run-to-run for no reason tied to the source).
type OrderedMap[K comparable, V any] struct {
	entries []MapEntry[K, V]
	index   map[K]int
}

// Builds a new, empty 'OrderedMap'.
func NewOrderedMap[K comparable, V any]() OrderedMap[K, V] {
	return OrderedMap[K, V]{index: map[K]int{}}
}

// Builds an 'OrderedMap' pre-loaded with 'entries', in the given order.
func NewOrderedMapFromList[K comparable, V any](entries []MapEntry[K, V]) OrderedMap[K, V] {
	om := NewOrderedMap[K, V]()
	for _, entry := range entries {
		om.Set(entry.Key, entry.Value)
	}
	return om
}

// Returns the value bound to 'key' and whether it was present at all.
func (om *OrderedMap[K, V]) Get(key K) (V, bool) {
	if om.index == nil {
		var zero V
		return zero, false
	}

	i, ok := om.index[key]
	if !ok {
		var zero V
		return zero, false
	}

	return om.entries[i].Value, true
}

// Binds 'value' to 'key', appending a new entry if 'key' was never seen
// before or overwriting the existing one (without moving it) otherwise.
func (om *OrderedMap[K, V]) Set(key K, value V) {
	if om.index == nil {
		om.index = map[K]int{}
	}

	if i, ok := om.index[key]; ok {
		om.entries[i].Value = value
		return
	}

	om.index[key] = len(om.entries)
	om.entries = append(om.entries, MapEntry[K, V]{Key: key, Value: value})
}

// Returns every entry in insertion order.
func (om *OrderedMap[K, V]) Entries() []V {
	values := make([]V, 0, len(om.entries))
	for _, entry := range om.entries {
		values = append(values, entry.Value)
	}
	return values
}

// Returns every key in insertion order.
func (om *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, 0, len(om.entries))
	for _, entry := range om.entries {
		keys = append(keys, entry.Key)
	}
	return keys
}

// Returns the number of entries currently stored.
func (om *OrderedMap[K, V]) Size() int {
	return len(om.entries)
}

// Reports whether 'key' is bound to anything.
func (om *OrderedMap[K, V]) Has(key K) bool {
	if om.index == nil {
		return false
	}
	_, ok := om.index[key]
	return ok
}

func (om OrderedMap[K, V]) String() string {
	return fmt.Sprintf("OrderedMap(%d entries)", len(om.entries))
}

// MarshalJSON renders the map as a plain JSON object, keys in insertion order.
// K must be string-like (used e.g. to embed the Jack standard library ABI, keyed
// by class/subroutine name); any other key type fails to marshal.
func (om OrderedMap[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, entry := range om.entries {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, ok := any(entry.Key).(string)
		if !ok {
			return nil, fmt.Errorf("OrderedMap: cannot marshal non-string key %v to JSON", entry.Key)
		}

		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		valueJSON, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(valueJSON)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON rebuilds the map from a JSON object, preserving the key order as it
// appears in the source document (the default decoder loses this, since Go maps don't
// have one) so embedded data such as the Jack standard library ABI stays reproducible.
func (om *OrderedMap[K, V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	if tok, err := dec.Token(); err != nil {
		return err
	} else if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("OrderedMap: expected a JSON object, got %v", tok)
	}

	*om = NewOrderedMap[K, V]()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		keyStr, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("OrderedMap: expected a string object key, got %v", keyTok)
		}
		key, ok := any(keyStr).(K)
		if !ok {
			return fmt.Errorf("OrderedMap: key type must be string to unmarshal from JSON")
		}

		var value V
		if err := dec.Decode(&value); err != nil {
			return err
		}

		om.Set(key, value)
	}

	_, err := dec.Token() // Consumes the closing '}'
	return err
}
