package jsonc

// OrderedMap is a slice-backed, order-preserving map from string keys to
// host values, used wherever the value bridge needs to round-trip an
// Object's property order — a plain Go map has no stable iteration
// order, so it cannot stand in for a JSONC object's key sequence.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]any)}
}

// Set appends key with value if key is new, or updates its value in
// place (preserving its original position) if key already exists.
func (m *OrderedMap) Set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored for key, and whether key was present.
func (m *OrderedMap) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the map's keys in insertion order.
func (m *OrderedMap) Keys() []string { return m.keys }

// Len returns the number of entries.
func (m *OrderedMap) Len() int { return len(m.keys) }

// Entries returns the map's contents as an ordered Entry slice, suitable
// for passing back into a mutation as a mapping value argument.
func (m *OrderedMap) Entries() []Entry {
	out := make([]Entry, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Entry{Key: k, Value: m.values[k]})
	}
	return out
}

// ToValue converts a node into a host value: *Object becomes an
// *OrderedMap preserving property order, *Array becomes a []any, string
// nodes decode their escapes, numbers become a float64 when they parse as
// a finite IEEE-754 double (else the literal source text), booleans and
// null become their host equivalents, and a *Root converts its single
// value (or nil, if the document is empty).
func ToValue(n Node) (any, error) {
	switch v := n.(type) {
	case *Root:
		if v.Value() == nil {
			return nil, nil
		}
		return ToValue(v.Value())
	case *Object:
		m := NewOrderedMap()
		for _, p := range v.Properties() {
			name := p.Name()
			if name == nil || p.Value() == nil {
				return nil, newConversionError("object property is missing a name or value")
			}
			key, err := decodeName(name)
			if err != nil {
				return nil, err
			}
			val, err := ToValue(p.Value())
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
		}
		return m, nil
	case *Array:
		elems := v.Elements()
		out := make([]any, 0, len(elems))
		for _, e := range elems {
			val, err := ToValue(e)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case *StringNode:
		return decodeStringLiteral(v.Text())
	case *NumberNode:
		if f, ok := NumberValue(v); ok {
			return f, nil
		}
		return v.Text(), nil
	case *BooleanNode:
		return v.Text() == "true", nil
	case *NullNode:
		return nil, nil
	default:
		return nil, newConversionError("cannot convert node of kind %s to a value", n.Kind())
	}
}

// ParseToValue parses src as JSONC and converts its single value
// to a host value. It builds the full CST with Parse and converts it with
// ToValue, so the result is identical to calling the two in sequence; the
// tree itself is not returned.
func ParseToValue(src []byte, opts ...Option) (any, error) {
	root, err := Parse(src, opts...)
	if err != nil {
		return nil, err
	}
	return ToValue(root)
}

// ParseToValueStrict is ParseToValue with every extension flag defaulting
// to false.
func ParseToValueStrict(src []byte, opts ...Option) (any, error) {
	root, err := ParseStrict(src, opts...)
	if err != nil {
		return nil, err
	}
	return ToValue(root)
}
