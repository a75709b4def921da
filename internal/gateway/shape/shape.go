// Package shape remaps upstream JSON documents from the capitalized field
// convention to the lower-camel convention the console renders.
//
// Every field is declared explicitly. Names are never converted generically
// because several upstream names (KPIScore, AssetID) do not round-trip through a
// case conversion.
package shape

import (
	"errors"
	"fmt"
)

// ErrShape is returned when the upstream document does not fit the mapping.
var ErrShape = errors.New("shape: document does not match mapping")

// Field maps one upstream key onto one output key.
type Field struct {
	From    string
	To      string
	Default any
	// Items maps each element of an array-valued field.
	Items *Mapping
	// Object maps an object-valued field.
	Object *Mapping
}

// Mapping is an ordered list of field mappings describing one object.
type Mapping struct {
	Fields []Field
}

// Map is a shorthand constructor.
func Map(fields ...Field) Mapping {
	return Mapping{Fields: fields}
}

// Apply maps an object, or every object of an array, decoded from JSON.
// A null document maps to an object holding only defaults.
func (m Mapping) Apply(doc any) (any, error) {
	switch v := doc.(type) {
	case nil:
		return m.object(map[string]any{}, "$")
	case map[string]any:
		return m.object(v, "$")
	case []any:
		return m.array(v, "$")
	default:
		return nil, fmt.Errorf("%w: $ is %T", ErrShape, doc)
	}
}

func (m Mapping) array(items []any, path string) ([]any, error) {
	out := make([]any, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is %T", ErrShape, path, i, item)
		}
		mapped, err := m.object(obj, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, mapped)
	}
	return out, nil
}

func (m Mapping) object(src map[string]any, path string) (map[string]any, error) {
	out := make(map[string]any, len(m.Fields))
	for _, f := range m.Fields {
		value, present := lookup(src, f)
		fieldPath := path + "." + f.To
		switch {
		case !present:
			out[f.To] = defaultValue(f.Default)
		case f.Items != nil:
			items, ok := value.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s is %T, want array", ErrShape, fieldPath, value)
			}
			mapped, err := f.Items.array(items, fieldPath)
			if err != nil {
				return nil, err
			}
			out[f.To] = mapped
		case f.Object != nil:
			obj, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s is %T, want object", ErrShape, fieldPath, value)
			}
			mapped, err := f.Object.object(obj, fieldPath)
			if err != nil {
				return nil, err
			}
			out[f.To] = mapped
		default:
			out[f.To] = value
		}
	}
	return out, nil
}

// lookup reads the upstream key, falling back to the output key so that
// already normalized documents map onto themselves. Null counts as absent.
func lookup(src map[string]any, f Field) (any, bool) {
	if v, ok := src[f.From]; ok && v != nil {
		return v, true
	}
	if v, ok := src[f.To]; ok && v != nil {
		return v, true
	}
	return nil, false
}

func defaultValue(d any) any {
	switch v := d.(type) {
	case []any:
		out := make([]any, len(v))
		copy(out, v)
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out
	default:
		return d
	}
}
