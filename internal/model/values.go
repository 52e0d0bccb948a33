package model

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Value is a submitted or stored column value: either a single scalar string
// or a list of strings (multi-select, checkbox groups).
type Value struct {
	scalar string
	list   []string
	isList bool
}

// Scalar wraps a single string value.
func Scalar(value string) Value {
	return Value{scalar: value}
}

// List wraps a list of strings.
func List(items ...string) Value {
	return Value{list: append([]string{}, items...), isList: true}
}

// IsList reports whether the value was supplied as a list.
func (v Value) IsList() bool {
	return v.isList
}

// String returns the scalar, or the list joined with commas.
func (v Value) String() string {
	if v.isList {
		return strings.Join(v.list, ",")
	}
	return v.scalar
}

// Items returns the list, or the scalar split on commas. An empty scalar
// yields no items.
func (v Value) Items() []string {
	if v.isList {
		return append([]string(nil), v.list...)
	}
	if v.scalar == "" {
		return nil
	}
	return strings.Split(v.scalar, ",")
}

// Values maps column names to values. A nil Values means no value source.
type Values map[string]Value

// ValuesFromMap coerces loosely typed data (decoded JSON/YAML, database rows)
// into Values. Nil entries are skipped; numbers and booleans are formatted as
// strings, with booleans mapped to "1" and "0".
func ValuesFromMap(raw map[string]any) (Values, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(Values, len(raw))
	for name, item := range raw {
		if item == nil {
			continue
		}
		value, err := coerceValue(item)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", name, err)
		}
		out[name] = value
	}
	return out, nil
}

// ValuesFromURL converts submitted form data. Keys ending in [] and keys with
// more than one entry become lists; the [] suffix is dropped.
func ValuesFromURL(form url.Values) Values {
	if form == nil {
		return nil
	}
	out := make(Values, len(form))
	for key, entries := range form {
		name := strings.TrimSuffix(key, "[]")
		if name != key || len(entries) > 1 {
			out[name] = List(entries...)
			continue
		}
		if len(entries) == 1 {
			out[name] = Scalar(entries[0])
		}
	}
	return out
}

func coerceValue(item any) (Value, error) {
	switch v := item.(type) {
	case Value:
		return v, nil
	case []string:
		return List(v...), nil
	case []any:
		items := make([]string, 0, len(v))
		for _, entry := range v {
			str, err := coerceScalar(entry)
			if err != nil {
				return Value{}, err
			}
			items = append(items, str)
		}
		return List(items...), nil
	default:
		str, err := coerceScalar(item)
		if err != nil {
			return Value{}, err
		}
		return Scalar(str), nil
	}
}

func coerceScalar(item any) (string, error) {
	switch v := item.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", item)
	}
}
