package normalize

import (
	"fmt"
	"reflect"
	"strconv"
)

// Serializable is implemented by values that can convert themselves into a
// JSON-representable form. The returned value is normalized recursively, so
// it may itself contain Serializable values.
type Serializable interface {
	ToSerializable() any
}

// FieldExposer opts a value into field-map serialization. It is the explicit
// replacement for permissive attribute dumping: only types that implement it
// expose their fields to the session cookie.
type FieldExposer interface {
	SerializableFields() map[string]any
}

// Resolver replaces the default resolution chain wholesale. It receives every
// value handed to it and is responsible for its own recursion into lists and
// maps; Value-style recursion is bypassed entirely.
type Resolver func(value any) (any, error)

// Value reduces v to a form containing only nil, bool, numbers, strings,
// []any, and map[string]any, preserving structure. Non-container values are
// resolved through the capability chain, tried in fixed priority order:
// Serializable, fmt.Stringer, FieldExposer. Values matching none of the three
// fail with a *NormalizationError.
//
// The capability chain runs before container reflection so that types like
// uuid.UUID (an array with a String method) resolve via their declared
// capability rather than being decomposed element-wise.
func Value(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch v := v.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, nil
	}

	switch v := v.(type) {
	case Serializable:
		return Value(v.ToSerializable())
	case fmt.Stringer:
		return v.String(), nil
	case FieldExposer:
		return Value(v.SerializableFields())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return Value(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := Value(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = elem
		}
		return out, nil

	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			normalized, err := Value(iter.Key().Interface())
			if err != nil {
				return nil, err
			}
			key, err := Key(normalized)
			if err != nil {
				return nil, err
			}
			val, err := Value(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[key] = val
		}
		return out, nil

	// Named primitive kinds reduce to the plain primitive so the output is
	// canonical regardless of the declared type.
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.String:
		return rv.String(), nil
	}

	return nil, &NormalizationError{TypeName: fmt.Sprintf("%T", v)}
}

// Key coerces an already-normalized value into a map key. Strings are used
// as-is; bool and numeric values are formatted to their JSON literal text,
// matching encoding/json's treatment of non-string map keys. Anything else
// cannot key a JSON object and fails.
func Key(v any) (string, error) {
	switch k := v.(type) {
	case string:
		return k, nil
	case bool:
		return strconv.FormatBool(k), nil
	case float32:
		return strconv.FormatFloat(float64(k), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(k, 'g', -1, 64), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	}

	return "", &NormalizationError{TypeName: fmt.Sprintf("%T", v)}
}
