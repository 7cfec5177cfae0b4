// Package normalize reduces arbitrary Go values to a canonical
// JSON-representable form: nil, bool, numbers, strings, []any, and
// map[string]any. It exists so that session state can hold rich values
// (UUIDs, timestamps, small domain types) and still serialize into a cookie.
//
// # Resolution chain
//
// Values that are not primitives or containers are resolved through a closed
// set of capability interfaces, tried in fixed priority order:
//
//  1. Serializable — the value converts itself (result normalized recursively)
//  2. fmt.Stringer — the value's string form is used
//  3. FieldExposer — the value exposes an explicit field map
//
// Types implementing none of the three fail with a *NormalizationError. There
// is deliberately no reflective fallback over struct fields: dumping
// unexported or internal fields into a client-visible cookie is easy to do by
// accident and hard to notice, so field exposure is opt-in via FieldExposer.
//
// # Usage
//
//	id := uuid.MustParse("36621c53-55c3-11ef-b14b-c45ab1ddc9ad")
//	v, err := normalize.Value(map[string]any{"item_id": id})
//	// v == map[string]any{"item_id": "36621c53-55c3-11ef-b14b-c45ab1ddc9ad"}
//
// Lists and maps recurse element-wise and key-and-value-wise. Map keys are
// normalized too, then coerced to strings with Key, so structured identifiers
// can key a session map as long as they resolve to a primitive.
//
// Normalization is pure and deterministic, and idempotent on already
// normalized input.
package normalize
