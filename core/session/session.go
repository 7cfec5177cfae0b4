package session

import (
	"slices"
)

// Map holds one request's session state as string-keyed values. It is
// created empty or by decoding an inbound cookie, mutated only by the
// handler between decode and encode, and discarded once the response is
// sent. A Map is never shared across concurrent requests, so no locking
// is required.
//
// Map has reference semantics: mutations made through a copy of the value
// are visible to the middleware that issued it.
type Map map[string]any

// New returns an empty session map.
func New() Map {
	return make(Map)
}

// Get returns the value stored under key and whether it was present.
func (m Map) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// GetString returns the string stored under key, or "" if the key is
// absent or holds a non-string value.
func (m Map) GetString(key string) string {
	s, _ := m[key].(string)
	return s
}

// Set stores value under key.
func (m Map) Set(key string, value any) {
	m[key] = value
}

// Delete removes key from the session.
func (m Map) Delete(key string) {
	delete(m, key)
}

// Len returns the number of entries.
func (m Map) Len() int {
	return len(m)
}

// IsEmpty reports whether the session holds no entries.
func (m Map) IsEmpty() bool {
	return len(m) == 0
}

// Keys returns the session keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Clear removes every entry, preserving the underlying map so the
// middleware still observes the (now empty) session.
func (m Map) Clear() {
	for k := range m {
		delete(m, k)
	}
}

// Clone returns a shallow copy of the session.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
