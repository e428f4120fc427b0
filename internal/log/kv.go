package log

import "sort"

// KV is a set of key-value pairs attached to a single log entry.
type KV map[string]any

// kvToArgs flattens the given KV sets into the alternating key/value
// slice that slog expects. Keys within each set are emitted in sorted
// order so log output stays deterministic.
func kvToArgs(keyVals ...KV) []any {
	args := []any{}
	for _, kv := range keyVals {
		keys := make([]string, 0, len(kv))
		for k := range kv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			args = append(args, k, kv[k])
		}
	}
	return args
}

// kvToArgsNs is like kvToArgs but prepends the namespace as the first
// key-value pair.
func kvToArgsNs(namespace string, keyVals ...KV) []any {
	return append([]any{"ns", namespace}, kvToArgs(keyVals...)...)
}
