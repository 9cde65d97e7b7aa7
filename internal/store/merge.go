// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

// DedupeByKey removes rows whose key reappears later in the slice, keeping
// the last occurrence of each key at its last position. Rows with unique
// keys keep their relative order.
func DedupeByKey[T any](rows []T, key func(T) string) []T {
	last := make(map[string]int, len(rows))
	for i, r := range rows {
		last[key(r)] = i
	}
	out := make([]T, 0, len(last))
	for i, r := range rows {
		if last[key(r)] == i {
			out = append(out, r)
		}
	}
	return out
}

// MergeByKey reconciles incoming rows with an existing table using
// last-write-wins-by-key semantics: incoming rows are first deduplicated
// against themselves, then appended after the existing rows, then the
// combined slice is deduplicated again. Because incoming rows sit after
// existing ones, they win key conflicts; a row replaced by a newer version
// moves to the end while non-conflicting rows keep the existing table's
// order. The result never holds two rows with an equal key, which makes
// repeated merges of the same incoming rows idempotent.
func MergeByKey[T any](existing, incoming []T, key func(T) string) []T {
	incoming = DedupeByKey(incoming, key)
	combined := make([]T, 0, len(existing)+len(incoming))
	combined = append(combined, existing...)
	combined = append(combined, incoming...)
	return DedupeByKey(combined, key)
}
