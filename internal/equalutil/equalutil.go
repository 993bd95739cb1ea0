// Package equalutil compares decoded document values.
package equalutil

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// Deep reports whether two decoded JSON values are structurally identical.
// Numbers compare by value and type, so 1 (float64) and 1 (int) differ.
func Deep(a, b any) bool {
	return cmp.Equal(a, b)
}

// Diff returns a human-readable report of the differences between two
// decoded JSON values, or "" when they are equal.
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}

// Same reports whether a and b are the same node: the same map, the same
// slice (backing array and length), or equal scalars. It never compares
// composite contents.
func Same(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || (av == nil) != (bv == nil) {
			return false
		}
		return reflect.ValueOf(av).UnsafePointer() == reflect.ValueOf(bv).UnsafePointer()
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) || (av == nil) != (bv == nil) {
			return false
		}
		if len(av) == 0 {
			return true
		}
		return &av[0] == &bv[0]
	case string, float64, bool, int, int64, nil:
		return a == b
	default:
		return false
	}
}
