package document

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/erraggy/oasvariant/internal/equalutil"
	"github.com/erraggy/oasvariant/oaserrors"
)

// Object is a decoded JSON object.
type Object = map[string]any

// Array is a decoded JSON array.
type Array = []any

// Clone returns a shallow copy of o.
func Clone(o Object) Object {
	if o == nil {
		return Object{}
	}
	return maps.Clone(o)
}

// With returns a shallow copy of o with key set to value.
func With(o Object, key string, value any) Object {
	out := make(Object, len(o)+1)
	maps.Copy(out, o)
	out[key] = value
	return out
}

// Without returns a shallow copy of o without keys. If none of the keys is
// present o itself is returned.
func Without(o Object, keys ...string) Object {
	present := false
	for _, k := range keys {
		if _, ok := o[k]; ok {
			present = true
			break
		}
	}
	if !present {
		return o
	}
	out := maps.Clone(o)
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// CloneArray returns a shallow copy of a.
func CloneArray(a Array) Array {
	return slices.Clone(a)
}

// DeepCopy returns a copy of v that shares no objects or arrays with it.
func DeepCopy(v any) any {
	switch n := v.(type) {
	case Object:
		out := make(Object, len(n))
		for k, child := range n {
			out[k] = DeepCopy(child)
		}
		return out
	case Array:
		out := make(Array, len(n))
		for i, child := range n {
			out[i] = DeepCopy(child)
		}
		return out
	default:
		return v
	}
}

// Same reports whether a and b are the same node (identity, not content).
func Same(a, b any) bool {
	return equalutil.Same(a, b)
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b any) bool {
	return equalutil.Deep(a, b)
}

// Diff describes how got differs from want, for assertion messages.
func Diff(want, got any) string {
	return equalutil.Diff(want, got)
}

// SortedKeys returns the keys of o in lexical order.
func SortedKeys(o Object) []string {
	return slices.Sorted(maps.Keys(o))
}

// JoinPath renders a key path for error messages ("paths./a.get").
func JoinPath(keys ...string) string {
	return strings.Join(keys, ".")
}

// ObjectIn walks keys from root and returns the Object found there.
func ObjectIn(root Object, keys ...string) (Object, error) {
	cur := root
	for i, k := range keys {
		child, ok := cur[k]
		if !ok {
			return nil, oaserrors.Structuralf(JoinPath(keys[:i+1]...), "missing required object")
		}
		obj, ok := child.(Object)
		if !ok {
			return nil, oaserrors.Structuralf(JoinPath(keys[:i+1]...), "expected object, found %T", child)
		}
		cur = obj
	}
	return cur, nil
}

// ArrayIn returns the Array at keys below root.
func ArrayIn(root Object, keys ...string) (Array, error) {
	if len(keys) == 0 {
		return nil, oaserrors.Structuralf("", "empty key path")
	}
	parent, err := ObjectIn(root, keys[:len(keys)-1]...)
	if err != nil {
		return nil, err
	}
	last := keys[len(keys)-1]
	child, ok := parent[last]
	if !ok {
		return nil, oaserrors.Structuralf(JoinPath(keys...), "missing required array")
	}
	arr, ok := child.(Array)
	if !ok {
		return nil, oaserrors.Structuralf(JoinPath(keys...), "expected array, found %T", child)
	}
	return arr, nil
}

// StringIn returns the string at keys below root.
func StringIn(root Object, keys ...string) (string, error) {
	if len(keys) == 0 {
		return "", oaserrors.Structuralf("", "empty key path")
	}
	parent, err := ObjectIn(root, keys[:len(keys)-1]...)
	if err != nil {
		return "", err
	}
	last := keys[len(keys)-1]
	child, ok := parent[last]
	if !ok {
		return "", oaserrors.Structuralf(JoinPath(keys...), "missing required string")
	}
	s, ok := child.(string)
	if !ok {
		return "", oaserrors.Structuralf(JoinPath(keys...), "expected string, found %T", child)
	}
	return s, nil
}

// SetIn returns a copy of root with value stored at keys. Only the objects
// on the path are copied; missing intermediate objects are created.
func SetIn(root Object, keys []string, value any) (Object, error) {
	if len(keys) == 0 {
		obj, ok := value.(Object)
		if !ok {
			return nil, oaserrors.Structuralf("", "root must be an object, found %T", value)
		}
		return obj, nil
	}
	child := Object{}
	if existing, ok := root[keys[0]]; ok {
		obj, isObj := existing.(Object)
		if !isObj && len(keys) > 1 {
			return nil, oaserrors.Structuralf(keys[0], "expected object, found %T", existing)
		}
		child = obj
	}
	if len(keys) == 1 {
		return With(root, keys[0], value), nil
	}
	updated, err := SetIn(child, keys[1:], value)
	if err != nil {
		var se *oaserrors.StructuralError
		if errors.As(err, &se) {
			se.Path = JoinPath(keys[0], se.Path)
		}
		return nil, err
	}
	return With(root, keys[0], updated), nil
}
