package document

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/oasvariant/internal/pathutil"
	"github.com/erraggy/oasvariant/oaserrors"
)

// RefKey is the member that marks a reference node.
const RefKey = "$ref"

// RefFunc computes the replacement for a reference node. Returning ref
// itself means "unchanged".
type RefFunc func(ref Object) any

// RefOf returns the pointer of a reference node.
func RefOf(node any) (string, bool) {
	obj, ok := node.(Object)
	if !ok {
		return "", false
	}
	ref, ok := obj[RefKey].(string)
	return ref, ok
}

// IsRef reports whether node is a reference node.
func IsRef(node any) bool {
	_, ok := RefOf(node)
	return ok
}

// NewRef builds a reference node.
func NewRef(ref string) Object {
	return Object{RefKey: ref}
}

// RewriteRefs applies fn to every reference node reachable from node and
// returns the result. node is returned unchanged (same identity) when fn
// changes nothing; otherwise only the objects and arrays on the path to a
// replaced reference are copied and every other branch is shared.
func RewriteRefs(node any, fn RefFunc) any {
	if obj, ok := node.(Object); ok && IsRef(obj) {
		return fn(obj)
	}
	return rewriteChildren(node, fn)
}

func rewriteChildren(node any, fn RefFunc) any {
	switch n := node.(type) {
	case Object:
		var changed Object
		for k, child := range n {
			if !isComposite(child) {
				continue
			}
			repl := RewriteRefs(child, fn)
			if !Same(repl, child) {
				if changed == nil {
					changed = make(Object)
				}
				changed[k] = repl
			}
		}
		if changed == nil {
			return n
		}
		out := Clone(n)
		for k, v := range changed {
			out[k] = v
		}
		return out
	case Array:
		var out Array
		for i, child := range n {
			if !isComposite(child) {
				continue
			}
			repl := RewriteRefs(child, fn)
			if !Same(repl, child) {
				if out == nil {
					out = CloneArray(n)
				}
				out[i] = repl
			}
		}
		if out == nil {
			return n
		}
		return out
	default:
		return node
	}
}

func isComposite(v any) bool {
	switch v.(type) {
	case Object, Array:
		return true
	}
	return false
}

// RewriteRefsIn is RewriteRefs for a whole document.
func RewriteRefsIn(doc Object, fn RefFunc) Object {
	out, _ := RewriteRefs(doc, fn).(Object)
	return out
}

// Refs returns every reference string reachable from node, in traversal
// order with duplicates removed.
func Refs(node any) []string {
	var refs []string
	seen := make(map[string]bool)
	var walk func(v any)
	walk = func(v any) {
		switch n := v.(type) {
		case Object:
			if ref, ok := n[RefKey].(string); ok {
				if !seen[ref] {
					seen[ref] = true
					refs = append(refs, ref)
				}
				return
			}
			for _, k := range SortedKeys(n) {
				walk(n[k])
			}
		case Array:
			for _, child := range n {
				walk(child)
			}
		}
	}
	walk(node)
	return refs
}

// Lookup resolves a local JSON pointer reference against root.
func Lookup(root any, ref string) (any, bool) {
	tokens, ok := pathutil.SplitPointer(ref)
	if !ok {
		return nil, false
	}
	cur := root
	for _, tok := range tokens {
		switch n := cur.(type) {
		case Object:
			child, ok := n[tok]
			if !ok {
				return nil, false
			}
			cur = child
		case Array:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(n) {
				return nil, false
			}
			cur = n[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// DanglingRefs returns the references reachable from root that do not
// resolve inside root, sorted.
func DanglingRefs(root Object) []string {
	var dangling []string
	for _, ref := range Refs(root) {
		if _, ok := Lookup(root, ref); !ok {
			dangling = append(dangling, ref)
		}
	}
	slices.Sort(dangling)
	return dangling
}

// CheckRefs fails when any reference in root does not resolve inside root.
func CheckRefs(root Object) error {
	dangling := DanglingRefs(root)
	if len(dangling) == 0 {
		return nil
	}
	return &oaserrors.StructuralError{
		Message: fmt.Sprintf("%d dangling reference(s): %s", len(dangling), strings.Join(dangling, ", ")),
	}
}
