package document

// ObjectFunc rewrites one object whose children have already been
// rewritten. Returning obj itself means unchanged.
type ObjectFunc func(obj Object) Object

// Transform applies fn bottom-up to every object reachable from node,
// reference nodes included. Like RewriteRefs it returns node itself when
// nothing changed and otherwise copies only the changed branches.
func Transform(node any, fn ObjectFunc) any {
	switch n := node.(type) {
	case Object:
		var out Object
		for k, child := range n {
			if !isComposite(child) {
				continue
			}
			repl := Transform(child, fn)
			if !Same(repl, child) {
				if out == nil {
					out = Clone(n)
				}
				out[k] = repl
			}
		}
		if out == nil {
			out = n
		}
		return fn(out)
	case Array:
		var out Array
		for i, child := range n {
			if !isComposite(child) {
				continue
			}
			repl := Transform(child, fn)
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

// TransformIn is Transform for a whole document.
func TransformIn(doc Object, fn ObjectFunc) Object {
	out, _ := Transform(doc, fn).(Object)
	return out
}
