// Package document holds the tree model every oasvariant pass operates on.
//
// A document is the decoded JSON value of an OpenAPI description: objects are
// [Object] (map[string]any), arrays are [Array] ([]any) and scalars are
// string, float64, bool or nil. Passes never mutate their input. They build a
// new tree that shares every unchanged branch with the input, so [Same] can
// tell "still the same node" from "structurally modified" without a deep
// comparison.
//
// # Copy-on-write
//
//	out := document.With(op, "operationId", "getUser") // op is untouched
//	item = document.With(item, "get", out)
//
// # References
//
// [RewriteRefs] visits every reference node ({"$ref": "#/..."}) reachable
// from a node and returns a new node in which only the branches leading to
// replaced references are copied:
//
//	renamed := document.RewriteRefs(doc, func(ref document.Object) any {
//	    if ref["$ref"] == "#/definitions/Old" {
//	        return document.Object{"$ref": "#/definitions/New"}
//	    }
//	    return ref
//	})
//
// [CheckRefs] verifies that every reference resolves inside the document.
package document
