package remap

import (
	"fmt"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/oaserrors"
)

// OperationIDs renames operation ids by table.
func OperationIDs(doc document.Object, table Table) (document.Object, error) {
	if len(table) == 0 {
		return doc, nil
	}
	present := make(map[string]bool)
	owner := make(map[string]string)
	err := document.EachOperation(doc, func(path, method string, op document.Object) error {
		id, ok := op["operationId"].(string)
		if !ok {
			return nil
		}
		present[id] = true
		target := table.Lookup(id)
		loc := document.OperationPath(path, method)
		if prev, dup := owner[target]; dup {
			return &oaserrors.CollisionError{
				Namespace: "operationId",
				Name:      target,
				Sources:   []string{prev, loc},
			}
		}
		owner[target] = loc
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("remap: operation ids: %w", err)
	}
	for _, old := range table.Keys() {
		if !present[old] {
			return nil, fmt.Errorf("remap: operation ids: %w",
				oaserrors.Structuralf("operationId", "%q must exist", old))
		}
	}
	return document.MapOperations(doc, func(_, _ string, op document.Object) (document.Object, error) {
		id, _ := op["operationId"].(string)
		target, ok := table[id]
		if !ok {
			return op, nil
		}
		return document.With(op, "operationId", target), nil
	})
}
