package document

import (
	"slices"
)

// HTTPMethods lists the operation keys of a Path Item Object.
var HTTPMethods = []string{
	"delete",
	"get",
	"head",
	"options",
	"patch",
	"post",
	"put",
	"trace",
}

// IsHTTPMethod reports whether key names an operation in a path item.
func IsHTTPMethod(key string) bool {
	return slices.Contains(HTTPMethods, key)
}

// Operations returns the operations of a path item keyed by method.
// Members that are not operation objects are skipped.
func Operations(item Object) map[string]Object {
	ops := make(map[string]Object)
	for key, v := range item {
		if !IsHTTPMethod(key) {
			continue
		}
		if op, ok := v.(Object); ok {
			ops[key] = op
		}
	}
	return ops
}

// OperationFunc rewrites one operation. Returning op itself means unchanged.
type OperationFunc func(path, method string, op Object) (Object, error)

// MapOperations applies fn to every operation of doc and returns the
// rewritten document, copying only the path items whose operations changed.
func MapOperations(doc Object, fn OperationFunc) (Object, error) {
	paths, err := ObjectIn(doc, "paths")
	if err != nil {
		return nil, err
	}
	var newPaths Object
	for _, path := range SortedKeys(paths) {
		item, ok := paths[path].(Object)
		if !ok {
			continue
		}
		var newItem Object
		for _, method := range HTTPMethods {
			op, ok := item[method].(Object)
			if !ok {
				continue
			}
			out, err := fn(path, method, op)
			if err != nil {
				return nil, err
			}
			if Same(out, op) {
				continue
			}
			if newItem == nil {
				newItem = Clone(item)
			}
			newItem[method] = out
		}
		if newItem != nil {
			if newPaths == nil {
				newPaths = Clone(paths)
			}
			newPaths[path] = newItem
		}
	}
	if newPaths == nil {
		return doc, nil
	}
	return With(doc, "paths", newPaths), nil
}

// EachOperation calls fn for every operation of doc in path order. It stops
// at the first error.
func EachOperation(doc Object, fn func(path, method string, op Object) error) error {
	paths, err := ObjectIn(doc, "paths")
	if err != nil {
		return err
	}
	for _, path := range SortedKeys(paths) {
		item, ok := paths[path].(Object)
		if !ok {
			continue
		}
		for _, method := range HTTPMethods {
			if op, ok := item[method].(Object); ok {
				if err := fn(path, method, op); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// OperationPath renders the location of an operation for error messages.
func OperationPath(path, method string) string {
	return JoinPath("paths", path, method)
}
