package remap

import (
	"fmt"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/internal/pathutil"
	"github.com/erraggy/oasvariant/oaserrors"
)

// Parameters renames parameter registry keys by ids and parameter names by
// names. Names are changed on registry entries, on inline parameters of path
// items and operations, and on the placeholders of path templates (exact
// tokens only). A rename that gives two parameters of one list, or two
// registry entries, the same name and location is a collision.
func Parameters(doc document.Object, reg document.Registry, ids, names Table) (document.Object, error) {
	out, err := Registry(doc, reg, ids)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return out, nil
	}

	used := make(map[string]bool)
	rename := func(p any) any {
		param, ok := p.(document.Object)
		if !ok || document.IsRef(param) {
			return p
		}
		name, _ := param["name"].(string)
		target, ok := names[name]
		if !ok {
			return p
		}
		used[name] = true
		return document.With(param, "name", target)
	}

	renamedRefs := make(map[string]bool)
	if entries, err := reg.Entries(out); err == nil {
		var renamed document.Object
		for _, key := range document.SortedKeys(entries) {
			entry := entries[key]
			repl := rename(entry)
			if document.Same(repl, entry) {
				continue
			}
			if renamed == nil {
				renamed = document.Clone(entries)
			}
			renamed[key] = repl
			renamedRefs[reg.Ref(key)] = true
		}
		if renamed != nil {
			if err := checkRegistryNames(reg, renamed, renamedRefs); err != nil {
				return nil, fmt.Errorf("remap: parameters: %w", err)
			}
			if out, err = reg.Replace(out, renamed); err != nil {
				return nil, fmt.Errorf("remap: parameters: %w", err)
			}
		}
	}
	lists := &parameterLists{root: out, rename: rename, renamedRefs: renamedRefs}

	paths, err := document.ObjectIn(out, "paths")
	if err != nil {
		return nil, fmt.Errorf("remap: parameters: %w", err)
	}
	newPaths := make(document.Object, len(paths))
	owner := make(map[string]string, len(paths))
	changed := false
	for _, path := range document.SortedKeys(paths) {
		for _, token := range pathutil.TemplateParams(path) {
			if _, ok := names[token]; ok {
				used[token] = true
			}
		}
		target := pathutil.RenameTemplateParams(path, names)
		if prev, dup := owner[target]; dup {
			return nil, fmt.Errorf("remap: parameters: %w", &oaserrors.CollisionError{
				Namespace: "paths",
				Name:      target,
				Sources:   []string{prev, path},
			})
		}
		owner[target] = path

		item := paths[path]
		if obj, ok := item.(document.Object); ok {
			if item, err = lists.renameItem(path, obj); err != nil {
				return nil, fmt.Errorf("remap: parameters: %w", err)
			}
		}
		if target != path || !document.Same(item, paths[path]) {
			changed = true
		}
		newPaths[target] = item
	}

	for _, old := range names.Keys() {
		if !used[old] {
			return nil, fmt.Errorf("remap: parameters: %w",
				oaserrors.Structuralf("parameters", "no parameter named %q", old))
		}
	}
	if !changed {
		return out, nil
	}
	return document.With(out, "paths", newPaths), nil
}

// parameterNamespace is the collision namespace of parameter names.
const parameterNamespace = "parameter names"

type parameterKey struct {
	name, in string
}

// parameterKeyOf returns the identity of an inline or referenced parameter.
func parameterKeyOf(root document.Object, p any) (parameterKey, bool) {
	if ref, ok := document.RefOf(p); ok {
		target, found := document.Lookup(root, ref)
		if !found {
			return parameterKey{}, false
		}
		p = target
	}
	param, ok := p.(document.Object)
	if !ok {
		return parameterKey{}, false
	}
	name, _ := param["name"].(string)
	in, _ := param["in"].(string)
	return parameterKey{name: name, in: in}, name != ""
}

func checkRegistryNames(reg document.Registry, entries document.Object, renamedRefs map[string]bool) error {
	owner := make(map[parameterKey]string, len(entries))
	for _, key := range document.SortedKeys(entries) {
		k, ok := parameterKeyOf(nil, entries[key])
		if !ok {
			continue
		}
		if prev, dup := owner[k]; dup && (renamedRefs[reg.Ref(prev)] || renamedRefs[reg.Ref(key)]) {
			return &oaserrors.CollisionError{
				Namespace: parameterNamespace,
				Name:      k.name,
				Sources:   []string{document.JoinPath(reg.String(), prev), document.JoinPath(reg.String(), key)},
				Message:   "both in " + k.in,
			}
		}
		owner[k] = key
	}
	return nil
}

// parameterLists renames the parameter lists of path items and operations.
type parameterLists struct {
	root        document.Object
	rename      func(any) any
	renamedRefs map[string]bool
}

// renameItem applies rename to the parameter list of a path item and of
// each of its operations.
func (l *parameterLists) renameItem(path string, item document.Object) (document.Object, error) {
	out := item
	if params, ok := item["parameters"].(document.Array); ok {
		repl, err := l.renameList(document.JoinPath("paths", path, "parameters"), params)
		if err != nil {
			return nil, err
		}
		if !document.Same(repl, params) {
			out = document.With(out, "parameters", repl)
		}
	}
	for _, method := range document.HTTPMethods {
		op, ok := item[method].(document.Object)
		if !ok {
			continue
		}
		params, ok := op["parameters"].(document.Array)
		if !ok {
			continue
		}
		repl, err := l.renameList(document.OperationPath(path, method)+".parameters", params)
		if err != nil {
			return nil, err
		}
		if !document.Same(repl, params) {
			out = document.With(out, method, document.With(op, "parameters", repl))
		}
	}
	return out, nil
}

func (l *parameterLists) renameList(loc string, params document.Array) (document.Array, error) {
	repl := mapArray(params, l.rename)
	renamed := func(i int) bool {
		if ref, ok := document.RefOf(repl[i]); ok {
			return l.renamedRefs[ref]
		}
		return !document.Same(repl[i], params[i])
	}
	owner := make(map[parameterKey]int, len(repl))
	for i, p := range repl {
		k, ok := parameterKeyOf(l.root, p)
		if !ok {
			continue
		}
		if prev, dup := owner[k]; dup && (renamed(prev) || renamed(i)) {
			return nil, &oaserrors.CollisionError{
				Namespace: parameterNamespace,
				Name:      k.name,
				Sources:   []string{fmt.Sprintf("%s.%d", loc, prev), fmt.Sprintf("%s.%d", loc, i)},
				Message:   "both in " + k.in,
			}
		}
		owner[k] = i
	}
	return repl, nil
}

func mapArray(a document.Array, fn func(any) any) document.Array {
	var out document.Array
	for i, v := range a {
		repl := fn(v)
		if document.Same(repl, v) {
			continue
		}
		if out == nil {
			out = document.CloneArray(a)
		}
		out[i] = repl
	}
	if out == nil {
		return a
	}
	return out
}
