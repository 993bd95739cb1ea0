// Package tuner cleans up an OpenAPI 2.0 document produced by a dialect
// converter.
//
// A converter emits every operation fully expanded: its own media type
// lists, its own copy of the error response and of every parameter. Tune
// factors these out into document-level defaults and registries so that the
// result reads like a hand-written Swagger document:
//
//   - default consumes/produces lists, removed from operations that match
//   - a shared "Error" response referenced by every default response
//   - a parameters registry keyed by name; path parameters are referenced
//     once from the path item, other non-body parameters from the operation
//
// Every factoring step asserts that what it replaces is equal to what it
// puts in its place.
package tuner

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/oaserrors"
)

// Tune applies the dialect clean-up to doc.
func Tune(doc document.Object, opts Options) (document.Object, error) {
	t := &tuner{opts: opts.withDefaults()}
	out, err := t.tune(doc)
	if err != nil {
		return nil, fmt.Errorf("tuner: %w", err)
	}
	return out, nil
}

type tuner struct {
	opts   Options
	params document.Object
}

func (t *tuner) tune(doc document.Object) (document.Object, error) {
	out, err := setDefaultList(doc, "consumes", t.opts.Consumes)
	if err != nil {
		return nil, err
	}
	if out, err = setDefaultList(out, "produces", t.opts.Produces); err != nil {
		return nil, err
	}
	if out, err = t.setErrorResponse(out); err != nil {
		return nil, err
	}

	t.params = document.Object{}
	if existing, ok := out["parameters"]; ok {
		reg, isObj := existing.(document.Object)
		if !isObj {
			return nil, oaserrors.Structuralf("parameters", "expected object, found %T", existing)
		}
		t.params = document.Clone(reg)
	}

	paths, err := document.ObjectIn(out, "paths")
	if err != nil {
		return nil, err
	}
	newPaths := make(document.Object, len(paths))
	for _, path := range document.SortedKeys(paths) {
		item, ok := paths[path].(document.Object)
		if !ok {
			return nil, oaserrors.Structuralf(document.JoinPath("paths", path), "expected object, found %T", paths[path])
		}
		tuned, err := t.tunePathItem(path, item)
		if err != nil {
			return nil, err
		}
		newPaths[path] = tuned
	}
	out = document.With(out, "paths", newPaths)
	if len(t.params) > 0 {
		out = document.With(out, "parameters", t.params)
	}
	return document.Without(out, t.opts.DropKeys...), nil
}

// setDefaultList sets a document-level media type list. An existing list
// must be set-equal to it.
func setDefaultList(doc document.Object, key string, values []string) (document.Object, error) {
	if existing, ok := doc[key]; ok {
		list, _ := existing.(document.Array)
		if !setEqual(list, values) {
			return nil, oaserrors.Structuralf(key, "already set to %v, want %v", existing, values)
		}
		return doc, nil
	}
	arr := make(document.Array, len(values))
	for i, v := range values {
		arr[i] = v
	}
	return document.With(doc, key, arr), nil
}

func (t *tuner) setErrorResponse(doc document.Object) (document.Object, error) {
	name := t.opts.ErrorResponseName
	responses := document.Object{}
	if existing, ok := doc["responses"]; ok {
		reg, isObj := existing.(document.Object)
		if !isObj {
			return nil, oaserrors.Structuralf("responses", "expected object, found %T", existing)
		}
		if current, ok := reg[name]; ok {
			if !document.Equal(current, t.opts.ErrorResponse) {
				return nil, oaserrors.Structuralf(document.JoinPath("responses", name),
					"existing response differs (-want +got):\n%s", document.Diff(t.opts.ErrorResponse, current))
			}
			return doc, nil
		}
		responses = reg
	}
	return document.With(doc, "responses", document.With(responses, name, t.opts.ErrorResponse)), nil
}

func (t *tuner) tunePathItem(path string, item document.Object) (document.Object, error) {
	var pathRefs []string
	addPathRef := func(ref string) {
		if !slices.Contains(pathRefs, ref) {
			pathRefs = append(pathRefs, ref)
		}
	}
	addPathParam := func(p any, loc string) error {
		if ref, ok := document.RefOf(p); ok {
			addPathRef(ref)
			return nil
		}
		ref, err := t.register(p, loc)
		if err != nil {
			return err
		}
		addPathRef(ref)
		return nil
	}

	out := item
	if raw, ok := item["parameters"]; ok {
		params, isArray := raw.(document.Array)
		if !isArray {
			return nil, oaserrors.Structuralf(document.JoinPath("paths", path, "parameters"), "expected array, found %T", raw)
		}
		for i, p := range params {
			if err := addPathParam(p, document.JoinPath("paths", path, "parameters", fmt.Sprint(i))); err != nil {
				return nil, err
			}
		}
	}

	for _, method := range document.HTTPMethods {
		op, ok := item[method].(document.Object)
		if !ok {
			continue
		}
		loc := document.OperationPath(path, method)
		tuned, err := t.tuneOperation(path, loc, op, addPathParam)
		if err != nil {
			return nil, err
		}
		out = document.With(out, method, tuned)
	}

	if len(pathRefs) > 0 {
		refs := make(document.Array, len(pathRefs))
		for i, ref := range pathRefs {
			refs[i] = document.NewRef(ref)
		}
		out = document.With(out, "parameters", refs)
	}
	return out, nil
}

func (t *tuner) tuneOperation(path, loc string, op document.Object, addPathParam func(any, string) error) (document.Object, error) {
	out := op
	if raw, ok := op["parameters"]; ok {
		params, isArray := raw.(document.Array)
		if !isArray {
			return nil, oaserrors.Structuralf(loc+".parameters", "expected array, found %T", raw)
		}
		var kept document.Array
		for i, p := range params {
			ploc := document.JoinPath(loc, "parameters", fmt.Sprint(i))
			if document.IsRef(p) {
				kept = append(kept, p)
				continue
			}
			param, ok := p.(document.Object)
			if !ok {
				return nil, oaserrors.Structuralf(ploc, "expected object, found %T", p)
			}
			switch param["in"] {
			case "body":
				kept = append(kept, param)
			case "path":
				if err := addPathParam(param, ploc); err != nil {
					return nil, err
				}
			default:
				ref, err := t.register(param, ploc)
				if err != nil {
					return nil, err
				}
				kept = append(kept, document.NewRef(ref))
			}
		}
		if len(kept) == 0 {
			out = document.Without(out, "parameters")
		} else {
			out = document.With(out, "parameters", kept)
		}
	}

	var err error
	if out, err = t.tuneMediaTypes(out, loc, "consumes", t.opts.Consumes, false); err != nil {
		return nil, err
	}
	if out, err = t.tuneMediaTypes(out, loc, "produces", t.opts.Produces, true); err != nil {
		return nil, err
	}
	return t.tuneDefaultResponse(path, loc, out)
}

// register adds a parameter to the registry under its name and returns its
// reference. A different parameter already registered under the name is an
// error.
func (t *tuner) register(p any, loc string) (string, error) {
	param, ok := p.(document.Object)
	if !ok {
		return "", oaserrors.Structuralf(loc, "expected object, found %T", p)
	}
	name, ok := param["name"].(string)
	if !ok || name == "" {
		return "", oaserrors.Structuralf(loc, "parameter has no name")
	}
	if existing, ok := t.params[name]; ok {
		if !document.Equal(existing, param) {
			return "", oaserrors.Structuralf(loc, "parameter %q differs from the one already registered (-registered +here):\n%s",
				name, document.Diff(existing, param))
		}
	} else {
		t.params[name] = param
	}
	return document.ParametersOAS2.Ref(name), nil
}

func (t *tuner) tuneMediaTypes(op document.Object, loc, key string, defaults []string, produces bool) (document.Object, error) {
	raw, ok := op[key]
	if !ok {
		return op, nil
	}
	list, ok := raw.(document.Array)
	if !ok {
		return nil, oaserrors.Structuralf(loc+"."+key, "expected array, found %T", raw)
	}
	if setEqual(list, defaults) {
		return document.Without(op, key), nil
	}
	if produces && len(list) == 1 && list[0] == "*/*" {
		return document.With(op, key, document.Array{t.opts.BinaryMediaType}), nil
	}
	for _, v := range list {
		if s, _ := v.(string); strings.Contains(s, "*") {
			return nil, oaserrors.Structuralf(loc+"."+key, "should not contain media ranges, found %s", s)
		}
	}
	return op, nil
}

func (t *tuner) tuneDefaultResponse(path, loc string, op document.Object) (document.Object, error) {
	responses, ok := op["responses"].(document.Object)
	if !ok {
		return op, nil
	}
	def, ok := responses["default"]
	if !ok {
		return op, nil
	}
	ref := document.ResponsesOAS2.Ref(t.opts.ErrorResponseName)
	if r, isRef := document.RefOf(def); isRef && r == ref {
		return op, nil
	}
	if !document.Equal(def, t.opts.ErrorResponse) {
		if slices.Contains(t.opts.InlineDefaultPaths, path) {
			return op, nil
		}
		return nil, oaserrors.Structuralf(loc+".responses.default",
			"default response is not the shared %s response (-want +got):\n%s",
			t.opts.ErrorResponseName, document.Diff(t.opts.ErrorResponse, def))
	}
	return document.With(op, "responses", document.With(responses, "default", document.NewRef(ref))), nil
}

func setEqual(list document.Array, values []string) bool {
	if len(list) != len(values) {
		return false
	}
	for _, v := range list {
		s, ok := v.(string)
		if !ok || !slices.Contains(values, s) {
			return false
		}
	}
	return true
}
