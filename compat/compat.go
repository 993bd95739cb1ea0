// Package compat holds rewrites that make a generated OpenAPI 2.0 document
// compatible with consumers built against older hand-written documents.
package compat

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/oaserrors"
)

// BinarySchema is the OpenAPI 3 style schema of a binary response body.
var BinarySchema = document.Object{"type": "string", "format": "binary"}

// FileSchema is the OpenAPI 2.0 schema of a file response body.
var FileSchema = document.Object{"type": "file"}

// OverrideTags replaces the tags of every operation of the given paths.
func OverrideTags(doc document.Object, overrides map[string][]string) (document.Object, error) {
	paths, err := document.ObjectIn(doc, "paths")
	if err != nil {
		return nil, fmt.Errorf("compat: tags: %w", err)
	}
	for path := range overrides {
		if _, ok := paths[path].(document.Object); !ok {
			return nil, fmt.Errorf("compat: tags: %w", oaserrors.Structuralf(document.JoinPath("paths", path), "path must exist"))
		}
	}
	return document.MapOperations(doc, func(path, _ string, op document.Object) (document.Object, error) {
		tags, ok := overrides[path]
		if !ok {
			return op, nil
		}
		arr := make(document.Array, len(tags))
		for i, tag := range tags {
			arr[i] = tag
		}
		return document.With(op, "tags", arr), nil
	})
}

// BinaryToFile rewrites responses whose schema is BinarySchema to use
// FileSchema.
func BinaryToFile(doc document.Object) (document.Object, error) {
	out, err := document.MapOperations(doc, func(_, _ string, op document.Object) (document.Object, error) {
		responses, ok := op["responses"].(document.Object)
		if !ok {
			return op, nil
		}
		var changed document.Object
		for code, r := range responses {
			resp, ok := r.(document.Object)
			if !ok || !document.Equal(resp["schema"], BinarySchema) {
				continue
			}
			if changed == nil {
				changed = document.Clone(responses)
			}
			changed[code] = document.With(resp, "schema", document.Clone(FileSchema))
		}
		if changed == nil {
			return op, nil
		}
		return document.With(op, "responses", changed), nil
	})
	if err != nil {
		return nil, fmt.Errorf("compat: binary to file: %w", err)
	}
	return out, nil
}

// ReplaceResponseSchema swaps the schema of one response after asserting
// that it currently equals expect.
func ReplaceResponseSchema(doc document.Object, path, method, status string, expect, repl document.Object) (document.Object, error) {
	keys := []string{"paths", path, method, "responses", status}
	resp, err := document.ObjectIn(doc, keys...)
	if err != nil {
		return nil, fmt.Errorf("compat: response schema: %w", err)
	}
	if !document.Equal(resp["schema"], expect) {
		return nil, fmt.Errorf("compat: response schema: %w", oaserrors.Structuralf(
			document.JoinPath(append(keys, "schema")...),
			"unexpected schema (-want +got):\n%s", document.Diff(expect, resp["schema"])))
	}
	return document.SetIn(doc, append(keys, "schema"), document.Clone(repl))
}

// InlineNonStringEnums removes the registry entries of reg whose enum has a
// non-string value and replaces every reference to them with the schema.
func InlineNonStringEnums(doc document.Object, reg document.Registry) (document.Object, error) {
	schemas, err := reg.Entries(doc)
	if err != nil {
		return nil, fmt.Errorf("compat: inline enums: %w", err)
	}
	inlined := make(map[string]document.Object)
	for name, s := range schemas {
		schema, ok := s.(document.Object)
		if !ok {
			continue
		}
		enum, ok := schema["enum"].(document.Array)
		if ok && slices.ContainsFunc(enum, func(v any) bool { _, isString := v.(string); return !isString }) {
			inlined[name] = schema
		}
	}
	if len(inlined) == 0 {
		return doc, nil
	}

	kept := document.Clone(schemas)
	for name := range inlined {
		delete(kept, name)
	}
	out, err := reg.Replace(doc, kept)
	if err != nil {
		return nil, fmt.Errorf("compat: inline enums: %w", err)
	}
	var refErr error
	out = document.RewriteRefsIn(out, func(ref document.Object) any {
		s, _ := document.RefOf(ref)
		name, rest, ok := reg.NameOf(s)
		if !ok {
			return ref
		}
		schema, found := inlined[name]
		if !found {
			return ref
		}
		if rest != "" && refErr == nil {
			refErr = oaserrors.Structuralf("", "reference %q points inside inlined schema %q", s, name)
		}
		return schema
	})
	if refErr != nil {
		return nil, fmt.Errorf("compat: inline enums: %w", refErr)
	}
	return out, nil
}
