package remap

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasvariant/document"
)

// Registry renames the entries of reg by table and rewrites every reference
// to a renamed entry. Entries absent from table keep their names. Two
// table keys with one target are rejected before the document is read.
func Registry(doc document.Object, reg document.Registry, table Table) (document.Object, error) {
	if len(table) == 0 {
		return doc, nil
	}
	if _, err := table.Invert(); err != nil {
		return nil, fmt.Errorf("remap: %s: %w", reg, err)
	}
	entries, err := reg.Entries(doc)
	if err != nil {
		return nil, fmt.Errorf("remap: %s: %w", reg, err)
	}
	renamed, err := renameKeys(reg.Name, entries, table)
	if err != nil {
		return nil, fmt.Errorf("remap: %s: %w", reg, err)
	}
	out, err := reg.Replace(doc, renamed)
	if err != nil {
		return nil, fmt.Errorf("remap: %s: %w", reg, err)
	}
	out = document.RewriteRefsIn(out, RefRewriter(reg, table))
	out = document.TransformIn(out, mappingRewriter(reg, table))
	return out, nil
}

// RefRewriter returns a RefFunc that retargets references into reg by
// table. A trailing sub-path ("#/definitions/Foo/properties/bar") is kept
// and sibling members of the reference node are preserved.
func RefRewriter(reg document.Registry, table Table) document.RefFunc {
	return func(ref document.Object) any {
		s, _ := document.RefOf(ref)
		name, rest, ok := reg.NameOf(s)
		if !ok {
			return ref
		}
		target, ok := table[name]
		if !ok {
			return ref
		}
		return document.With(ref, document.RefKey, reg.Ref(target)+rest)
	}
}

// mappingRewriter rewrites discriminator mapping values, which may be
// references or bare schema names.
func mappingRewriter(reg document.Registry, table Table) document.ObjectFunc {
	return func(obj document.Object) document.Object {
		disc, ok := obj["discriminator"].(document.Object)
		if !ok {
			return obj
		}
		mapping, ok := disc["mapping"].(document.Object)
		if !ok {
			return obj
		}
		var out document.Object
		for key, v := range mapping {
			s, ok := v.(string)
			if !ok {
				continue
			}
			var repl string
			if name, rest, isRef := reg.NameOf(s); isRef {
				if target, found := table[name]; found {
					repl = reg.Ref(target) + rest
				}
			} else if !strings.HasPrefix(s, "#") {
				if target, found := table[s]; found {
					repl = target
				}
			}
			if repl == "" {
				continue
			}
			if out == nil {
				out = document.Clone(mapping)
			}
			out[key] = repl
		}
		if out == nil {
			return obj
		}
		return document.With(obj, "discriminator", document.With(disc, "mapping", out))
	}
}
