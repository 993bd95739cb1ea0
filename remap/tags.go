package remap

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/oaserrors"
)

// TagRules describes a tag rename.
type TagRules struct {
	// Rename maps old tag names to new ones, in both the top-level tag list
	// and operation tag lists. Several names may map to one.
	Rename Table
	// Drop lists tag definitions (by old name) removed from the top-level
	// tag list. Operations keep their renamed tags.
	Drop []string
}

// Tags applies rules to the document's tag definitions and operation tags.
func Tags(doc document.Object, rules TagRules) (document.Object, error) {
	used := make(map[string]bool)
	out := doc

	if raw, ok := doc["tags"]; ok {
		tags, isArray := raw.(document.Array)
		if !isArray {
			return nil, fmt.Errorf("remap: tags: %w", oaserrors.Structuralf("tags", "expected array, found %T", raw))
		}
		renamed, err := renameTagList(tags, rules, used)
		if err != nil {
			return nil, fmt.Errorf("remap: tags: %w", err)
		}
		out = document.With(doc, "tags", renamed)
	} else if len(rules.Drop) > 0 {
		return nil, fmt.Errorf("remap: tags: %w", oaserrors.Structuralf("tags", "missing tag list to drop %q from", rules.Drop))
	}

	out, err := document.MapOperations(out, func(_, _ string, op document.Object) (document.Object, error) {
		opTags, ok := op["tags"].(document.Array)
		if !ok {
			return op, nil
		}
		var renamed document.Array
		changed := false
		for _, t := range opTags {
			name, _ := t.(string)
			target := rules.Rename.Lookup(name)
			if target != name {
				used[name] = true
				changed = true
			}
			if slices.Contains(renamed, any(target)) {
				changed = true
				continue
			}
			renamed = append(renamed, target)
		}
		if !changed {
			return op, nil
		}
		return document.With(op, "tags", renamed), nil
	})
	if err != nil {
		return nil, fmt.Errorf("remap: tags: %w", err)
	}

	for _, old := range rules.Rename.Keys() {
		if !used[old] {
			return nil, fmt.Errorf("remap: tags: %w", oaserrors.Structuralf("tags", "%q must exist", old))
		}
	}
	return out, nil
}

func renameTagList(tags document.Array, rules TagRules, used map[string]bool) (document.Array, error) {
	drop := make(map[string]bool, len(rules.Drop))
	for _, name := range rules.Drop {
		drop[name] = false
	}
	out := make(document.Array, 0, len(tags))
	owner := make(map[string]string, len(tags))
	for i, t := range tags {
		tag, ok := t.(document.Object)
		if !ok {
			return nil, oaserrors.Structuralf(fmt.Sprintf("tags.%d", i), "expected object, found %T", t)
		}
		name, ok := tag["name"].(string)
		if !ok {
			return nil, oaserrors.Structuralf(fmt.Sprintf("tags.%d", i), "tag has no name")
		}
		if _, dropped := drop[name]; dropped {
			drop[name] = true
			used[name] = true
			continue
		}
		target := rules.Rename.Lookup(name)
		if target != name {
			used[name] = true
			tag = document.With(tag, "name", target)
		}
		if prev, dup := owner[target]; dup {
			return nil, &oaserrors.CollisionError{Namespace: "tags", Name: target, Sources: []string{prev, name}}
		}
		owner[target] = name
		out = append(out, tag)
	}
	for _, name := range rules.Drop {
		if !drop[name] {
			return nil, oaserrors.Structuralf("tags", "%q must exist to be dropped", name)
		}
	}
	return out, nil
}
