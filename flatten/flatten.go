// Package flatten replaces discriminated unions with flat schemas.
//
// A parent schema with a discriminator is rewritten so that the
// discriminator property is a string enum of the mapping keys; the subtype
// schemas are removed and, optionally, their own properties are promoted
// onto the parent. Consumers that cannot model polymorphism then see one
// object type with a "kind" field.
package flatten

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/oaserrors"
)

// Options configures Discriminator.
type Options struct {
	// PromoteProperties copies each subtype's own properties onto the parent.
	PromoteProperties bool
}

// Discriminator flattens the discriminated schema parent of reg, adding the
// string enum schema enumName for its discriminator property.
func Discriminator(doc document.Object, reg document.Registry, parent, enumName string, opts Options) (document.Object, error) {
	out, err := flattenSchema(doc, reg, parent, enumName, opts)
	if err != nil {
		return nil, fmt.Errorf("flatten: %s: %w", parent, err)
	}
	return out, nil
}

func flattenSchema(doc document.Object, reg document.Registry, parent, enumName string, opts Options) (document.Object, error) {
	schemas, err := reg.Entries(doc)
	if err != nil {
		return nil, err
	}
	loc := document.JoinPath(reg.String(), parent)
	parentSchema, ok := schemas[parent].(document.Object)
	if !ok {
		return nil, oaserrors.Structuralf(loc, "schema must exist")
	}
	disc, ok := parentSchema["discriminator"].(document.Object)
	if !ok {
		return nil, oaserrors.Structuralf(loc, "schema has no discriminator object")
	}
	propertyName, ok := disc["propertyName"].(string)
	if !ok || propertyName == "" {
		return nil, oaserrors.Structuralf(loc+".discriminator", "missing propertyName")
	}
	mapping, ok := disc["mapping"].(document.Object)
	if !ok || len(mapping) == 0 {
		return nil, oaserrors.Structuralf(loc+".discriminator", "missing or empty mapping")
	}
	if _, exists := schemas[enumName]; exists {
		return nil, &oaserrors.CollisionError{
			Namespace: reg.Name,
			Name:      enumName,
			Message:   "enum schema already exists",
		}
	}

	// Mapping keys are unique, so the enum has one value per entry.
	values := document.SortedKeys(mapping)
	enum := make(document.Array, 0, len(values))
	for _, v := range values {
		enum = append(enum, v)
	}

	props := document.Object{}
	if existing, ok := parentSchema["properties"].(document.Object); ok {
		props = document.Clone(existing)
	}
	props[propertyName] = reg.RefNode(enumName)

	removed := make(map[string]bool, len(mapping))
	for _, v := range values {
		child, err := mappingTarget(reg, mapping[v])
		if err != nil {
			return nil, oaserrors.Structuralf(loc+".discriminator.mapping."+v, "%v", err)
		}
		if child == parent {
			return nil, oaserrors.Structuralf(loc+".discriminator.mapping."+v, "mapping refers to the parent itself")
		}
		childSchema, ok := schemas[child].(document.Object)
		if !ok {
			return nil, oaserrors.Structuralf(document.JoinPath(reg.String(), child), "subtype schema must exist")
		}
		if opts.PromoteProperties {
			if err := promote(props, childSchema, child, parent); err != nil {
				return nil, err
			}
		}
		removed[child] = true
	}

	newParent := document.Without(parentSchema, "discriminator")
	newParent = document.With(newParent, "properties", props)
	newParent = dropSubtypeAlternatives(newParent, reg, removed)

	newSchemas := document.Clone(schemas)
	newSchemas[parent] = newParent
	newSchemas[enumName] = document.Object{
		"type": "string",
		"enum": enum,
	}
	for child := range removed {
		delete(newSchemas, child)
	}
	out, err := reg.Replace(doc, newSchemas)
	if err != nil {
		return nil, err
	}

	var redirectErr error
	out = document.RewriteRefsIn(out, func(ref document.Object) any {
		s, _ := document.RefOf(ref)
		name, rest, ok := reg.NameOf(s)
		if !ok || !removed[name] {
			return ref
		}
		if rest != "" && redirectErr == nil {
			redirectErr = oaserrors.Structuralf("", "reference %q points inside removed subtype %q", s, name)
		}
		return document.With(ref, document.RefKey, reg.Ref(parent))
	})
	if redirectErr != nil {
		return nil, redirectErr
	}
	return out, nil
}

// ownProperties returns the properties a subtype declares itself: its
// "properties" and those of inline allOf members. Referenced members, the
// parent among them, are inherited.
func ownProperties(child document.Object) []document.Object {
	var own []document.Object
	if p, ok := child["properties"].(document.Object); ok {
		own = append(own, p)
	}
	allOf, _ := child["allOf"].(document.Array)
	for _, member := range allOf {
		m, ok := member.(document.Object)
		if !ok {
			continue
		}
		if document.IsRef(m) {
			continue
		}
		if p, ok := m["properties"].(document.Object); ok {
			own = append(own, p)
		}
	}
	return own
}

func promote(props, childSchema document.Object, child, parent string) error {
	for _, set := range ownProperties(childSchema) {
		for _, name := range document.SortedKeys(set) {
			prop := set[name]
			existing, ok := props[name]
			if !ok {
				props[name] = prop
				continue
			}
			if !document.Equal(existing, prop) {
				return &oaserrors.StructuralError{
					Path: child + ".properties." + name,
					Message: fmt.Sprintf("can't merge property %q of %s into %s (-parent +subtype):\n%s",
						name, child, parent, document.Diff(existing, prop)),
				}
			}
		}
	}
	return nil
}

// dropSubtypeAlternatives removes oneOf/anyOf members of the parent that
// reference removed subtypes. An emptied list is removed.
func dropSubtypeAlternatives(schema document.Object, reg document.Registry, removed map[string]bool) document.Object {
	out := schema
	for _, key := range []string{"oneOf", "anyOf"} {
		list, ok := schema[key].(document.Array)
		if !ok {
			continue
		}
		kept := make(document.Array, 0, len(list))
		for _, member := range list {
			if ref, isRef := document.RefOf(member); isRef {
				if name, rest, ok := reg.NameOf(ref); ok && rest == "" && removed[name] {
					continue
				}
			}
			kept = append(kept, member)
		}
		switch {
		case len(kept) == len(list):
		case len(kept) == 0:
			out = document.Without(out, key)
		default:
			out = document.With(out, key, kept)
		}
	}
	return out
}

// mappingTarget resolves a discriminator mapping value, either a reference
// into reg or a bare schema name, to the schema name.
func mappingTarget(reg document.Registry, v any) (string, error) {
	target, ok := v.(string)
	if !ok || target == "" {
		return "", fmt.Errorf("mapping value must be a non-empty string, found %T", v)
	}
	if !strings.HasPrefix(target, "#") && !strings.Contains(target, "/") {
		return target, nil
	}
	child, rest, isRef := reg.NameOf(target)
	if !isRef || rest != "" {
		return "", fmt.Errorf("%q is not a reference into %s", target, reg)
	}
	return child, nil
}
