package scope

import (
	"fmt"
	"regexp"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/internal/pathutil"
	"github.com/erraggy/oasvariant/oaserrors"
)

// Rewrite is one template rewrite rule.
type Rewrite struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// LowerOptions configures Lower.
type LowerOptions struct {
	// Rewrites are applied to every template in order.
	Rewrites []Rewrite
	// Param is the scope parameter: its registry key and placeholder name.
	Param string
	// Registry holds the scope parameter definition. Defaults to the OAS 3
	// parameters registry.
	Registry *document.Registry
}

// Lower rewrites path templates by the ordered rules of opts. When a
// rewritten template no longer mentions the scope placeholder, the path
// item's reference to the scope parameter is removed; the item must have
// had one.
func Lower(doc document.Object, opts LowerOptions) (document.Object, error) {
	out, err := lower(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("scope: lower: %w", err)
	}
	return out, nil
}

func lower(doc document.Object, opts LowerOptions) (document.Object, error) {
	reg := document.ParametersOAS3
	if opts.Registry != nil {
		reg = *opts.Registry
	}
	ref := reg.Ref(opts.Param)

	paths, err := document.ObjectIn(doc, "paths")
	if err != nil {
		return nil, err
	}
	newPaths := make(document.Object, len(paths))
	owner := make(map[string]string, len(paths))
	for _, path := range document.SortedKeys(paths) {
		newPath := path
		for _, rw := range opts.Rewrites {
			newPath = rw.Pattern.ReplaceAllString(newPath, rw.Replacement)
		}

		item := paths[path]
		if newPath != path && !pathutil.HasTemplateParam(newPath, opts.Param) {
			obj, ok := item.(document.Object)
			if !ok {
				return nil, oaserrors.Structuralf(document.JoinPath("paths", path), "expected object, found %T", item)
			}
			before, _ := obj["parameters"].(document.Array)
			filtered := filterParams(obj, ref, "")
			after, _ := filtered["parameters"].(document.Array)
			if len(after) == len(before) {
				return nil, oaserrors.Structuralf(document.JoinPath("paths", path, "parameters"),
					"expected a reference to %s", ref)
			}
			item = filtered
		}

		if prev, dup := owner[newPath]; dup {
			return nil, &oaserrors.CollisionError{
				Namespace: "paths",
				Name:      newPath,
				Sources:   []string{prev, path},
				Message:   "two path items would share one template",
			}
		}
		owner[newPath] = path
		newPaths[newPath] = item
	}
	return document.With(doc, "paths", newPaths), nil
}
