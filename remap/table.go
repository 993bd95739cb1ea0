package remap

import (
	"maps"
	"slices"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/oaserrors"
)

// Table maps old identifiers to new ones.
type Table map[string]string

// Keys returns the old identifiers in lexical order.
func (t Table) Keys() []string {
	return slices.Sorted(maps.Keys(t))
}

// Lookup returns the new name for name, or name itself when t has no entry.
func (t Table) Lookup(name string) string {
	if renamed, ok := t[name]; ok {
		return renamed
	}
	return name
}

// Invert returns the new-to-old table. Two keys mapping to one name make
// the table non-invertible.
func (t Table) Invert() (Table, error) {
	inv := make(Table, len(t))
	for _, old := range t.Keys() {
		renamed := t[old]
		if prev, ok := inv[renamed]; ok {
			return nil, &oaserrors.CollisionError{
				Namespace: "table",
				Name:      renamed,
				Sources:   []string{prev, old},
				Message:   "table is not invertible",
			}
		}
		inv[renamed] = old
	}
	return inv, nil
}

// renameKeys returns entries with its keys renamed by table. Every table key
// must name an entry and no two entries may end up with the same name.
func renameKeys(namespace string, entries document.Object, table Table) (document.Object, error) {
	for _, old := range table.Keys() {
		if _, ok := entries[old]; !ok {
			return nil, oaserrors.Structuralf(namespace, "%q must exist", old)
		}
	}
	out := make(document.Object, len(entries))
	from := make(map[string]string, len(entries))
	for _, name := range document.SortedKeys(entries) {
		target := table.Lookup(name)
		if prev, ok := from[target]; ok {
			return nil, &oaserrors.CollisionError{
				Namespace: namespace,
				Name:      target,
				Sources:   []string{prev, name},
			}
		}
		from[target] = name
		out[target] = entries[name]
	}
	return out, nil
}
