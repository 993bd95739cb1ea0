package document

import (
	"slices"

	"github.com/erraggy/oasvariant/internal/pathutil"
)

// Registry addresses a named collection of definitions inside a document,
// such as "components.schemas" or "definitions".
type Registry struct {
	// Name is used as the collision namespace in errors
	Name string
	// Path is the key path of the container object
	Path []string
	// RefPrefix is the reference prefix of its entries
	RefPrefix string
}

// Well-known registries.
var (
	SchemasOAS3         = Registry{Name: "schemas", Path: []string{"components", "schemas"}, RefPrefix: pathutil.RefPrefixSchemas}
	ParametersOAS3      = Registry{Name: "parameters", Path: []string{"components", "parameters"}, RefPrefix: pathutil.RefPrefixParameters3}
	ResponsesOAS3       = Registry{Name: "responses", Path: []string{"components", "responses"}, RefPrefix: pathutil.RefPrefixResponses3}
	SecuritySchemesOAS3 = Registry{Name: "securitySchemes", Path: []string{"components", "securitySchemes"}, RefPrefix: pathutil.RefPrefixSecuritySchemes}

	DefinitionsOAS2         = Registry{Name: "definitions", Path: []string{"definitions"}, RefPrefix: pathutil.RefPrefixDefinitions}
	ParametersOAS2          = Registry{Name: "parameters", Path: []string{"parameters"}, RefPrefix: pathutil.RefPrefixParameters}
	ResponsesOAS2           = Registry{Name: "responses", Path: []string{"responses"}, RefPrefix: pathutil.RefPrefixResponses}
	SecurityDefinitionsOAS2 = Registry{Name: "securityDefinitions", Path: []string{"securityDefinitions"}, RefPrefix: pathutil.RefPrefixSecurityDefinitions}
)

// Ref returns the reference string of entry name.
func (r Registry) Ref(name string) string {
	return pathutil.JoinPointer(append(slices.Clip(r.Path), name)...)
}

// RefNode returns a reference node pointing at entry name.
func (r Registry) RefNode(name string) Object {
	return NewRef(r.Ref(name))
}

// NameOf returns the entry name a reference targets. Sub-path references
// such as "#/definitions/Pet/properties/id" also report rest.
func (r Registry) NameOf(ref string) (name, rest string, ok bool) {
	return pathutil.RefName(ref, r.RefPrefix)
}

// Entries returns the registry container of doc.
func (r Registry) Entries(doc Object) (Object, error) {
	return ObjectIn(doc, r.Path...)
}

// Replace returns a copy of doc whose registry container is entries.
func (r Registry) Replace(doc Object, entries Object) (Object, error) {
	return SetIn(doc, r.Path, entries)
}

// String returns the dotted container path.
func (r Registry) String() string {
	return JoinPath(r.Path...)
}
