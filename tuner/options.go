package tuner

import (
	"github.com/erraggy/oasvariant/document"
)

// Options configures Tune. Zero fields take the values of DefaultOptions.
type Options struct {
	// Consumes is the document-wide default request media type list.
	Consumes []string
	// Produces is the document-wide default response media type list.
	Produces []string
	// BinaryMediaType replaces a produces list of exactly "*/*".
	BinaryMediaType string
	// ErrorResponseName is the key of the shared error response.
	ErrorResponseName string
	// ErrorResponse is the shared error response every default response is
	// expected to equal.
	ErrorResponse document.Object
	// InlineDefaultPaths lists paths whose default responses may differ from
	// ErrorResponse. They are left inline.
	InlineDefaultPaths []string
	// DropKeys are top-level keys removed from the document.
	DropKeys []string
}

// DefaultOptions returns the options used when a field is left empty.
func DefaultOptions() Options {
	return Options{
		Consumes:          []string{"application/json"},
		Produces:          []string{"application/json", "application/xml"},
		BinaryMediaType:   "application/octet-stream",
		ErrorResponseName: "Error",
		ErrorResponse: document.Object{
			"description": "Error",
			"schema":      document.DefinitionsOAS2.RefNode("Error"),
		},
		DropKeys: []string{"x-components"},
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Consumes == nil {
		o.Consumes = def.Consumes
	}
	if o.Produces == nil {
		o.Produces = def.Produces
	}
	if o.BinaryMediaType == "" {
		o.BinaryMediaType = def.BinaryMediaType
	}
	if o.ErrorResponseName == "" {
		o.ErrorResponseName = def.ErrorResponseName
	}
	if o.ErrorResponse == nil {
		o.ErrorResponse = def.ErrorResponse
	}
	if o.DropKeys == nil {
		o.DropKeys = def.DropKeys
	}
	return o
}
