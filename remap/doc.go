// Package remap renames identifiers of an OpenAPI document through explicit
// old-to-new tables.
//
// Four namespaces are supported: entries of a definition registry
// (schemas, parameters, responses), operation ids, tags, and parameter
// names together with the path template placeholders that mention them.
// Every rename keeps the document referentially intact: references into a
// renamed registry entry, including references with a trailing sub-path and
// discriminator mapping values, are rewritten in the same pass.
//
// Tables are total: a key that names nothing in the document is a
// structural error, and a rename that produces two entries with one name is
// a collision.
//
//	out, err := remap.Registry(doc, document.DefinitionsOAS2, remap.Table{
//	    "BuildModel": "Build",
//	})
package remap
