// Package oasvariant derives the published variants of the AppVeyor REST
// API description from a single OpenAPI 3 source document.
//
// # Overview
//
// Every transformation is a pure function from one JSON-shaped document to
// another. Documents are plain map[string]any / []any trees that are never
// mutated in place: a pass copies only the containers on the path to what it
// changes and shares everything else.
//
// The library consists of these packages:
//
//   - document: the tree model, copy-on-write helpers, $ref rewriting and
//     the JSON/YAML codec
//   - remap: total renaming of registries, operation ids, tags and parameters
//   - flatten: replaces a discriminated union with a single enum-tagged schema
//   - scope: lifts a path parameter into server variables and lowers it back
//   - tuner: factors a converted OpenAPI 2.0 document into shared defaults
//   - compat: small shape rewrites required by legacy consumers
//   - dialect: the OpenAPI 3 to 2.0 converter collaborator
//   - appveyor: the AppVeyor-specific compositions and rename tables
//   - pipeline: builds all variants and writes them out
//   - oaserrors: the error taxonomy shared by every package
//
// # Quick Start
//
// Build every variant and write them to a directory:
//
//	doc, err := document.Load("openapi3-v1.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	variants, err := pipeline.BuildAll(ctx, doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	code, err := pipeline.WriteAll("dist", variants, nil)
//
// Apply a single pass:
//
//	flat, err := appveyor.FlattenDiscriminators(doc)
//
// # Command Line
//
// The oasvariant command exposes each pass as a subcommand reading a
// document from a file or stdin and writing to a file or stdout, a build
// subcommand that writes every variant to a directory, and an MCP server.
package oasvariant
