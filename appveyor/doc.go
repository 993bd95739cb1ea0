// Package appveyor composes the generic passes into the transformations
// that derive the published AppVeyor API documents from the hand-written
// OpenAPI 3 source.
//
// The source describes the v1 ("non-user-level") API, where the account is
// implied by the token. From it are derived:
//
//   - RootToUser: the v2 ("user-level") API, where authenticated
//     operations are served below "/account/{accountName}"
//   - V2ToV1: the inverse, for a document written against v2
//   - FlattenDiscriminators: a variant without polymorphic schemas
//   - OAS3ToOAS2: an OpenAPI 2.0 variant
//   - ToSwagger: an OpenAPI 2.0 variant using the names of the legacy
//     appveyor-swagger package
//
// Every rule here is specific to the AppVeyor document and asserts the
// shape it relies on.
package appveyor
