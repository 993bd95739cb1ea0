// Package scope moves an account scope between path templates and server
// URLs.
//
// An API can address an account either with a path segment
// ("/account/{account}/projects") or through its base address
// ("https://host/api/account/{account}" + "/projects"). Lift converts the
// first scheme into the second and Lower converts back. Both fail on any
// output path key that is already taken; operations are never silently
// overwritten.
package scope
