// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides helpers for JSON pointer references and path
// templates in OpenAPI documents.
package pathutil

import "strings"

// OAS 2.0 reference prefixes
const (
	RefPrefixDefinitions         = "#/definitions/"
	RefPrefixParameters          = "#/parameters/"
	RefPrefixResponses           = "#/responses/"
	RefPrefixSecurityDefinitions = "#/securityDefinitions/"
)

// OAS 3.x reference prefixes
const (
	RefPrefixSchemas         = "#/components/schemas/"
	RefPrefixParameters3     = "#/components/parameters/"
	RefPrefixResponses3      = "#/components/responses/"
	RefPrefixSecuritySchemes = "#/components/securitySchemes/"
)

var (
	tokenEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	tokenUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// EscapeToken escapes a single JSON pointer reference token (RFC 6901).
func EscapeToken(s string) string {
	return tokenEscaper.Replace(s)
}

// UnescapeToken reverses EscapeToken.
func UnescapeToken(s string) string {
	return tokenUnescaper.Replace(s)
}

// SplitPointer splits a local reference ("#/a/b~1c") into unescaped tokens.
// ok is false when ref is not a local reference.
func SplitPointer(ref string) (tokens []string, ok bool) {
	if ref == "#" {
		return nil, true
	}
	if !strings.HasPrefix(ref, "#/") {
		return nil, false
	}
	parts := strings.Split(ref[2:], "/")
	for i, p := range parts {
		parts[i] = UnescapeToken(p)
	}
	return parts, true
}

// JoinPointer builds a local reference from unescaped tokens.
func JoinPointer(tokens ...string) string {
	var b strings.Builder
	b.WriteString("#")
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapeToken(t))
	}
	return b.String()
}

// RefName extracts the entry name from a reference under prefix.
// For "#/definitions/Pet/properties/id" with prefix "#/definitions/" it
// returns name "Pet" and rest "/properties/id".
func RefName(ref, prefix string) (name, rest string, ok bool) {
	if !strings.HasPrefix(ref, prefix) {
		return "", "", false
	}
	tail := ref[len(prefix):]
	if i := strings.IndexByte(tail, '/'); i >= 0 {
		return UnescapeToken(tail[:i]), tail[i:], true
	}
	return UnescapeToken(tail), "", true
}
