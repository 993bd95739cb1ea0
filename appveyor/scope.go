package appveyor

import (
	"fmt"
	"regexp"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/internal/stringutil"
	"github.com/erraggy/oasvariant/scope"
)

// UserTokenNotice replaces the token warning of the v2 security scheme.
const UserTokenNotice = "**IMPORTANT:** Token must start with `\"v2.\"`.  Tokens that do not\n" +
	"start with `\"v2.\"` must use the non-user-level (aka v1) API."

// V1TokenDescription describes the security scheme added by V2ToV1.
const V1TokenDescription = "A non-user-level API key (not v2).\n" +
	"API token may have been acquired from https://ci.appveyor.com/api-keys before it was updated to provide v2 tokens.  No current source is known.\n" +
	"\n" +
	"**IMPORTANT:** Token must not start with `\"v2.\"`.  Tokens that start with `\"v2.\"` must use the user-level (aka v2) API operations."

var (
	reV1           = regexp.MustCompile(`\bv1\b`)
	reNonUserLevel = regexp.MustCompile(`\bnon-user-level\b`)
	reImportant    = regexp.MustCompile(`\*\*IMPORTANT:\*\*.*`)
	reV2UserLevel  = regexp.MustCompile(`v2 aka user-level`)
)

// RootToUserOptions is the scope lift from the v1 to the v2 address scheme.
var RootToUserOptions = scope.LiftOptions{
	Param:           "accountName",
	Prefix:          "account",
	VariableDefault: "account-name",
}

// V2ToV1Options is the scope lowering from the v2 to the v1 address scheme.
var V2ToV1Options = scope.LowerOptions{
	Param: "account",
	Rewrites: []scope.Rewrite{
		{Pattern: regexp.MustCompile(`^/account/\{account\}/encrypt$`), Replacement: "/account/encrypt"},
		{Pattern: regexp.MustCompile(`^/account/\{account\}/`), Replacement: "/"},
	},
}

// RootToUser converts the v1 document into the v2 document: titles say v2,
// the token description requires v2 tokens and authenticated operations
// move below the account-scoped server URL.
func RootToUser(doc document.Object) (document.Object, error) {
	out, err := rewriteString(doc, []string{"info", "title"},
		func(field, s string) (string, error) {
			s, err := stringutil.EnsureReplace(field, s, reV1, "v2")
			if err != nil {
				return "", err
			}
			return stringutil.EnsureReplace(field, s, reNonUserLevel, "user-level")
		})
	if err != nil {
		return nil, fmt.Errorf("appveyor: root to user: %w", err)
	}
	out, err = rewriteString(out, []string{"components", "securitySchemes", "apiToken", "description"},
		func(field, s string) (string, error) {
			return stringutil.EnsureReplace(field, s, reImportant, UserTokenNotice)
		})
	if err != nil {
		return nil, fmt.Errorf("appveyor: root to user: %w", err)
	}
	out, err = scope.Lift(out, RootToUserOptions)
	if err != nil {
		return nil, fmt.Errorf("appveyor: root to user: %w", err)
	}
	return out, nil
}

// V2ToV1 converts a document written against the v2 address scheme to v1.
func V2ToV1(doc document.Object) (document.Object, error) {
	out, err := rewriteString(doc, []string{"info", "title"},
		func(field, s string) (string, error) {
			return stringutil.EnsureReplace(field, s, reV2UserLevel, "v1 aka non-user-level")
		})
	if err != nil {
		return nil, fmt.Errorf("appveyor: v2 to v1: %w", err)
	}

	schemes, err := document.SecuritySchemesOAS3.Entries(out)
	if err != nil {
		return nil, fmt.Errorf("appveyor: v2 to v1: %w", err)
	}
	schemes = document.Without(schemes, "apiTokenV2")
	schemes = document.With(schemes, "apiTokenV1", document.Object{
		"description": V1TokenDescription,
		"type":        "http",
		"scheme":      "bearer",
	})
	if out, err = document.SecuritySchemesOAS3.Replace(out, schemes); err != nil {
		return nil, fmt.Errorf("appveyor: v2 to v1: %w", err)
	}
	out = document.With(out, "security", document.Array{
		document.Object{"apiTokenV1": document.Array{}},
	})

	out, err = scope.Lower(out, V2ToV1Options)
	if err != nil {
		return nil, fmt.Errorf("appveyor: v2 to v1: %w", err)
	}
	return out, nil
}

// rewriteString replaces the string at keys with fn's result.
func rewriteString(doc document.Object, keys []string, fn func(field, s string) (string, error)) (document.Object, error) {
	s, err := document.StringIn(doc, keys...)
	if err != nil {
		return nil, err
	}
	field := document.JoinPath(keys...)
	repl, err := fn(field, s)
	if err != nil {
		return nil, err
	}
	if repl == s {
		return doc, nil
	}
	return document.SetIn(doc, keys, repl)
}
