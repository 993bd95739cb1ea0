package pipeline

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/erraggy/oasvariant/appveyor"
	"github.com/erraggy/oasvariant/dialect"
	"github.com/erraggy/oasvariant/document"
)

// Pass is a single named document transformation.
type Pass func(ctx context.Context, doc document.Object) (document.Object, error)

// Pass names.
const (
	PassFlatten    = "flatten"
	PassRootToUser = "root-to-user"
	PassV2ToV1     = "v2-to-v1"
	PassOAS3ToOAS2 = "oas3-to-oas2"
	PassSwagger    = "swagger"
)

func pure(fn func(document.Object) (document.Object, error)) Pass {
	return func(ctx context.Context, doc document.Object) (document.Object, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return fn(doc)
	}
}

// Passes returns the named passes. conv is used by the OpenAPI 3 to 2.0
// pass.
func Passes(conv dialect.Converter) map[string]Pass {
	return map[string]Pass{
		PassFlatten:    pure(appveyor.FlattenDiscriminators),
		PassRootToUser: pure(appveyor.RootToUser),
		PassV2ToV1:     pure(appveyor.V2ToV1),
		PassOAS3ToOAS2: func(ctx context.Context, doc document.Object) (document.Object, error) {
			return appveyor.OAS3ToOAS2(ctx, conv, doc)
		},
		PassSwagger: pure(appveyor.ToSwagger),
	}
}

// PassNames returns the names accepted by LookupPass, sorted.
func PassNames() []string {
	return slices.Sorted(maps.Keys(Passes(nil)))
}

// LookupPass returns the pass called name.
func LookupPass(name string, conv dialect.Converter) (Pass, error) {
	pass, ok := Passes(conv)[name]
	if !ok {
		return nil, fmt.Errorf("pipeline: unknown pass %q (valid: %v)", name, PassNames())
	}
	return pass, nil
}
