// Package pipeline builds every published variant of the AppVeyor API
// document from one source document and writes them out.
//
// The variants are the product of three choices: OpenAPI version (3 or
// 2.0), API version (v1 or v2 addressing) and whether discriminated unions
// are flattened. They are named "openapi{3|2}-v{1|2}[-flat]". A ninth
// variant, "swagger", uses the names of the legacy appveyor-swagger
// document and is derived from "openapi2-v1-flat".
//
// The OpenAPI 3 variants are computed sequentially; their conversions to
// OpenAPI 2.0 run in parallel. The first failure cancels the others and no
// variant is returned.
package pipeline

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/erraggy/oasvariant/appveyor"
	"github.com/erraggy/oasvariant/document"
	"golang.org/x/sync/errgroup"
)

// SwaggerVariant is the name of the legacy-compatible variant.
const SwaggerVariant = "swagger"

// Variant identifies one output document.
type Variant struct {
	OpenAPI int
	API     int
	Flat    bool
}

// Name returns the variant's output name, e.g. "openapi2-v1-flat".
func (v Variant) Name() string {
	name := fmt.Sprintf("openapi%d-v%d", v.OpenAPI, v.API)
	if v.Flat {
		name += "-flat"
	}
	return name
}

// Names returns the names of every variant BuildAll produces, sorted.
func Names() []string {
	var names []string
	for _, oas := range []int{3, 2} {
		for _, api := range []int{1, 2} {
			for _, flat := range []bool{false, true} {
				names = append(names, Variant{OpenAPI: oas, API: api, Flat: flat}.Name())
			}
		}
	}
	names = append(names, SwaggerVariant)
	slices.Sort(names)
	return names
}

type built struct {
	Variant
	doc document.Object
}

// BuildAll derives every variant from doc, an AppVeyor v1 OpenAPI 3
// document. The result is keyed by variant name.
func BuildAll(ctx context.Context, doc document.Object, opts ...Option) (map[string]document.Object, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	log := cfg.logger

	variants := []built{{Variant: Variant{OpenAPI: 3, API: 1}, doc: doc}}

	flat, err := appveyor.FlattenDiscriminators(doc)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	variants = append(variants, built{Variant: Variant{OpenAPI: 3, API: 1, Flat: true}, doc: flat})

	for _, v := range variants[:2] {
		user, err := appveyor.RootToUser(v.doc)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %s: %w", v.Name(), err)
		}
		variants = append(variants, built{Variant: Variant{OpenAPI: 3, API: 2, Flat: v.Flat}, doc: user})
	}

	converted := make([]built, len(variants))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.parallelism)
	for i, v := range variants {
		target := Variant{OpenAPI: 2, API: v.API, Flat: v.Flat}
		g.Go(func() error {
			log.Debug("converting variant", "variant", target.Name())
			out, err := appveyor.OAS3ToOAS2(gctx, cfg.converter, v.doc)
			if err != nil {
				return fmt.Errorf("pipeline: %s: %w", target.Name(), err)
			}
			converted[i] = built{Variant: target, doc: out}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string]document.Object, len(variants)*2+1)
	for _, v := range slices.Concat(variants, converted) {
		result[v.Name()] = v.doc
	}
	base := Variant{OpenAPI: 2, API: 1, Flat: true}.Name()
	swagger, err := appveyor.ToSwagger(result[base])
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", SwaggerVariant, err)
	}
	result[SwaggerVariant] = swagger

	if cfg.checkRefs {
		for _, name := range slices.Sorted(maps.Keys(result)) {
			if err := document.CheckRefs(result[name]); err != nil {
				return nil, fmt.Errorf("pipeline: %s: %w", name, err)
			}
		}
	}

	selected, err := Select(result, cfg.only)
	if err != nil {
		return nil, err
	}
	log.Info("built variants", "count", len(selected))
	return selected, nil
}

// Select returns the variants whose names match any of patterns. No
// patterns selects everything.
func Select(variants map[string]document.Object, patterns []string) (map[string]document.Object, error) {
	if len(patterns) == 0 {
		return variants, nil
	}
	out := make(map[string]document.Object)
	for name, doc := range variants {
		for _, p := range patterns {
			ok, err := doublestar.Match(p, name)
			if err != nil {
				return nil, fmt.Errorf("pipeline: variant pattern %q: %w", p, err)
			}
			if ok {
				out[name] = doc
				break
			}
		}
	}
	return out, nil
}
