package appveyor

import (
	"fmt"

	"github.com/erraggy/oasvariant/compat"
	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/remap"
)

// BuildLogPath serves the build log, which the legacy names model as a file.
const BuildLogPath = "/buildjobs/{jobId}/log"

// ToSwagger converts an AppVeyor OpenAPI 2.0 document to the names and
// shapes of the legacy appveyor-swagger document.
func ToSwagger(doc document.Object) (document.Object, error) {
	steps := []struct {
		name string
		fn   func(document.Object) (document.Object, error)
	}{
		{"tags", func(d document.Object) (document.Object, error) {
			out, err := remap.Tags(d, SwaggerTags)
			if err != nil {
				return nil, err
			}
			return compat.OverrideTags(out, SwaggerTagOverrides)
		}},
		{"parameters", func(d document.Object) (document.Object, error) {
			return remap.Parameters(d, document.ParametersOAS2, SwaggerParameterIDs, SwaggerParameterNames)
		}},
		{"operation ids", func(d document.Object) (document.Object, error) {
			return remap.OperationIDs(d, SwaggerOperationIDs)
		}},
		{"schema names", func(d document.Object) (document.Object, error) {
			return remap.Registry(d, document.DefinitionsOAS2, SwaggerSchemaNames)
		}},
		{"file responses", func(d document.Object) (document.Object, error) {
			out, err := compat.BinaryToFile(d)
			if err != nil {
				return nil, err
			}
			return compat.ReplaceResponseSchema(out, BuildLogPath, "get", "200",
				document.Object{"type": "string"}, compat.FileSchema)
		}},
		{"enums", func(d document.Object) (document.Object, error) {
			return compat.InlineNonStringEnums(d, document.DefinitionsOAS2)
		}},
	}

	out := doc
	for _, step := range steps {
		var err error
		if out, err = step.fn(out); err != nil {
			return nil, fmt.Errorf("appveyor: to swagger: %s: %w", step.name, err)
		}
	}
	return out, nil
}
