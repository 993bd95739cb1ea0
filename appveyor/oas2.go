package appveyor

import (
	"context"
	"fmt"

	"github.com/erraggy/oasvariant/dialect"
	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/tuner"
)

// BearerNote is appended to the token description of OpenAPI 2.0
// documents, which cannot express bearer authentication.
const BearerNote = "\n\nAppVeyor requires `\"Bearer <token>\"`in the `Authorization` header.\n" +
	"Since [bearer token authentication support is not explicitly supported in\n" +
	"  OpenAPI 2.0](https://github.com/OAI/OpenAPI-Specification/issues/583), client\n" +
	"code will vary.  Clients created with [OpenAPI\n" +
	"Generator](https://github.com/OpenAPITools/openapi-generator) or\n" +
	"[Swagger Codegen](https://github.com/swagger-api/swagger-codegen) should\n" +
	"set `apiKeyPrefix` to `\"Bearer\"` and set `apiKey` to the token.  Clients\n" +
	"generated using other tools may need to set `apiKey` to the string\n" +
	"`\"Bearer <token>\"` or set the `Authorization` header explicitly."

// TunerOptions are the tuner settings for AppVeyor documents.
var TunerOptions = tuner.Options{}

// OAS3ToOAS2 converts an AppVeyor OpenAPI 3 document to OpenAPI 2.0 with
// conv and tunes the result.
func OAS3ToOAS2(ctx context.Context, conv dialect.Converter, doc document.Object) (document.Object, error) {
	converted, err := conv.Convert(ctx, doc, dialect.OAS3ToOAS2)
	if err != nil {
		return nil, fmt.Errorf("appveyor: oas3 to oas2: %w", err)
	}
	out, err := rewriteString(converted, []string{"securityDefinitions", "apiToken", "description"},
		func(_, s string) (string, error) { return s + BearerNote, nil })
	if err != nil {
		return nil, fmt.Errorf("appveyor: oas3 to oas2: %w", err)
	}
	out, err = tuner.Tune(out, TunerOptions)
	if err != nil {
		return nil, fmt.Errorf("appveyor: oas3 to oas2: %w", err)
	}
	return out, nil
}
