package appveyor

import (
	"context"
	"fmt"
	"testing"

	"github.com/erraggy/oasvariant/dialect"
	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) document.Object {
	t.Helper()
	doc, err := document.Load("testdata/" + name)
	require.NoError(t, err)
	require.NoError(t, document.CheckRefs(doc))
	return doc
}

func lookup(t *testing.T, doc document.Object, ref string) any {
	t.Helper()
	v, ok := document.Lookup(doc, ref)
	require.True(t, ok, "missing %s", ref)
	return v
}

func TestRootToUser(t *testing.T) {
	doc := loadFixture(t, "appveyor-v1.yaml")

	out, err := RootToUser(doc)
	require.NoError(t, err)

	assert.Equal(t, "AppVeyor REST API (v2 aka user-level)", lookup(t, out, "#/info/title"))
	assert.Equal(t, "An API token.\n"+UserTokenNotice,
		lookup(t, out, "#/components/securitySchemes/apiToken/description"))
	assert.Equal(t, "https://ci.appveyor.com/api/account/{accountName}", lookup(t, out, "#/servers/0/url"))
	assert.Equal(t, "account-name", lookup(t, out, "#/servers/0/variables/accountName/default"))
	assert.Equal(t, "Name of the account which owns the project.",
		lookup(t, out, "#/servers/0/variables/accountName/description"))

	paths := out["paths"].(document.Object)
	assert.Equal(t, []string{
		"/projects",
		"/projects/status/{accountName}/{projectSlug}",
		"/projects/{projectSlug}",
	}, document.SortedKeys(paths))

	badge := paths["/projects/status/{accountName}/{projectSlug}"].(document.Object)
	assert.Equal(t, doc["servers"], badge["servers"])

	project := paths["/projects/{projectSlug}"].(document.Object)
	assert.Equal(t, document.Array{document.Object{"$ref": "#/components/parameters/projectSlug"}}, project["parameters"])

	require.NoError(t, document.CheckRefs(out))
}

func TestRootToUser_RequiresV1Title(t *testing.T) {
	doc := loadFixture(t, "appveyor-v1.yaml")
	doc, err := document.SetIn(doc, []string{"info", "title"}, "AppVeyor REST API")
	require.NoError(t, err)

	_, err = RootToUser(doc)
	require.ErrorIs(t, err, oaserrors.ErrStructural)
	assert.Contains(t, err.Error(), "info.title")
}

func TestV2ToV1(t *testing.T) {
	doc := loadFixture(t, "appveyor-v2.yaml")

	out, err := V2ToV1(doc)
	require.NoError(t, err)

	assert.Equal(t, "AppVeyor REST API (v1 aka non-user-level)", lookup(t, out, "#/info/title"))
	schemes := lookup(t, out, "#/components/securitySchemes").(document.Object)
	assert.Equal(t, []string{"apiTokenV1"}, document.SortedKeys(schemes))
	assert.Equal(t, V1TokenDescription, lookup(t, out, "#/components/securitySchemes/apiTokenV1/description"))
	assert.Equal(t, document.Array{document.Object{"apiTokenV1": document.Array{}}}, out["security"])

	paths := out["paths"].(document.Object)
	assert.Equal(t, []string{"/account/encrypt", "/projects/status/{statusBadgeId}", "/roles/{roleId}"},
		document.SortedKeys(paths))
	assert.NotContains(t, paths["/account/encrypt"], "parameters")
	assert.Equal(t, document.Array{document.Object{"$ref": "#/components/parameters/roleId"}},
		paths["/roles/{roleId}"].(document.Object)["parameters"])
}

func TestFlattenDiscriminators(t *testing.T) {
	doc := loadFixture(t, "appveyor-v1.yaml")

	out, err := FlattenDiscriminators(doc)
	require.NoError(t, err)

	schemas := lookup(t, out, "#/components/schemas").(document.Object)
	assert.Equal(t, []string{
		"NotificationProviderSettings",
		"NotificationProviderType",
		"NotificationSettings",
		"NotificationSettingsType",
	}, document.SortedKeys(schemas))

	provider := schemas["NotificationProviderSettings"].(document.Object)
	assert.Equal(t, document.Array{"provider", "settings"}, provider["required"])
	assert.Equal(t, document.Object{"$ref": "#/components/schemas/NotificationSettings"},
		provider["properties"].(document.Object)["settings"])
	assert.Equal(t, document.Object{"$ref": "#/components/schemas/NotificationProviderType"},
		provider["properties"].(document.Object)["provider"])
	assert.Equal(t, document.Array{"Email", "Slack"}, schemas["NotificationProviderType"].(document.Object)["enum"])

	settingsProps := schemas["NotificationSettings"].(document.Object)["properties"].(document.Object)
	assert.Equal(t, []string{"$type", "channel", "incomingWebhookUrl", "recipients", "subjectTemplate"},
		document.SortedKeys(settingsProps))
	assert.Equal(t, document.Array{"EmailNotificationSettings", "SlackNotificationSettings"},
		schemas["NotificationSettingsType"].(document.Object)["x-enum-varnames"])

	require.NoError(t, document.CheckRefs(out))
}

func TestFlattenDiscriminators_SettingsAlreadyPresent(t *testing.T) {
	doc := loadFixture(t, "appveyor-v1.yaml")
	doc, err := document.SetIn(doc,
		[]string{"components", "schemas", "NotificationProviderSettings", "properties", "settings"},
		document.Object{"type": "object"})
	require.NoError(t, err)

	_, err = FlattenDiscriminators(doc)
	assert.ErrorIs(t, err, oaserrors.ErrStructural)
}

func TestOAS3ToOAS2(t *testing.T) {
	converted := document.Object{
		"swagger": "2.0",
		"securityDefinitions": document.Object{
			"apiToken": document.Object{"type": "apiKey", "in": "header", "name": "Authorization", "description": "Token."},
		},
		"definitions": document.Object{"Error": document.Object{"type": "object"}},
		"paths": document.Object{
			"/roles": document.Object{
				"get": document.Object{
					"produces": document.Array{"application/json", "application/xml"},
					"responses": document.Object{
						"default": document.Object{"description": "Error", "schema": document.Object{"$ref": "#/definitions/Error"}},
					},
				},
			},
		},
	}
	var gotVersions dialect.Versions
	conv := dialect.ConverterFunc(func(_ context.Context, _ document.Object, v dialect.Versions) (document.Object, error) {
		gotVersions = v
		return converted, nil
	})

	out, err := OAS3ToOAS2(context.Background(), conv, document.Object{"openapi": "3.0.2"})
	require.NoError(t, err)

	assert.Equal(t, dialect.OAS3ToOAS2, gotVersions)
	assert.Equal(t, "Token."+BearerNote, lookup(t, out, "#/securityDefinitions/apiToken/description"))
	assert.Equal(t, document.Object{"$ref": "#/responses/Error"}, lookup(t, out, "#/paths/~1roles/get/responses/default"))
	assert.NotContains(t, lookup(t, out, "#/paths/~1roles/get"), "produces")
	assert.Equal(t, "Token.", lookup(t, converted, "#/securityDefinitions/apiToken/description"))
}

// swaggerFixture builds an OpenAPI 2.0 document that uses every name of the
// legacy rename tables.
func swaggerFixture() document.Object {
	tags := document.Array{document.Object{"name": "User"}}
	var tagNames []string
	for _, name := range SwaggerTags.Rename.Keys() {
		tags = append(tags, document.Object{"name": name})
		tagNames = append(tagNames, name)
	}

	paths := document.Object{}
	for i, id := range SwaggerOperationIDs.Keys() {
		paths[fmt.Sprintf("/ops/%d", i)] = document.Object{
			"get": document.Object{
				"operationId": id,
				"tags":        document.Array{tagNames[i%len(tagNames)]},
				"responses":   document.Object{"200": document.Object{"description": "ok"}},
			},
		}
	}
	paths[BuildLogPath] = document.Object{
		"get": document.Object{
			"operationId": "downloadBuildLog",
			"responses": document.Object{
				"200": document.Object{"description": "log", "schema": document.Object{"type": "string"}},
			},
		},
	}
	paths["/buildjobs/{jobId}/artifacts/{artifactFileName}"] = document.Object{
		"parameters": document.Array{document.Object{"$ref": "#/parameters/artifactFileName"}},
		"get": document.Object{
			"operationId": "getBuildArtifactFile",
			"responses": document.Object{
				"200": document.Object{"description": "file", "schema": document.Object{"type": "string", "format": "binary"}},
			},
		},
	}
	paths["/projects/{accountName}/{projectSlug}/artifacts/{fileName}"] = document.Object{
		"get": document.Object{"operationId": "getProjectArtifactFile", "tags": document.Array{"Projects"}},
	}

	parameters := document.Object{}
	for _, id := range SwaggerParameterIDs.Keys() {
		parameters[id] = document.Object{"name": id, "in": "path", "required": true, "type": "string"}
	}

	definitions := document.Object{
		"Priority": document.Object{"type": "integer", "enum": document.Array{0.0, 1.0}},
		"Job":      document.Object{"properties": document.Object{"priority": document.Object{"$ref": "#/definitions/Priority"}}},
	}
	for _, name := range SwaggerSchemaNames.Keys() {
		definitions[name] = document.Object{"type": "object"}
	}
	definitions["BuildModel"] = document.Object{
		"properties": document.Object{"jobs": document.Object{"items": document.Object{"$ref": "#/definitions/Job"}}},
	}

	return document.Object{
		"swagger":     "2.0",
		"tags":        tags,
		"paths":       paths,
		"parameters":  parameters,
		"definitions": definitions,
	}
}

func TestToSwagger(t *testing.T) {
	doc := swaggerFixture()

	out, err := ToSwagger(doc)
	require.NoError(t, err)

	var tagNames []string
	for _, tag := range out["tags"].(document.Array) {
		tagNames = append(tagNames, tag.(document.Object)["name"].(string))
	}
	assert.ElementsMatch(t, []string{"Build", "Collaborator", "Deployment", "Environment", "Project", "Role", "User"}, tagNames)

	var ids []string
	require.NoError(t, document.EachOperation(out, func(_, _ string, op document.Object) error {
		ids = append(ids, op["operationId"].(string))
		return nil
	}))
	assert.Contains(t, ids, "startDeployment")
	assert.Contains(t, ids, "updateProjectEnvironmentVariables")
	assert.NotContains(t, ids, "createDeployment")

	paths := out["paths"].(document.Object)
	assert.Contains(t, paths, "/buildjobs/{jobId}/artifacts/{fileName}")
	assert.Equal(t, document.Array{"Project"},
		lookup(t, out, "#/paths/~1projects~1{accountName}~1{projectSlug}~1artifacts~1{fileName}/get/tags"))
	assert.Equal(t, document.Object{"type": "file"},
		lookup(t, out, "#/paths/~1buildjobs~1{jobId}~1artifacts~1{fileName}/get/responses/200/schema"))
	assert.Equal(t, document.Object{"type": "file"},
		lookup(t, out, "#/paths/~1buildjobs~1{jobId}~1log/get/responses/200/schema"))

	defs := out["definitions"].(document.Object)
	assert.Contains(t, defs, "Build")
	assert.Contains(t, defs, "WebhookNotificationProviderSettings")
	assert.NotContains(t, defs, "BuildModel")
	assert.NotContains(t, defs, "Priority")
	assert.Equal(t, document.Object{"$ref": "#/definitions/Job"},
		lookup(t, out, "#/definitions/Build/properties/jobs/items"))
	assert.Equal(t, document.Object{"type": "integer", "enum": document.Array{0.0, 1.0}},
		lookup(t, out, "#/definitions/Job/properties/priority"))

	params := out["parameters"].(document.Object)
	assert.Equal(t, []string{"badgeRepoProvider", "deploymentEnvironmentId", "fileName"}, document.SortedKeys(params))

	require.NoError(t, document.CheckRefs(out))
}

func TestToSwagger_MissingTableEntry(t *testing.T) {
	doc := swaggerFixture()
	defs := document.Without(doc["definitions"].(document.Object), "UserModel")
	doc = document.With(doc, "definitions", defs)

	_, err := ToSwagger(doc)
	require.ErrorIs(t, err, oaserrors.ErrStructural)
	assert.Contains(t, err.Error(), "UserModel")
}
