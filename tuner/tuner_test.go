package tuner

import (
	"testing"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const convertedYAML = `
swagger: "2.0"
x-components:
  parameters: {}
definitions:
  Error:
    type: object
paths:
  /buildjobs/{jobId}/log:
    get:
      operationId: getBuildLog
      produces: ["*/*"]
      parameters:
        - name: jobId
          in: path
          required: true
          type: string
      responses:
        "200":
          description: ok
        default:
          description: Error
          schema:
            $ref: "#/definitions/Error"
    delete:
      operationId: deleteBuildLog
      consumes: [application/json]
      produces: [application/xml, application/json]
      parameters:
        - name: jobId
          in: path
          required: true
          type: string
        - name: force
          in: query
          type: boolean
        - name: body
          in: body
          schema:
            type: object
      responses:
        "204":
          description: deleted
`

func load(t *testing.T) document.Object {
	t.Helper()
	doc, err := document.Decode([]byte(convertedYAML))
	require.NoError(t, err)
	return doc
}

func TestTune(t *testing.T) {
	doc := load(t)

	out, err := Tune(doc, Options{})
	require.NoError(t, err)

	assert.Equal(t, document.Array{"application/json"}, out["consumes"])
	assert.Equal(t, document.Array{"application/json", "application/xml"}, out["produces"])
	assert.NotContains(t, out, "x-components")
	assert.Equal(t, document.Object{
		"description": "Error",
		"schema":      document.Object{"$ref": "#/definitions/Error"},
	}, out["responses"].(document.Object)["Error"])

	item := out["paths"].(document.Object)["/buildjobs/{jobId}/log"].(document.Object)
	assert.Equal(t, document.Array{document.Object{"$ref": "#/parameters/jobId"}}, item["parameters"],
		"the identical jobId declarations are hoisted once")

	get := item["get"].(document.Object)
	assert.NotContains(t, get, "parameters")
	assert.Equal(t, document.Array{"application/octet-stream"}, get["produces"])
	assert.Equal(t, document.Object{"$ref": "#/responses/Error"}, get["responses"].(document.Object)["default"])

	del := item["delete"].(document.Object)
	assert.NotContains(t, del, "consumes")
	assert.NotContains(t, del, "produces")
	params := del["parameters"].(document.Array)
	require.Len(t, params, 2)
	assert.Equal(t, document.Object{"$ref": "#/parameters/force"}, params[0])
	assert.Equal(t, "body", params[1].(document.Object)["in"])

	registry := out["parameters"].(document.Object)
	assert.Equal(t, []string{"force", "jobId"}, document.SortedKeys(registry))

	require.NoError(t, document.CheckRefs(out))
	assert.Contains(t, doc, "x-components", "input is not mutated")
}

func TestTune_Idempotent(t *testing.T) {
	once, err := Tune(load(t), Options{})
	require.NoError(t, err)

	twice, err := Tune(once, Options{})
	require.NoError(t, err)
	assert.True(t, document.Equal(once, twice), document.Diff(once, twice))
}

func TestTune_ConflictingParameter(t *testing.T) {
	doc := load(t)
	doc, err := document.SetIn(doc, []string{"paths", "/buildjobs/{jobId}/log", "delete", "parameters"}, document.Array{
		document.Object{"name": "jobId", "in": "path", "required": true, "type": "integer"},
	})
	require.NoError(t, err)

	_, err = Tune(doc, Options{})
	require.ErrorIs(t, err, oaserrors.ErrStructural)
	assert.Contains(t, err.Error(), "jobId")
}

func TestTune_DefaultResponse(t *testing.T) {
	doc := load(t)
	doc, err := document.SetIn(doc, []string{"paths", "/buildjobs/{jobId}/log", "get", "responses", "default"},
		document.Object{"description": "Something else"})
	require.NoError(t, err)

	_, err = Tune(doc, Options{})
	require.ErrorIs(t, err, oaserrors.ErrStructural)

	out, err := Tune(doc, Options{InlineDefaultPaths: []string{"/buildjobs/{jobId}/log"}})
	require.NoError(t, err)
	def, _ := document.Lookup(out, "#/paths/~1buildjobs~1{jobId}~1log/get/responses/default")
	assert.Equal(t, document.Object{"description": "Something else"}, def)
}

func TestTune_MediaRange(t *testing.T) {
	doc := load(t)
	doc, err := document.SetIn(doc, []string{"paths", "/buildjobs/{jobId}/log", "delete", "consumes"},
		document.Array{"application/*"})
	require.NoError(t, err)

	_, err = Tune(doc, Options{})
	assert.ErrorIs(t, err, oaserrors.ErrStructural)
}

func TestTune_ExistingDefaultsDiffer(t *testing.T) {
	doc := document.With(load(t), "consumes", document.Array{"text/plain"})
	_, err := Tune(doc, Options{})
	assert.ErrorIs(t, err, oaserrors.ErrStructural)
}
