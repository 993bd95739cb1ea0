package flatten

import (
	"regexp"
	"testing"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notificationsYAML = `
openapi: 3.0.2
paths:
  /notifications:
    get:
      responses:
        "200":
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/EmailSettings"
components:
  schemas:
    Settings:
      type: object
      required: [kind]
      properties:
        kind:
          type: string
        enabled:
          type: boolean
      discriminator:
        propertyName: kind
        mapping:
          slack: "#/components/schemas/SlackSettings"
          email: "#/components/schemas/EmailSettings"
    SlackSettings:
      allOf:
        - $ref: "#/components/schemas/Settings"
        - type: object
          properties:
            channel:
              type: string
            enabled:
              type: boolean
    EmailSettings:
      allOf:
        - $ref: "#/components/schemas/Settings"
        - type: object
          properties:
            from:
              type: string
`

func load(t *testing.T) document.Object {
	t.Helper()
	doc, err := document.Decode([]byte(notificationsYAML))
	require.NoError(t, err)
	return doc
}

func TestDiscriminator(t *testing.T) {
	doc := load(t)

	out, err := Discriminator(doc, document.SchemasOAS3, "Settings", "SettingsType", Options{})
	require.NoError(t, err)

	schemas := out["components"].(document.Object)["schemas"].(document.Object)
	assert.NotContains(t, schemas, "SlackSettings")
	assert.NotContains(t, schemas, "EmailSettings")
	assert.Equal(t, document.Object{
		"type": "string",
		"enum": document.Array{"email", "slack"},
	}, schemas["SettingsType"])

	parent := schemas["Settings"].(document.Object)
	assert.NotContains(t, parent, "discriminator")
	props := parent["properties"].(document.Object)
	assert.Equal(t, document.Object{"$ref": "#/components/schemas/SettingsType"}, props["kind"])
	assert.NotContains(t, props, "channel")

	require.NoError(t, document.CheckRefs(out), "references to removed subtypes are redirected")
	ref, _ := document.Lookup(out, "#/paths/~1notifications/get/responses/200/content/application~1json/schema/$ref")
	assert.Equal(t, "#/components/schemas/Settings", ref)

	assert.Contains(t, doc["components"].(document.Object)["schemas"], "SlackSettings", "input is not mutated")
}

func TestDiscriminator_Promote(t *testing.T) {
	doc := load(t)

	out, err := Discriminator(doc, document.SchemasOAS3, "Settings", "SettingsType", Options{PromoteProperties: true})
	require.NoError(t, err)

	props, ok := document.Lookup(out, "#/components/schemas/Settings/properties")
	require.True(t, ok)
	assert.Equal(t, []string{"channel", "enabled", "from", "kind"}, document.SortedKeys(props.(document.Object)))
}

func TestDiscriminator_PromoteConflict(t *testing.T) {
	doc := load(t)
	doc, err := document.SetIn(doc,
		[]string{"components", "schemas", "EmailSettings", "allOf"},
		document.Array{
			document.Object{"$ref": "#/components/schemas/Settings"},
			document.Object{"properties": document.Object{"enabled": document.Object{"type": "string"}}},
		})
	require.NoError(t, err)

	_, err = Discriminator(doc, document.SchemasOAS3, "Settings", "SettingsType", Options{PromoteProperties: true})
	require.ErrorIs(t, err, oaserrors.ErrStructural)
	assert.Contains(t, err.Error(), "enabled")
}

func TestDiscriminator_Errors(t *testing.T) {
	doc := load(t)

	_, err := Discriminator(doc, document.SchemasOAS3, "Missing", "X", Options{})
	assert.ErrorIs(t, err, oaserrors.ErrStructural)

	_, err = Discriminator(doc, document.SchemasOAS3, "SlackSettings", "X", Options{})
	assert.ErrorIs(t, err, oaserrors.ErrStructural, "no discriminator")

	_, err = Discriminator(doc, document.SchemasOAS3, "Settings", "EmailSettings", Options{})
	assert.ErrorIs(t, err, oaserrors.ErrCollision)

	noChild, err := document.SetIn(doc, []string{"components", "schemas", "Settings", "discriminator", "mapping", "sms"},
		"#/components/schemas/SmsSettings")
	require.NoError(t, err)
	_, err = Discriminator(noChild, document.SchemasOAS3, "Settings", "SettingsType", Options{})
	assert.ErrorIs(t, err, oaserrors.ErrStructural)
}

func TestDiscriminator_BareMappingNames(t *testing.T) {
	doc := load(t)
	doc, err := document.SetIn(doc, []string{"components", "schemas", "Settings", "discriminator", "mapping"},
		document.Object{"slack": "SlackSettings", "email": "#/components/schemas/EmailSettings"})
	require.NoError(t, err)

	out, err := Discriminator(doc, document.SchemasOAS3, "Settings", "SettingsType", Options{})
	require.NoError(t, err)

	schemas := out["components"].(document.Object)["schemas"].(document.Object)
	assert.NotContains(t, schemas, "SlackSettings")
	assert.NotContains(t, schemas, "EmailSettings")
	enum, ok := document.Lookup(out, "#/components/schemas/SettingsType/enum")
	require.True(t, ok)
	assert.Equal(t, document.Array{"email", "slack"}, enum)
	require.NoError(t, document.CheckRefs(out))
}

func TestMappingTarget(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    string
		wantErr bool
	}{
		{name: "reference", value: "#/components/schemas/Pet", want: "Pet"},
		{name: "bare name", value: "Pet", want: "Pet"},
		{name: "sub-path reference", value: "#/components/schemas/Pet/properties/id", wantErr: true},
		{name: "other registry", value: "#/definitions/Pet", wantErr: true},
		{name: "external file", value: "pets.yaml#/Pet", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "not a string", value: 1.0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mappingTarget(document.SchemasOAS3, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnumVarNames(t *testing.T) {
	pattern := regexp.MustCompile(`^Appveyor\.Models\.([A-Za-z0-9]+), Appveyor\.Models$`)

	names, err := EnumVarNames([]string{
		"Appveyor.Models.EmailNotificationSettings, Appveyor.Models",
		"Appveyor.Models.SlackNotificationSettings, Appveyor.Models",
	}, pattern)
	require.NoError(t, err)
	assert.Equal(t, []string{"EmailNotificationSettings", "SlackNotificationSettings"}, names)

	_, err = EnumVarNames([]string{"Other"}, pattern)
	assert.ErrorIs(t, err, oaserrors.ErrStructural)

	names, err = EnumVarNames([]string{"git-hub", "email", "vso_team room"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"GitHub", "Email", "VsoTeamRoom"}, names)
}

func TestSetEnumVarNames(t *testing.T) {
	doc := load(t)
	out, err := Discriminator(doc, document.SchemasOAS3, "Settings", "SettingsType", Options{})
	require.NoError(t, err)

	out, err = SetEnumVarNames(out, document.SchemasOAS3, "SettingsType", nil)
	require.NoError(t, err)

	names, ok := document.Lookup(out, "#/components/schemas/SettingsType/x-enum-varnames")
	require.True(t, ok)
	assert.Equal(t, document.Array{"Email", "Slack"}, names)

	_, err = SetEnumVarNames(out, document.SchemasOAS3, "Settings", nil)
	assert.ErrorIs(t, err, oaserrors.ErrStructural)
}
