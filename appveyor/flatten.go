package appveyor

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/flatten"
	"github.com/erraggy/oasvariant/oaserrors"
)

// FlattenDiscriminators removes the two discriminated unions of the
// notification model. NotificationProviderSettings gets an enum-typed
// discriminator property and a required "settings" property;
// NotificationSettings absorbs the properties of every provider-specific
// settings schema.
func FlattenDiscriminators(doc document.Object) (document.Object, error) {
	out, err := flattenDiscriminators(doc)
	if err != nil {
		return nil, fmt.Errorf("appveyor: flatten discriminators: %w", err)
	}
	return out, nil
}

func flattenDiscriminators(doc document.Object) (document.Object, error) {
	reg := document.SchemasOAS3
	out, err := flatten.Discriminator(doc, reg, "NotificationProviderSettings", "NotificationProviderType", flatten.Options{})
	if err != nil {
		return nil, err
	}

	schemas, err := reg.Entries(out)
	if err != nil {
		return nil, err
	}
	provider, _ := schemas["NotificationProviderSettings"].(document.Object)
	props, _ := provider["properties"].(document.Object)
	if _, exists := props["settings"]; exists {
		return nil, oaserrors.Structuralf("components.schemas.NotificationProviderSettings.properties.settings",
			"property must not already exist")
	}
	required, _ := provider["required"].(document.Array)
	provider = document.With(provider, "properties", document.With(props, "settings", reg.RefNode("NotificationSettings")))
	provider = document.With(provider, "required", append(slices.Clone(required), "settings"))
	if out, err = reg.Replace(out, document.With(schemas, "NotificationProviderSettings", provider)); err != nil {
		return nil, err
	}

	out, err = flatten.Discriminator(out, reg, "NotificationSettings", "NotificationSettingsType",
		flatten.Options{PromoteProperties: true})
	if err != nil {
		return nil, err
	}
	return flatten.SetEnumVarNames(out, reg, "NotificationSettingsType", NotificationSettingsVarName)
}
