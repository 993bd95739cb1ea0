package flatten

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/oaserrors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// VarNamesKey is the vendor extension code generators read enum constant
// names from.
const VarNamesKey = "x-enum-varnames"

// EnumVarNames derives one constant name per enum value. With a pattern the
// name is its first submatch and every value must match; without one the
// value is converted to PascalCase.
func EnumVarNames(values []string, pattern *regexp.Regexp) ([]string, error) {
	names := make([]string, 0, len(values))
	for _, v := range values {
		if pattern == nil {
			names = append(names, pascalCase(v))
			continue
		}
		m := pattern.FindStringSubmatch(v)
		if len(m) < 2 || m[1] == "" {
			return nil, oaserrors.Structuralf(VarNamesKey, "enum value %q does not match %s", v, pattern)
		}
		names = append(names, m[1])
	}
	return names, nil
}

// SetEnumVarNames adds x-enum-varnames to the enum schema name of reg.
func SetEnumVarNames(doc document.Object, reg document.Registry, name string, pattern *regexp.Regexp) (document.Object, error) {
	loc := document.JoinPath(reg.String(), name)
	schemas, err := reg.Entries(doc)
	if err != nil {
		return nil, fmt.Errorf("flatten: %s: %w", name, err)
	}
	schema, ok := schemas[name].(document.Object)
	if !ok {
		return nil, fmt.Errorf("flatten: %w", oaserrors.Structuralf(loc, "schema must exist"))
	}
	enum, ok := schema["enum"].(document.Array)
	if !ok {
		return nil, fmt.Errorf("flatten: %w", oaserrors.Structuralf(loc, "schema has no enum"))
	}
	values := make([]string, 0, len(enum))
	for _, v := range enum {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("flatten: %w", oaserrors.Structuralf(loc, "enum value %v is not a string", v))
		}
		values = append(values, s)
	}
	names, err := EnumVarNames(values, pattern)
	if err != nil {
		return nil, fmt.Errorf("flatten: %s: %w", name, err)
	}
	varNames := make(document.Array, len(names))
	for i, n := range names {
		varNames[i] = n
	}
	return reg.Replace(doc, document.With(schemas, name, document.With(schema, VarNamesKey, varNames)))
}

func pascalCase(s string) string {
	// Casers are stateful and must not be shared between goroutines.
	titleCaser := cases.Title(language.Und, cases.NoLower)
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, w := range words {
		b.WriteString(titleCaser.String(w))
	}
	return b.String()
}
