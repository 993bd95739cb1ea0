package pathutil

import (
	"regexp"
	"strings"
)

// PathParamRegex matches path template parameters like {paramName}.
// It captures the parameter name inside the braces.
var PathParamRegex = regexp.MustCompile(`\{([^}]+)\}`)

// TemplateParams returns the placeholder names of a path template in order.
func TemplateParams(template string) []string {
	matches := PathParamRegex.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// HasTemplateParam reports whether template contains the exact placeholder {name}.
func HasTemplateParam(template, name string) bool {
	return strings.Contains(template, "{"+name+"}")
}

// RenameTemplateParams rewrites placeholders whose whole name is a key of
// names. Substrings of longer names are never touched.
func RenameTemplateParams(template string, names map[string]string) string {
	return PathParamRegex.ReplaceAllStringFunc(template, func(match string) string {
		if renamed, ok := names[match[1:len(match)-1]]; ok {
			return "{" + renamed + "}"
		}
		return match
	})
}
