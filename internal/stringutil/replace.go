package stringutil

import (
	"fmt"
	"regexp"

	"github.com/erraggy/oasvariant/oaserrors"
)

// EnsureReplace replaces every match of re in s with replacement and fails
// when nothing matched. field names the value in the error.
func EnsureReplace(field, s string, re *regexp.Regexp, replacement string) (string, error) {
	if !re.MatchString(s) {
		return "", &oaserrors.StructuralError{
			Path:    field,
			Message: fmt.Sprintf("expected %q to contain %s", s, re),
		}
	}
	return re.ReplaceAllLiteralString(s, replacement), nil
}
