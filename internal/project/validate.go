package project

import (
	"fmt"
	"regexp"
	"strings"

	oerrors "github.com/notscripter/compose-cli/internal/errors"
)

var segmentPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidateApplicationID checks that id is a dotted reverse-domain identifier
// with at least two segments.
func ValidateApplicationID(id string) error {
	const hint = "use a reverse-domain id such as com.example.myapp"

	if strings.TrimSpace(id) == "" {
		return oerrors.NewMalformedInputError("package is required", "package", hint)
	}

	segments := strings.Split(id, ".")
	if len(segments) < 2 {
		return oerrors.NewMalformedInputError(
			fmt.Sprintf("package %q needs at least two segments", id), "package", hint)
	}
	for _, s := range segments {
		if !segmentPattern.MatchString(s) {
			return oerrors.NewMalformedInputError(
				fmt.Sprintf("package %q has an invalid segment %q", id, s), "package", hint)
		}
	}
	return nil
}

// ValidateName checks that the project name is not blank.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return oerrors.NewMalformedInputError("project name is required", "name", "")
	}
	return nil
}
