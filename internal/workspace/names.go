package workspace

import (
	"errors"
	"strings"

	"github.com/lovekit-dev/lovekit/internal/errs"
)

// StagingPrefix marks directories that hold a project or template while it
// is being copied. They are renamed into place on success and never listed.
const StagingPrefix = ".lovekit-staging-"

// IsStaging reports whether a directory name belongs to an in-flight copy.
func IsStaging(name string) bool {
	return strings.HasPrefix(name, StagingPrefix)
}

// ValidateName checks that name can be used as a single directory under
// projects/ or templates/. Both separators are rejected on every platform
// so a workspace stays portable.
func ValidateName(op, name string) error {
	var reason string
	switch {
	case strings.TrimSpace(name) == "":
		reason = "name is empty"
	case strings.ContainsAny(name, `/\`):
		reason = "name must not contain path separators"
	case name == "." || name == "..":
		reason = "name must not be . or .."
	case IsStaging(name):
		reason = "name uses a reserved prefix"
	case strings.ContainsRune(name, 0):
		reason = "name contains a NUL byte"
	default:
		return nil
	}
	return errs.New(errs.ErrInvalidName, op, name, errors.New(reason))
}
