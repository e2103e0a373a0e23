package errs

import (
	"errors"
	"strings"
)

// Error kinds. Match them with errors.Is.
var (
	ErrConfig               = errors.New("configuration error")
	ErrFilesystem           = errors.New("filesystem error")
	ErrInvalidName          = errors.New("invalid name")
	ErrTemplateNotFound     = errors.New("template not found")
	ErrProjectExists        = errors.New("project already exists")
	ErrNotFound             = errors.New("path does not exist")
	ErrNotADirectory        = errors.New("path is not a directory")
	ErrConfirmationRequired = errors.New("deletion not confirmed")
	ErrOutsideWorkspace     = errors.New("path is not a project in the workspace")
	ErrIntegration          = errors.New("external integration failed")
)

// Error is a kind-tagged failure of a single operation.
type Error struct {
	Kind error  // one of the Err* sentinels
	Op   string // e.g. "create", "materialize"
	Path string // filesystem path or name the operation was acting on
	Err  error  // underlying cause, may be nil
}

// New returns an *Error of the given kind.
func New(kind error, op, path string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: cause}
}

func (e *Error) Error() string {
	var b strings.Builder
	switch {
	case e.Op != "" && e.Path != "":
		b.WriteString(e.Op + " " + quote(e.Path) + ": ")
	case e.Op != "":
		b.WriteString(e.Op + ": ")
	case e.Path != "":
		b.WriteString(quote(e.Path) + ": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the sentinel kind of err, or nil if err is not an *Error.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}

func quote(s string) string {
	return `"` + s + `"`
}
