// Package errs defines the error kinds surfaced by the lovekit core. Every
// failure crossing a package boundary is an *Error tagged with one of the
// sentinel kinds, so callers can branch with errors.Is and still print a
// message that names the operation and path involved.
package errs
