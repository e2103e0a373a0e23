// Package template turns a template directory into a new project. A
// template is a plain directory tree under <workspace>/templates/<name>; it
// is copied verbatim except for the window title in conf.lua, which is set
// to the project name. The default template ships inside the binary and is
// seeded into the workspace the first time it is needed.
//
// A template may carry an optional .lovekit-template.yaml descriptor with a
// description and version. The descriptor is validated against an embedded
// JSON schema and is never copied into projects.
package template
