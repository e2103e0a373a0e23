// Package workspace resolves the user's workspace root and maintains its
// on-disk layout:
//
//	<root>/
//	  projects/   one directory per scaffolded project
//	  templates/  one directory per template
//
// Nothing here is cached; callers re-resolve the root on every operation so
// a changed setting takes effect immediately.
package workspace
