// Package catalog enumerates the projects in a workspace. The list is
// computed from the filesystem on every call; there is no index to go stale.
// Watcher tells long-running callers when it is worth listing again.
package catalog
