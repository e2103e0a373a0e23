// Package project implements the user-facing lifecycle of scaffolded
// projects: create, list, delete, reveal and open. A Manager holds no state
// between calls; it re-reads configuration and the filesystem every time.
//
// Deleting is irreversible, so Delete only proceeds with a Confirmation
// obtained from ConfirmDelete for the same path. Hosts call ConfirmDelete
// after the user has affirmatively agreed.
package project
