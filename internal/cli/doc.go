// Package cli defines the Cobra command tree for the lovekit CLI. Each file
// in this package registers one top-level command (init, create, list, etc.)
// with the root command. Commands delegate to project.Manager for the
// lifecycle work and only handle argument parsing, output formatting, and
// confirmation prompts.
package cli
