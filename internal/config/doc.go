// Package config manages user-level settings stored at
// ~/.lovekit/config.yaml, overridable through LOVEKIT_* environment
// variables. Consumers depend on the Provider interface so tests can pass
// an in-memory store.
package config
