// Package domain contains the core domain model for diatonic.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML parsing,
// the terminal UI, or the filesystem. Infra/adapters map into/from these types.
package domain
