// Package driven defines the outbound ports the core depends on.
// Adapters under internal/adapters/driven implement them.
package driven
