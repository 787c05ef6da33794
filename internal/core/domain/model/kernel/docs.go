// Package kernel holds the value objects shared by every aggregate of the
// production service. Today that is UUID, the identifier used both for
// production orders and for the upstream orders they are created from.
package kernel
