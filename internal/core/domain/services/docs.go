// Package services holds domain logic that spans several orders.
//
// QueueProjector turns the set of active orders into the three ordered lists
// shown on the kitchen display. It is pure and deterministic: projecting the
// same input twice yields the same output.
package services
