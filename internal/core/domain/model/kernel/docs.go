// Package kernel contains shared value objects used across all domain
// aggregates. These types enforce their own invariants and are safe to
// pass by value.
package kernel
