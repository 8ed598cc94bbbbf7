// Package kernel contains shared value objects used across all domain
// aggregates. These are the building blocks the order and partner models are
// assembled from: strongly typed identifiers and monetary amounts with
// validation enforced at construction time.
package kernel
