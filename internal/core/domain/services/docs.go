// Package services contains stateless domain services that span aggregates:
// partner selection under the fairness cooldown, the pricing policy that
// derives fees and taxes from a subtotal, and local verification of
// payment-provider signatures.
package services
