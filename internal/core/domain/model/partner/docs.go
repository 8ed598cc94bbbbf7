// Package partner contains the DeliveryPartner aggregate: availability,
// assignment-fairness state (the cooldown timestamp) and delivery counters.
package partner
