// Package order contains the Order aggregate and its value objects: the
// status state machine, frozen order lines, the pricing snapshot, the
// delivery address and the append-only status history.
//
// The aggregate is the single authority over its own lifecycle. Nothing in
// the system mutates an order's status directly; the assignment scheduler,
// the payment reconciler and manual updates all go through the same
// transition methods and therefore obey the same closed transition table.
package order
