package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per business operation,
// isolating concurrent operations from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary over the order store,
// partner registry and assignment schedule. Repositories obtained from it
// are bound to the transaction started by Begin.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after a
	// commit; rolling back a finished transaction is a no-op error.
	Rollback(ctx context.Context) error

	// OrderRepository returns an order repository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// PartnerRepository returns a partner repository bound to the current
	// transaction.
	PartnerRepository() PartnerRepository

	// AssignmentTaskRepository returns a task repository bound to the
	// current transaction.
	AssignmentTaskRepository() AssignmentTaskRepository
}
