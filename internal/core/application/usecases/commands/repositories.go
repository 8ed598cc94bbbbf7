// Package commands contains the business operations that modify system
// state, implemented as command/handler pairs. Every handler follows the
// same shape: validate the command, open a unit of work, load aggregates,
// mutate through the domain, and commit.
package commands

import (
	"context"

	"foodorder/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends only on the repositories it actually
// touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PartnerRepoFactory provides the partner repository within a
	// transaction.
	PartnerRepoFactory interface {
		PartnerRepository() ports.PartnerRepository
	}

	// TaskRepoFactory provides the assignment-task repository within a
	// transaction.
	TaskRepoFactory interface {
		AssignmentTaskRepository() ports.AssignmentTaskRepository
	}

	// OrderUoW manages transactions for order-only operations: payment
	// reconciliation and cancellation.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW manages the order-creation transaction: the order and its
	// first assignment task are written atomically.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		TaskRepoFactory
	}

	// CheckoutUoWFactory creates checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// PartnerUoW manages transactions for partner-registry operations.
	PartnerUoW interface {
		TxManager
		PartnerRepoFactory
	}

	// PartnerUoWFactory creates partner unit of work instances.
	PartnerUoWFactory interface {
		Create() PartnerUoW
	}

	// OrderPartnerUoW manages transactions that touch an order and its
	// partner together: manual transitions whose delivered edge updates the
	// partner's counters.
	OrderPartnerUoW interface {
		TxManager
		OrderRepoFactory
		PartnerRepoFactory
	}

	// OrderPartnerUoWFactory creates order+partner unit of work instances.
	OrderPartnerUoWFactory interface {
		Create() OrderPartnerUoW
	}

	// UoW manages transactions across orders, partners and the assignment
	// schedule. Used by the assignment sweep.
	UoW interface {
		TxManager
		OrderRepoFactory
		PartnerRepoFactory
		TaskRepoFactory
	}

	// UoWFactory creates full unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
