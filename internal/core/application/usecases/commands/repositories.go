// Package commands contains business operations that modify system state.
// Every handler follows the same shape: validate the command, open a unit of
// work, load aggregates, run domain logic, persist, commit, then notify.
package commands

import (
	"context"

	"commissions/internal/core/ports"
)

// Unit of Work interfaces narrowed to the repositories each handler needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	TalentRepoFactory interface {
		TalentRepository() ports.TalentRepository
	}

	MessageRepoFactory interface {
		MessageRepository() ports.MessageRepository
	}

	CertificateRepoFactory interface {
		CertificateRepository() ports.CertificateRepository
	}

	// OrderUoW is used by commands that only touch orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// TalentUoW is used by commands that only touch talents.
	TalentUoW interface {
		TxManager
		TalentRepoFactory
	}

	TalentUoWFactory interface {
		Create() TalentUoW
	}

	// LifecycleUoW covers order transitions, which release the assigned
	// talent's slot when an order completes, and talent assignment.
	LifecycleUoW interface {
		TxManager
		OrderRepoFactory
		TalentRepoFactory
	}

	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}

	// MessageUoW reads the order to check the messaging allow-list and
	// appends to its log in the same transaction.
	MessageUoW interface {
		TxManager
		OrderRepoFactory
		MessageRepoFactory
	}

	MessageUoWFactory interface {
		Create() MessageUoW
	}

	// CertificateUoW reads the order and stores its certificate.
	CertificateUoW interface {
		TxManager
		OrderRepoFactory
		CertificateRepoFactory
	}

	CertificateUoWFactory interface {
		Create() CertificateUoW
	}
)
