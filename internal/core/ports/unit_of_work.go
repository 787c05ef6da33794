package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per request or message.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the current transaction,
	// or to the plain connection when no transaction was started.
	OrderRepository() OrderRepository

	// CommittedEvents returns the domain events raised by aggregates written in
	// the last committed transaction. Each event is returned once.
	CommittedEvents() []Event
}
