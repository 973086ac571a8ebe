package repository

import "context"

// RepositoryFactory creates repository instances bound to a single
// transaction. Use cases receive it inside TransactionManager.Execute so
// every operation in the callback shares the same transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	ReportRepo() ReportRepository
	LocationRepo() LocationRepository
}

// TransactionManager runs a unit of work atomically.
type TransactionManager interface {
	// Execute runs fn within a single transaction. An error from fn rolls the
	// transaction back and is returned unchanged; a panic rolls back and
	// re-panics.
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
