package repository

import "context"

// TransactionManager defines the interface for managing database
// transactions. It lets the use case layer group writes atomically without
// depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction. If the function
	// returns an error, the transaction is rolled back; otherwise it is
	// committed. All repository operations obtained from the factory use the
	// same transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to one transaction.
type RepositoryFactory interface {
	// AccountRepo returns an AccountRepository bound to the current transaction.
	AccountRepo() AccountRepository

	// GameRepo returns a GameRepository bound to the current transaction.
	GameRepo() GameRepository
}
