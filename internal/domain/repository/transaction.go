package repository

import "context"

// TransactionManager runs a unit of work atomically: every write made through the
// factory handed to fn commits together, or none does.
type TransactionManager interface {
	// Execute may replay fn after a serialization conflict, so fn must only act through
	// the factory and keep side effects such as event publishing until Execute returns.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the current transaction.
type RepositoryFactory interface {
	ServiceRepo() ServiceRepository
	UserRepo() UserRepository
	FavoriteRepo() FavoriteRepository
	ReviewRepo() ReviewRepository
	CategoryRepo() CategoryRepository
}
