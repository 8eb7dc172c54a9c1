// Package postgres implements the repositories and transaction manager on GORM and PostgreSQL.
package postgres

import (
	"context"
	"database/sql"

	domainerrors "toolbox/internal/domain/errors"
	"toolbox/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"

	maxTransactionAttempts = 3
)

// gormTransactionManager runs units of work in REPEATABLE READ transactions. Two transactions
// racing on the same row (e.g. a user's last template submission date) make the loser fail with
// a serialization error; the unit of work is then replayed against the committed state.
type gormTransactionManager struct {
	db   *gorm.DB
	opts *sql.TxOptions
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction object (*gorm.Tx) and uses it to create
// repository instances that are bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB // In GORM, a transaction object *gorm.Tx is also a *gorm.DB
}

// ServiceRepo creates a service repository instance bound to the transaction.
func (f *gormRepositoryFactory) ServiceRepo() repository.ServiceRepository {
	return NewServiceRepository(f.tx)
}

// UserRepo creates a user repository instance bound to the transaction.
func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.tx)
}

// FavoriteRepo creates a favorite repository instance bound to the transaction.
func (f *gormRepositoryFactory) FavoriteRepo() repository.FavoriteRepository {
	return NewFavoriteRepository(f.tx)
}

// ReviewRepo creates a review repository instance bound to the transaction.
func (f *gormRepositoryFactory) ReviewRepo() repository.ReviewRepository {
	return NewReviewRepository(f.tx)
}

// CategoryRepo creates a category repository instance bound to the transaction.
func (f *gormRepositoryFactory) CategoryRepo() repository.CategoryRepository {
	return NewCategoryRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{
		db:   db,
		opts: &sql.TxOptions{Isolation: sql.LevelRepeatableRead},
	}
}

// Execute runs fn in one transaction, retrying on serialization failures and deadlocks.
// fn may therefore run more than once and must not have effects outside the repositories it is handed.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	var err error
	for attempt := range maxTransactionAttempts {
		if attempt > 0 && ctx.Err() != nil {
			return errors.WithStack(ctx.Err())
		}

		err = tm.executeOnce(ctx, fn)
		if !isRetryableTxError(err) {
			return err
		}
	}

	return errors.Wrap(domainerrors.ErrTransactionFailed.WithDetails(err.Error()), "transaction retries exhausted")
}

func (tm *gormTransactionManager) executeOnce(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin(tm.opts)
	if tx.Error != nil {
		return errors.Wrap(domainerrors.ErrTransactionFailed.WithDetails(tx.Error.Error()), "failed to begin transaction")
	}

	// A panicking unit of work must not leave the connection inside an open transaction.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&gormRepositoryFactory{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		if isRetryableTxError(err) {
			return errors.WithStack(err)
		}

		return errors.Wrap(domainerrors.ErrTransactionFailed.WithDetails(err.Error()), "failed to commit transaction")
	}

	return nil
}

func isRetryableTxError(err error) bool {
	return err != nil && (hasSQLState(err, pgSerializationFailure) || hasSQLState(err, pgDeadlockDetected))
}
