// Package postgres provides the GORM-based Unit of Work implementation.
// A unit of work owns one database transaction and hands out repositories
// bound to it, so a command handler's writes commit or roll back together.
package postgres

import (
	"context"
	"errors"

	"pizzeria/internal/adapters/out/postgres/couponrepo"
	"pizzeria/internal/adapters/out/postgres/courierrepo"
	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances over a shared GORM
// connection pool. Each command handler gets a fresh instance, so
// concurrent operations never share transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready to begin a transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the order,
// coupon and courier repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a new database transaction. Calling Begin again on an
// instance with an open transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. Serialization failures and deadlocks
// surface as errs.ErrUnavailable: the database has already rolled the
// transaction back, so the whole unit of work is safe to retry.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil && isTransient(err) {
		return errs.NewUnavailableErrorWithCause("commit transaction", err)
	}

	return err
}

// Rollback discards the transaction. Safe to call after Commit, in which
// case it reports gorm.ErrInvalidTransaction; deferred callers ignore that.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the pool when no transaction is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// CouponRepository returns a coupon repository bound to the current transaction.
func (uow *GormUnitOfWork) CouponRepository() ports.CouponRepository {
	return couponrepo.NewGormCouponRepository(uow.conn())
}

// CourierRepository returns a courier repository bound to the current transaction.
func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// isTransient reports whether the error is a serialization failure (40001)
// or deadlock (40P01), the two outcomes Postgres documents as retryable.
func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
