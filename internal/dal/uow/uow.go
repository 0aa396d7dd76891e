package uow

import (
	"context"
	"errors"
	"fmt"

	iorderitem "github.com/corray333/backend-labs/checkout/internal/dal/interfaces/iorderitemrepo"
	iorder "github.com/corray333/backend-labs/checkout/internal/dal/interfaces/iorderrepo"
	orderrepo "github.com/corray333/backend-labs/checkout/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/corray333/backend-labs/checkout/internal/dal/repositories/orderitem/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UnitOfWork groups the order repositories behind one optional transaction.
// Before Begin the repositories run on the pool.
type UnitOfWork struct {
	pool          *pgxpool.Pool
	tx            pgx.Tx
	orderRepo     iorder.IOrderRepository
	orderItemRepo iorderitem.IOrderItemRepository
}

func (u *UnitOfWork) OrderRepository() iorder.IOrderRepository {
	return u.orderRepo
}

func (u *UnitOfWork) OrderItemRepository() iorderitem.IOrderItemRepository {
	return u.orderItemRepo
}

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{
		pool:          pool,
		orderRepo:     orderrepo.NewPostgresOrderRepository(pool),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(pool),
	}
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)

	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback is a no-op after Commit, so it is safe to defer.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}

	return err
}
