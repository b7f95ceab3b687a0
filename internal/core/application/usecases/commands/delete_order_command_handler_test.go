package commands_test

import (
	"context"
	"testing"
	"time"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	testOrder, err := order.NewOrder(kernel.NewUUID(), customerID, time.Now())
	require.NoError(t, err)

	cmd, err := commands.NewDeleteOrderCommand(testOrder.ID(), customerID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Delete", ctx, testOrder.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeleteOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_PaidOrder(t *testing.T) {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	paid := paidOrderWithPizzas(t, customerID, 1)

	cmd, err := commands.NewDeleteOrderCommand(paid.ID(), customerID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, paid.ID()).Return(paid, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeleteOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrOrderAlreadyPaid)
	orderRepo.AssertNotCalled(t, "Delete")
}
