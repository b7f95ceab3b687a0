package commands

import (
	"context"

	"pizzeria/internal/core/domain/model/coupon"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
)

// RefreshEarnedCouponsCommandHandler grants earned-but-missing coupons.
// The welcome coupon is granted once per customer, the birthday coupon once
// per calendar year on the customer's birthday, and one loyalty coupon per
// ten pizzas bought. Running the sweep twice grants nothing the second
// time: each grant checks the deterministic code first, and a unique
// constraint on the code column decides races between concurrent sweeps.
type RefreshEarnedCouponsCommandHandler struct {
	uowFactory OrderCouponUoWFactory
}

// NewRefreshEarnedCouponsCommandHandler creates a handler for the coupon
// issuance sweep.
func NewRefreshEarnedCouponsCommandHandler(uowFactory OrderCouponUoWFactory) RefreshEarnedCouponsCommandHandler {
	return RefreshEarnedCouponsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle grants every coupon the customer has earned but not received.
func (h RefreshEarnedCouponsCommandHandler) Handle(ctx context.Context, command RefreshEarnedCouponsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	couponRepo := uow.CouponRepository()

	if err := h.grantWelcome(ctx, couponRepo, command); err != nil {
		return err
	}
	if err := h.grantBirthday(ctx, couponRepo, command); err != nil {
		return err
	}
	if err := h.grantLoyalty(ctx, uow.OrderRepository(), couponRepo, command); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h RefreshEarnedCouponsCommandHandler) grantWelcome(
	ctx context.Context,
	couponRepo ports.CouponRepository,
	command RefreshEarnedCouponsCommand,
) error {
	exists, err := couponRepo.ExistsByCode(ctx, coupon.WelcomeCode(command.CustomerID()))
	if err != nil || exists {
		return err
	}

	granted, err := coupon.NewWelcomeCoupon(command.CustomerID(), command.Now())
	if err != nil {
		return err
	}

	return couponRepo.Add(ctx, granted)
}

func (h RefreshEarnedCouponsCommandHandler) grantBirthday(
	ctx context.Context,
	couponRepo ports.CouponRepository,
	command RefreshEarnedCouponsCommand,
) error {
	birthDate := command.BirthDate()
	if birthDate == nil {
		return nil
	}

	now := command.Now().UTC()
	if birthDate.Month() != now.Month() || birthDate.Day() != now.Day() {
		return nil
	}

	exists, err := couponRepo.ExistsByCode(ctx, coupon.BirthdayCode(command.CustomerID(), now.Year()))
	if err != nil || exists {
		return err
	}

	granted, err := coupon.NewBirthdayCoupon(command.CustomerID(), command.Now())
	if err != nil {
		return err
	}

	return couponRepo.Add(ctx, granted)
}

func (h RefreshEarnedCouponsCommandHandler) grantLoyalty(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	couponRepo ports.CouponRepository,
	command RefreshEarnedCouponsCommand,
) error {
	orders, err := orderRepo.GetAllByCustomer(ctx, command.CustomerID())
	if err != nil {
		return err
	}

	boughtPizzas := 0
	for _, o := range orders {
		if o.Status() != order.Paid && o.Status() != order.Delivered {
			continue
		}
		boughtPizzas += len(o.Pizzas())
	}

	earned := boughtPizzas / coupon.LoyaltyThreshold
	granted, err := couponRepo.CountLoyaltyByCustomer(ctx, command.CustomerID())
	if err != nil {
		return err
	}

	for seq := granted + 1; seq <= earned; seq++ {
		loyalty, err := coupon.NewLoyaltyCoupon(command.CustomerID(), seq, command.Now())
		if err != nil {
			return err
		}
		if err = couponRepo.Add(ctx, loyalty); err != nil {
			return err
		}
	}

	return nil
}
