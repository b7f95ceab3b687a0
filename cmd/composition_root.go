package cmd

import (
	"fmt"
	"log/slog"

	httpin "pizzeria/internal/adapters/in/http"
	"pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/adapters/out/postgres/catalogrepo"
	"pizzeria/internal/adapters/out/postgres/couponrepo"
	"pizzeria/internal/adapters/out/postgres/courierrepo"
	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/adapters/out/rabbitmq"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/jobs"
	"pizzeria/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, handlers, and jobs together.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.OrderEventPublisher

	registry                 *prometheus.Registry
	ordersPaidTotal          prometheus.Counter
	couponsRedeemedTotal     prometheus.Counter
	deliveriesCompletedTotal prometheus.Counter
}

// NewCompositionRoot builds the object graph. The RabbitMQ connection is
// optional: without an AMQP URL, or when the broker is unreachable at
// startup, events degrade to a no-op publisher.
func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	var publisher ports.OrderEventPublisher = rabbitmq.NopPublisher{}
	if config.AmqpURL != "" {
		p, err := rabbitmq.NewPublisher(config.AmqpURL)
		if err != nil {
			slog.Warn("rabbitmq unavailable, order events disabled", slog.Any("error", err))
		} else {
			publisher = p
		}
	}

	registry := prometheus.NewRegistry()
	ordersPaid := metrics.NewOrdersPaidTotal()
	couponsRedeemed := metrics.NewCouponsRedeemedTotal()
	deliveriesCompleted := metrics.NewDeliveriesCompletedTotal()
	registry.MustRegister(ordersPaid, couponsRedeemed, deliveriesCompleted)

	return CompositionRoot{
		gormDB:                   gormDB,
		uowFactory:               *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:                publisher,
		registry:                 registry,
		ordersPaidTotal:          ordersPaid,
		couponsRedeemedTotal:     couponsRedeemed,
		deliveriesCompletedTotal: deliveriesCompleted,
	}
}

// Registry returns the Prometheus registry backing /metrics.
func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

// CreateCatalogReader returns the read-only catalog adapter.
func (c *CompositionRoot) CreateCatalogReader() ports.CatalogReader {
	return catalogrepo.NewGormCatalogRepository(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderCouponUoWFactory() commands.OrderCouponUoWFactory {
	return FuncOrderCouponUoWFactory(func() commands.OrderCouponUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderCourierUoWFactory() commands.OrderCourierUoWFactory {
	return FuncOrderCourierUoWFactory(func() commands.OrderCourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreatePendingOrderCommandHandler() commands.CreatePendingOrderCommandHandler {
	return commands.NewCreatePendingOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddPizzaCommandHandler() commands.AddPizzaCommandHandler {
	return commands.NewAddPizzaCommandHandler(c.orderUoWFactory(), c.CreateCatalogReader())
}

func (c *CompositionRoot) CreateAddDrinkCommandHandler() commands.AddDrinkCommandHandler {
	return commands.NewAddDrinkCommandHandler(c.orderUoWFactory(), c.CreateCatalogReader())
}

func (c *CompositionRoot) CreateAddDessertCommandHandler() commands.AddDessertCommandHandler {
	return commands.NewAddDessertCommandHandler(c.orderUoWFactory(), c.CreateCatalogReader())
}

func (c *CompositionRoot) CreateRemoveLineCommandHandler() commands.RemoveLineCommandHandler {
	return commands.NewRemoveLineCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(
		c.orderCouponUoWFactory(),
		c.publisher,
		c.couponsRedeemedTotal,
	)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(
		c.orderCourierUoWFactory(),
		c.publisher,
		c.ordersPaidTotal,
	)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRefreshEarnedCouponsCommandHandler() commands.RefreshEarnedCouponsCommandHandler {
	return commands.NewRefreshEarnedCouponsCommandHandler(c.orderCouponUoWFactory())
}

func (c *CompositionRoot) CreateHireCourierCommandHandler() commands.HireCourierCommandHandler {
	return commands.NewHireCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateCompleteDueDeliveriesCommandHandler() commands.CompleteDueDeliveriesCommandHandler {
	return commands.NewCompleteDueDeliveriesCommandHandler(
		c.orderUoWFactory(),
		c.publisher,
		c.deliveriesCompletedTotal,
	)
}

func (c *CompositionRoot) CreateRefreshCourierAvailabilityCommandHandler() commands.RefreshCourierAvailabilityCommandHandler {
	return commands.NewRefreshCourierAvailabilityCommandHandler(c.courierUoWFactory())
}

// CreateJobManager wires the two background sweeps.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCompleteDueDeliveriesCommandHandler(),
		c.CreateRefreshCourierAvailabilityCommandHandler(),
		logger,
	)
}

// CreateGetOrderHistoryQueryHandler wires the history read with the
// completion sweep, so countdowns that elapsed between job ticks are
// already reflected in the response.
func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler(sweeper queries.DeliverySweeper) queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB, sweeper)
}

func (c *CompositionRoot) CreateTrackDeliveryQueryHandler() queries.TrackDeliveryQueryHandler {
	return queries.NewTrackDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCouponsQueryHandler() queries.GetCouponsQueryHandler {
	return queries.NewGetCouponsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTotalQueryHandler() queries.GetOrderTotalQueryHandler {
	return queries.NewGetOrderTotalQueryHandler(
		orderrepo.NewGormOrderRepository(c.gormDB),
		couponrepo.NewGormCouponRepository(c.gormDB),
		catalogrepo.NewGormCatalogRepository(c.gormDB),
	)
}

// CreateHTTPServer assembles the inbound HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer(sweeper queries.DeliverySweeper) *httpin.Server {
	return httpin.NewServer(
		c.CreateCreatePendingOrderCommandHandler(),
		c.CreateAddPizzaCommandHandler(),
		c.CreateAddDrinkCommandHandler(),
		c.CreateAddDessertCommandHandler(),
		c.CreateRemoveLineCommandHandler(),
		c.CreateConfirmOrderCommandHandler(),
		c.CreatePayOrderCommandHandler(),
		c.CreateDeleteOrderCommandHandler(),
		c.CreateRefreshEarnedCouponsCommandHandler(),
		c.CreateHireCourierCommandHandler(),
		c.CreateGetOrderHistoryQueryHandler(sweeper),
		c.CreateTrackDeliveryQueryHandler(),
		c.CreateGetCouponsQueryHandler(),
		c.CreateGetOrderTotalQueryHandler(),
	)
}

// Migrate creates the schema and the partial unique indexes enforcing one
// Pending and one Confirmed order per customer. AutoMigrate cannot express
// partial indexes, so they are raw SQL.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.PizzaLineDTO{},
		&orderrepo.PizzaIngredientDTO{},
		&orderrepo.DrinkLineDTO{},
		&orderrepo.DessertLineDTO{},
		&couponrepo.CouponDTO{},
		&courierrepo.CourierDTO{},
		&courierrepo.PostalAssignmentDTO{},
		&catalogrepo.IngredientDTO{},
		&catalogrepo.DrinkDTO{},
		&catalogrepo.DessertDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec(fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_one_pending_per_customer
		 ON orders (customer_id) WHERE status = %d`, int(order.Pending),
	)).Error; err != nil {
		return fmt.Errorf("create pending index: %w", err)
	}

	if err := db.Exec(fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_one_confirmed_per_customer
		 ON orders (customer_id) WHERE status = %d`, int(order.Confirmed),
	)).Error; err != nil {
		return fmt.Errorf("create confirmed index: %w", err)
	}

	return nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderCouponUoWFactory func() commands.OrderCouponUoW

func (f FuncOrderCouponUoWFactory) Create() commands.OrderCouponUoW {
	return f()
}

type FuncOrderCourierUoWFactory func() commands.OrderCourierUoW

func (f FuncOrderCourierUoWFactory) Create() commands.OrderCourierUoW {
	return f()
}
