package cmd

import (
	"log/slog"

	httpin "foodorder/internal/adapters/in/http"
	"foodorder/internal/adapters/out/kafka"
	"foodorder/internal/adapters/out/paymentprovider"
	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/adapters/out/postgres/cartrepo"
	"foodorder/internal/adapters/out/postgres/productrepo"
	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot builds and wires every component of the service from the
// configuration and the shared database connection.
type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	logger *slog.Logger

	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.NotificationDispatcher
	payments   ports.PaymentProvider
	catalog    ports.CatalogClient
	cart       ports.CartClient

	pricing  services.PricingPolicy
	selector services.PartnerSelector
	verifier services.PaymentSignatureVerifier
}

// NewCompositionRoot wires the shared collaborators. The returned root hands
// out handlers on demand; handlers are cheap value types created per call.
func NewCompositionRoot(config Config, gormDB *gorm.DB, notifier ports.NotificationDispatcher, logger *slog.Logger) (*CompositionRoot, error) {
	pricing, err := services.NewPricingPolicy(
		config.TaxRatePercent,
		kernel.Money(config.DeliveryFee),
		kernel.Money(config.FreeDeliveryThreshold),
	)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		payments: paymentprovider.NewClient(
			config.PaymentProviderBaseURL,
			config.PaymentKeyID,
			config.PaymentKeySecret,
		),
		catalog:  productrepo.NewGormProductRepository(gormDB),
		cart:     cartrepo.NewGormCartRepository(gormDB),
		pricing:  pricing,
		selector: services.NewPartnerSelector(),
		verifier: services.NewPaymentSignatureVerifier(config.PaymentWebhookSecret),
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(
		f,
		c.catalog,
		c.cart,
		c.payments,
		c.notifier,
		c.pricing,
		c.config.AssignmentInitialDelay,
		c.config.Currency,
		c.logger,
	)
}

func (c *CompositionRoot) CreateAssignPartnerCommandHandler() commands.AssignPartnerCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPartnerCommandHandler(
		f,
		c.selector,
		c.notifier,
		c.config.PartnerCooldown,
		c.config.AssignmentRetryInterval,
		c.config.AssignmentBatchSize,
		c.logger,
	)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderPartnerUoWFactory = FuncOrderPartnerUoWFactory(func() commands.OrderPartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderPartnerUoWFactory = FuncOrderPartnerUoWFactory(func() commands.OrderPartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateReconcilePaymentCommandHandler() commands.ReconcilePaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcilePaymentCommandHandler(f, c.verifier, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateFailPaymentCommandHandler() commands.FailPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFailPaymentCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRegisterPartnerCommandHandler() commands.RegisterPartnerCommandHandler {
	return commands.NewRegisterPartnerCommandHandler(c.partnerUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateSetPartnerAvailabilityCommandHandler() commands.SetPartnerAvailabilityCommandHandler {
	return commands.NewSetPartnerAvailabilityCommandHandler(c.partnerUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateRemovePartnerCommandHandler() commands.RemovePartnerCommandHandler {
	return commands.NewRemovePartnerCommandHandler(c.partnerUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllPartnersQueryHandler() queries.GetAllPartnersQueryHandler {
	return queries.NewGetAllPartnersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStalePlacedOrdersQueryHandler() queries.GetStalePlacedOrdersQueryHandler {
	return queries.NewGetStalePlacedOrdersQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	assignmentJob := jobs.NewPartnerAssignmentJob(
		c.CreateAssignPartnerCommandHandler(),
		c.config.AssignmentSweepSchedule,
		c.logger,
	)
	staleGaugeJob := jobs.NewStaleOrderGaugeJob(
		c.CreateGetStalePlacedOrdersQueryHandler(),
		c.config.StaleOrderAge,
		c.config.StaleGaugeSchedule,
		c.logger,
	)
	return jobs.NewJobManager(assignmentJob, staleGaugeJob)
}

// CreateHTTPServer wires the REST API server.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateReconcilePaymentCommandHandler(),
		c.CreateFailPaymentCommandHandler(),
		c.CreateRegisterPartnerCommandHandler(),
		c.CreateSetPartnerAvailabilityCommandHandler(),
		c.CreateRemovePartnerCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetUserOrdersQueryHandler(),
		c.CreateGetAllPartnersQueryHandler(),
	)
}

func (c *CompositionRoot) partnerUoWFactory() commands.PartnerUoWFactory {
	return FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
}

// NewKafkaDispatcher builds the notification dispatcher from configuration.
func NewKafkaDispatcher(config Config, logger *slog.Logger) *kafka.Dispatcher {
	return kafka.NewDispatcher(config.KafkaBrokers, config.KafkaNotificationsTopic, logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderPartnerUoWFactory func() commands.OrderPartnerUoW

func (f FuncOrderPartnerUoWFactory) Create() commands.OrderPartnerUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
