package cmd

import (
	"net/http"

	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/jobs"
	"ordering/internal/pkg/logger"
	"ordering/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, log *logger.Logger) CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return CompositionRoot{
		cfg:    cfg,
		gormDB: gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB, postgres.LoaderOptions{
			BatchSize: cfg.LoaderBatchSize,
		}),
		registry: registry,
		metrics:  metrics.New(registry),
		logger:   log,
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.metrics)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.metrics)
}

func (c *CompositionRoot) CreateCompleteDeliveriesCommandHandler() commands.CompleteDeliveriesCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveriesCommandHandler(f, c.metrics)
}

func (c *CompositionRoot) CreateRegisterMemberCommandHandler() commands.RegisterMemberCommandHandler {
	var f commands.MemberUoWFactory = FuncMemberUoWFactory(func() commands.MemberUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterMemberCommandHandler(f)
}

func (c *CompositionRoot) CreateAddItemCommandHandler() commands.AddItemCommandHandler {
	var f commands.ItemUoWFactory = FuncItemUoWFactory(func() commands.ItemUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddItemCommandHandler(f)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	var f queries.QueryUoWFactory = FuncQueryUoWFactory(func() queries.QueryUoW {
		return c.uowFactory.Create()
	})
	return queries.NewListOrdersQueryHandler(f, c.metrics)
}

func (c *CompositionRoot) CreateMetricsHandler() http.Handler {
	return metrics.Handler(c.registry)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateRegisterMemberCommandHandler(),
		c.CreateAddItemCommandHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateMetricsHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := c.CreateCompleteDeliveriesCommandHandler()
	deliveryCompletionJob := jobs.NewDeliveryCompletionJob(
		&handler,
		c.cfg.DeliveryCompletionSchedule,
		c.cfg.DeliveryCompletionAfter,
		c.logger,
	)
	return jobs.NewJobManager(deliveryCompletionJob)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncMemberUoWFactory func() commands.MemberUoW

func (f FuncMemberUoWFactory) Create() commands.MemberUoW {
	return f()
}

type FuncItemUoWFactory func() commands.ItemUoW

func (f FuncItemUoWFactory) Create() commands.ItemUoW {
	return f()
}

type FuncQueryUoWFactory func() queries.QueryUoW

func (f FuncQueryUoWFactory) Create() queries.QueryUoW {
	return f()
}
