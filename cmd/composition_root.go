package cmd

import (
	"log/slog"
	"strings"

	httpin "foodorders/internal/adapters/in/http"
	streamin "foodorders/internal/adapters/in/stream"
	"foodorders/internal/adapters/out/postgres"
	streamout "foodorders/internal/adapters/out/stream"
	"foodorders/internal/core/application/usecases/commands"
	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/fanout"
	"foodorders/internal/jobs"
	"foodorders/internal/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	registry   *metrics.Registry
	hub        *fanout.Hub
	publisher  *streamout.KafkaEventPublisher
	consumer   *streamin.KafkaEventConsumer
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	registry := metrics.NewRegistry()
	hub := fanout.NewHub(logger, registry)
	brokers := strings.Split(configs.KafkaHost, ",")

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		registry:   registry,
		hub:        hub,
		publisher:  streamout.NewKafkaEventPublisher(brokers, configs.KafkaOrderEventsTopic, logger, registry),
		consumer:   streamin.NewKafkaEventConsumer(brokers, configs.KafkaOrderEventsTopic, configs.KafkaConsumerGroup, hub, logger),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordPaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrderCountsQueryHandler() queries.GetActiveOrderCountsQueryHandler {
	return queries.NewGetActiveOrderCountsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateRecordPaymentCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.registry,
	)
}

func (c *CompositionRoot) CreateStreamServer() *httpin.StreamServer {
	return httpin.NewStreamServer(c.hub, c.uowFactory.Create().TenantRepository(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetActiveOrderCountsQueryHandler(), c.registry, c.logger)
}

func (c *CompositionRoot) EventConsumer() *streamin.KafkaEventConsumer {
	return c.consumer
}

func (c *CompositionRoot) Registry() *metrics.Registry {
	return c.registry
}

// Close flushes the event publisher and stops the consumer.
func (c *CompositionRoot) Close() {
	if err := c.publisher.Close(); err != nil {
		c.logger.Error("Failed to close event publisher", "error", err)
	}
	if err := c.consumer.Close(); err != nil {
		c.logger.Error("Failed to close event consumer", "error", err)
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
