package cmd

import (
	"time"

	httpin "commissions/internal/adapters/in/http"
	"commissions/internal/adapters/out/postgres"
	"commissions/internal/core/application/usecases/commands"
	"commissions/internal/core/application/usecases/queries"
	"commissions/internal/core/domain/model/catalog"
	"commissions/internal/core/domain/services"
	"commissions/internal/core/ports"
	"commissions/internal/jobs"
	"commissions/internal/pkg/metrics"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies are the outbound adapters chosen by main.
type Dependencies struct {
	DB         *gorm.DB
	Promos     ports.PromoValidator
	Dispatcher ports.NotificationDispatcher
	Metrics    *metrics.Metrics
	Logger     zerolog.Logger
	// Catalog defaults to catalog.Default().
	Catalog *catalog.Catalog
	// Clock defaults to the wall clock.
	Clock commands.Clock
}

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	catalog    *catalog.Catalog
	resolver   services.RightsResolver
	pricing    services.PricingEngine
	promos     ports.PromoValidator
	notifier   commands.Notifier
	metrics    *metrics.Metrics
	clock      commands.Clock
	logger     zerolog.Logger
}

func NewCompositionRoot(config Config, deps Dependencies) CompositionRoot {
	c := deps.Catalog
	if c == nil {
		c = catalog.Default()
	}
	resolver := services.NewRightsResolver(c)
	return CompositionRoot{
		config:     config,
		gormDB:     deps.DB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(deps.DB),
		catalog:    c,
		resolver:   resolver,
		pricing:    services.NewPricingEngine(c, resolver),
		promos:     deps.Promos,
		notifier:   commands.NewNotifier(deps.Dispatcher, deps.Logger.With().Str("component", "notifier").Logger(), deps.Metrics),
		metrics:    deps.Metrics,
		clock:      deps.Clock,
		logger:     deps.Logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) talentUoWFactory() commands.TalentUoWFactory {
	return FuncTalentUoWFactory(func() commands.TalentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) lifecycleUoWFactory() commands.LifecycleUoWFactory {
	return FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) messageUoWFactory() commands.MessageUoWFactory {
	return FuncMessageUoWFactory(func() commands.MessageUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) certificateUoWFactory() commands.CertificateUoWFactory {
	return FuncCertificateUoWFactory(func() commands.CertificateUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) autoCompleteAfter() time.Duration {
	return c.config.AutoCompleteAfter
}

func (c *CompositionRoot) catalogVersion() string {
	if c.config.CatalogVersion != "" {
		return c.config.CatalogVersion
	}
	return c.catalog.Version()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.pricing, c.promos, c.clock, c.notifier, c.metrics)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory(), c.resolver, c.clock, c.notifier, c.metrics)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.lifecycleUoWFactory(), c.clock, c.autoCompleteAfter(), c.notifier, c.metrics)
}

func (c *CompositionRoot) CreateCheckAutoCompleteCommandHandler() commands.CheckAutoCompleteCommandHandler {
	return commands.NewCheckAutoCompleteCommandHandler(c.lifecycleUoWFactory(), c.clock, c.notifier, c.metrics)
}

func (c *CompositionRoot) CreateCompleteOverdueDeliveriesCommandHandler() commands.CompleteOverdueDeliveriesCommandHandler {
	return commands.NewCompleteOverdueDeliveriesCommandHandler(
		c.lifecycleUoWFactory(),
		c.CreateCheckAutoCompleteCommandHandler(),
		c.clock,
	)
}

func (c *CompositionRoot) CreateAssignTalentCommandHandler() commands.AssignTalentCommandHandler {
	return commands.NewAssignTalentCommandHandler(c.lifecycleUoWFactory(), services.NewTalentAssigner(), c.clock, c.notifier)
}

func (c *CompositionRoot) CreatePostMessageCommandHandler() commands.PostMessageCommandHandler {
	return commands.NewPostMessageCommandHandler(c.messageUoWFactory(), c.clock, c.notifier)
}

func (c *CompositionRoot) CreateIssueCertificateCommandHandler() commands.IssueCertificateCommandHandler {
	return commands.NewIssueCertificateCommandHandler(
		c.certificateUoWFactory(),
		c.resolver,
		services.NewCertificateRightsMapper(c.catalog),
		c.catalogVersion(),
		c.clock,
		c.notifier,
		c.metrics,
	)
}

func (c *CompositionRoot) CreateCreateTalentCommandHandler() commands.CreateTalentCommandHandler {
	return commands.NewCreateTalentCommandHandler(c.talentUoWFactory())
}

func (c *CompositionRoot) CreateGetQuoteQueryHandler() queries.GetQuoteQueryHandler {
	return queries.NewGetQuoteQueryHandler(c.pricing, c.promos, c.metrics)
}

func (c *CompositionRoot) CreateListMessagesQueryHandler() queries.ListMessagesQueryHandler {
	return queries.NewListMessagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCertificateQueryHandler() queries.GetCertificateQueryHandler {
	return queries.NewGetCertificateQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllTalentsQueryHandler() queries.GetAllTalentsQueryHandler {
	return queries.NewGetAllTalentsQueryHandler(c.gormDB)
}

// CreateHTTPServer binds every use case to the API surface.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		ConfirmPayment:    c.CreateConfirmPaymentCommandHandler(),
		TransitionOrder:   c.CreateTransitionOrderCommandHandler(),
		CheckAutoComplete: c.CreateCheckAutoCompleteCommandHandler(),
		PostMessage:       c.CreatePostMessageCommandHandler(),
		IssueCertificate:  c.CreateIssueCertificateCommandHandler(),
		CreateTalent:      c.CreateCreateTalentCommandHandler(),
		GetQuote:          c.CreateGetQuoteQueryHandler(),
		ListMessages:      c.CreateListMessagesQueryHandler(),
		GetCertificate:    c.CreateGetCertificateQueryHandler(),
		GetAllTalents:     c.CreateGetAllTalentsQueryHandler(),
	})
}

// CreateJobManager registers the jobs enabled in the config.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	manager := jobs.NewJobManager()
	if c.config.TalentAssignmentEnabled {
		manager.Add("talent assignment", jobs.NewTalentAssignmentJob(
			c.CreateAssignTalentCommandHandler(),
			c.config.TalentAssignmentSchedule,
			c.metrics,
			c.logger,
		))
	}
	if c.config.AutoCompleteSweepEnabled {
		manager.Add("auto-complete sweep", jobs.NewAutoCompleteSweepJob(
			c.CreateCompleteOverdueDeliveriesCommandHandler(),
			c.config.AutoCompleteSweepSchedule,
			c.config.AutoCompleteSweepBatchSize,
			c.metrics,
			c.logger,
		))
	}
	return manager
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTalentUoWFactory func() commands.TalentUoW

func (f FuncTalentUoWFactory) Create() commands.TalentUoW {
	return f()
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}

type FuncMessageUoWFactory func() commands.MessageUoW

func (f FuncMessageUoWFactory) Create() commands.MessageUoW {
	return f()
}

type FuncCertificateUoWFactory func() commands.CertificateUoW

func (f FuncCertificateUoWFactory) Create() commands.CertificateUoW {
	return f()
}
