package bootstrap

import (
	"context"
	"fmt"
	"log"

	statscache "donation_platform/internal/adapter/cache"
	"donation_platform/internal/adapter/events"
	"donation_platform/internal/adapter/persistence/memory"
	"donation_platform/internal/adapter/persistence/mongodb"
	"donation_platform/internal/adapter/persistence/repository"
	rediscache "donation_platform/internal/infrastructure/cache"
	"donation_platform/internal/infrastructure/config"
	"donation_platform/internal/infrastructure/database"
	"donation_platform/internal/infrastructure/messaging"
	"donation_platform/internal/infrastructure/payments"
	"donation_platform/internal/usecase"
	"donation_platform/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Container holds the adapters and use cases selected by configuration. Optional
// adapters (gateway, stats cache, event publisher) stay nil interfaces when absent.
type Container struct {
	Config *config.Config

	Payments  interfaces.IPaymentRepository
	Ledger    interfaces.ICampaignLedger
	Queue     interfaces.IReconciliationQueue
	Gateway   interfaces.IPaymentGateway
	Cache     interfaces.IStatsCache
	Publisher interfaces.IEventPublisher

	Intents        usecase.IPaymentIntentUseCase
	Confirm        usecase.IPaymentConfirmUseCase
	Refunds        usecase.IRefundUseCase
	Queries        usecase.IPaymentQueryUseCase
	Stats          usecase.IStatsUseCase
	Campaigns      usecase.ICampaignUseCase
	Reconciliation usecase.IReconciliationUseCase

	closers []func() error
}

// Build connects the configured backends and wires the use cases on top of them.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	c := &Container{Config: cfg}

	if err := c.connectStores(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.connectGateway()
	c.connectCache(ctx)
	c.connectPublisher()

	recorder := usecase.NewDonationRecorderUseCase(c.Payments, c.Ledger, c.Cache, c.Publisher, policy)
	refunds := usecase.NewRefundUseCase(c.Payments, c.Ledger, c.Gateway, c.Queue, c.Cache, c.Publisher, policy)

	c.Intents = usecase.NewPaymentIntentUseCase(c.Payments, c.Ledger, c.Gateway, policy)
	c.Confirm = usecase.NewPaymentConfirmUseCase(c.Payments, c.Gateway, recorder, c.Queue, c.Publisher, policy)
	c.Refunds = refunds
	c.Queries = usecase.NewPaymentQueryUseCase(c.Payments)
	c.Stats = usecase.NewStatsUseCase(c.Payments, c.Ledger, c.Cache)
	c.Campaigns = usecase.NewCampaignUseCase(c.Ledger)
	c.Reconciliation = usecase.NewReconciliationUseCase(c.Queue, c.Payments, c.Ledger, recorder, refunds, c.Cache)

	log.Printf("[bootstrap] ready store=%s ledger=%s gateway=%s cache=%t events=%t",
		cfg.StoreBackend, cfg.LedgerBackend, cfg.PaymentGateway, c.Cache != nil, c.Publisher != nil)
	return c, nil
}

func (c *Container) connectStores(ctx context.Context) error {
	cfg := c.Config

	var ddb *dynamodb.Client
	if cfg.StoreBackend == config.BackendDynamoDB || cfg.LedgerBackend == config.BackendDynamoDB {
		client, err := database.ConnectDynamoDB(ctx)
		if err != nil {
			return fmt.Errorf("connect dynamodb: %w", err)
		}
		ddb = client
	}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		c.Payments = memory.NewPaymentRepository()
		c.Queue = memory.NewReconciliationQueue()
	default:
		c.Payments = repository.NewPaymentDynamoRepository(ddb)
		c.Queue = repository.NewReconciliationQueueDynamoRepository(ddb)
	}

	switch cfg.LedgerBackend {
	case config.BackendMemory:
		c.Ledger = memory.NewCampaignLedger()
	case config.BackendMongoDB:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return fmt.Errorf("connect mongodb: %w", err)
		}
		c.closers = append(c.closers, func() error { return client.Disconnect(context.Background()) })
		c.Ledger = mongodb.NewCampaignLedgerMongoRepository(client.Database(cfg.MongoDatabase), cfg.MongoCampaignsCollection)
	default:
		c.Ledger = repository.NewCampaignLedgerDynamoRepository(ddb)
	}
	return nil
}

// connectGateway leaves the gateway unset when credentials are missing; donation
// operations then fail with a gateway error while reads keep working.
func (c *Container) connectGateway() {
	cfg := c.Config
	gateway, err := payments.NewGateway(cfg.PaymentGateway, cfg.StripeSecretKey, cfg.MercadoPagoAccessToken)
	if err != nil {
		log.Printf("[bootstrap] payment gateway not configured name=%s err=%v", cfg.PaymentGateway, err)
		return
	}
	c.Gateway = gateway
}

func (c *Container) connectCache(ctx context.Context) {
	cfg := c.Config
	if cfg.RedisAddr == "" {
		return
	}
	rdb, err := rediscache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Printf("[bootstrap] redis unavailable, stats are computed on every read addr=%s err=%v", cfg.RedisAddr, err)
		return
	}
	c.closers = append(c.closers, rdb.Close)
	c.Cache = statscache.NewRedisStatsCache(rdb, cfg.StatsCacheTTL)
}

func (c *Container) connectPublisher() {
	brokers := c.Config.KafkaBrokerList()
	if len(brokers) == 0 {
		return
	}
	producer, err := messaging.NewSyncProducer(brokers, c.Config.KafkaClientID)
	if err != nil {
		log.Printf("[bootstrap] kafka unavailable, events disabled brokers=%v err=%v", brokers, err)
		return
	}
	publisher := events.NewKafkaPublisher(producer)
	c.closers = append(c.closers, publisher.Close)
	c.Publisher = publisher
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			log.Printf("[bootstrap] close failed err=%v", err)
		}
	}
	c.closers = nil
}
