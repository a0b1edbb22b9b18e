package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"donation_platform/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	BackendDynamoDB = "dynamodb"
	BackendMongoDB  = "mongodb"
	BackendMemory   = "memory"

	GatewayStripe      = "stripe"
	GatewayMercadoPago = "mercadopago"
	GatewayMock        = "mock"
)

// Config is read from the environment (and .env through godotenv). CONFIG_FILE may
// point to a yaml file whose keys use the same lowercase names.
type Config struct {
	Port    int    `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`

	StoreBackend  string `mapstructure:"store_backend"`
	LedgerBackend string `mapstructure:"ledger_backend"`

	PaymentGateway         string `mapstructure:"payment_gateway"`
	PaymentGatewayMock     bool   `mapstructure:"payment_gateway_mock"`
	StripeSecretKey        string `mapstructure:"stripe_secret_key"`
	MercadoPagoAccessToken string `mapstructure:"mercadopago_access_token"`
	WebhookSecret          string `mapstructure:"webhook_secret"`

	MinDonation         string        `mapstructure:"min_donation"`
	MaxDonation         string        `mapstructure:"max_donation"`
	GatewayTimeout      time.Duration `mapstructure:"gateway_timeout"`
	LedgerRetryAttempts int           `mapstructure:"ledger_retry_attempts"`
	LedgerRetryBackoff  time.Duration `mapstructure:"ledger_retry_backoff"`

	JWTSecret string `mapstructure:"jwt_secret"`

	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	StatsCacheTTL time.Duration `mapstructure:"stats_cache_ttl"`

	KafkaBrokers  string `mapstructure:"kafka_brokers"`
	KafkaClientID string `mapstructure:"kafka_client_id"`

	MongoURI                 string `mapstructure:"mongo_uri"`
	MongoDatabase            string `mapstructure:"mongo_database"`
	MongoCampaignsCollection string `mapstructure:"mongo_campaigns_collection"`

	ReconcileInterval time.Duration `mapstructure:"reconcile_interval"`
	ReconcileBatch    int           `mapstructure:"reconcile_batch"`
}

var defaults = map[string]any{
	"port":                       8080,
	"gin_mode":                   "debug",
	"store_backend":              BackendDynamoDB,
	"ledger_backend":             BackendDynamoDB,
	"payment_gateway":            GatewayStripe,
	"payment_gateway_mock":       false,
	"stripe_secret_key":          "",
	"mercadopago_access_token":   "",
	"webhook_secret":             "",
	"min_donation":               "0.50",
	"max_donation":               "999999.99",
	"gateway_timeout":            "15s",
	"ledger_retry_attempts":      3,
	"ledger_retry_backoff":       "200ms",
	"jwt_secret":                 "",
	"redis_addr":                 "",
	"redis_password":             "",
	"redis_db":                   0,
	"stats_cache_ttl":            "60s",
	"kafka_brokers":              "",
	"kafka_client_id":            "donation-service",
	"mongo_uri":                  "mongodb://localhost:27017",
	"mongo_database":             "donations",
	"mongo_campaigns_collection": "campaigns",
	"reconcile_interval":         "30s",
	"reconcile_batch":            50,
}

// Load reads the configuration. Env vars win over CONFIG_FILE, which wins over defaults.
func Load() (*Config, error) {
	v := viper.New()
	for k, def := range defaults {
		v.SetDefault(k, def)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := strings.TrimSpace(v.GetString("config_file")); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		log.Printf("[config] loaded file=%s", path)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	c.LedgerBackend = strings.ToLower(strings.TrimSpace(c.LedgerBackend))
	c.PaymentGateway = strings.ToLower(strings.TrimSpace(c.PaymentGateway))
	if c.PaymentGatewayMock {
		c.PaymentGateway = GatewayMock
	}
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendDynamoDB, BackendMemory:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.LedgerBackend {
	case BackendDynamoDB, BackendMongoDB, BackendMemory:
	default:
		return fmt.Errorf("invalid LEDGER_BACKEND %q", c.LedgerBackend)
	}
	switch c.PaymentGateway {
	case GatewayStripe, GatewayMercadoPago, GatewayMock:
	default:
		return fmt.Errorf("invalid PAYMENT_GATEWAY %q", c.PaymentGateway)
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	return nil
}

// Policy builds the payment limits and timeouts the use cases run with.
func (c *Config) Policy() (usecase.PaymentPolicy, error) {
	minDonation, err := decimal.NewFromString(c.MinDonation)
	if err != nil {
		return usecase.PaymentPolicy{}, fmt.Errorf("invalid MIN_DONATION %q: %w", c.MinDonation, err)
	}
	maxDonation, err := decimal.NewFromString(c.MaxDonation)
	if err != nil {
		return usecase.PaymentPolicy{}, fmt.Errorf("invalid MAX_DONATION %q: %w", c.MaxDonation, err)
	}
	if !minDonation.IsPositive() || maxDonation.LessThan(minDonation) {
		return usecase.PaymentPolicy{}, fmt.Errorf("donation limits out of order: min=%s max=%s", minDonation, maxDonation)
	}
	return usecase.PaymentPolicy{
		MinDonation:         minDonation,
		MaxDonation:         maxDonation,
		GatewayTimeout:      c.GatewayTimeout,
		LedgerRetryAttempts: c.LedgerRetryAttempts,
		LedgerRetryBackoff:  c.LedgerRetryBackoff,
	}, nil
}

func (c *Config) KafkaBrokerList() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
