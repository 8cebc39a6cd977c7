package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/a1tips/paymentgateway/pkg/hostedcheckout"
	"github.com/a1tips/paymentgateway/pkg/momo"
	"github.com/a1tips/paymentgateway/pkg/mq"
	"github.com/a1tips/paymentgateway/pkg/mysql"
	"github.com/a1tips/paymentgateway/pkg/tokencache"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderMoMo           = "momo"
	ProviderHostedCheckout = "hosted_checkout"
)

const (
	defaultTimeout = 15 * time.Second
	maxTimeout     = 60 * time.Second
)

type Config struct {
	API            API                   `mapstructure:"api"`
	Database       mysql.Config          `mapstructure:"database"`
	RabbitMQ       mq.Config             `mapstructure:"rabbitmq"`
	Redis          tokencache.Config     `mapstructure:"redis"`
	Payments       Payments              `mapstructure:"payments"`
	MoMo           momo.Config           `mapstructure:"momo"`
	HostedCheckout hostedcheckout.Config `mapstructure:"hosted_checkout"`
	Outbox         Outbox                `mapstructure:"outbox"`
}

type API struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Payments struct {
	Provider string `mapstructure:"provider"`
}

type Outbox struct {
	Queue     string `mapstructure:"queue"`
	Schedule  string `mapstructure:"schedule"`
	BatchSize int    `mapstructure:"batch_size"`
}

func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads config.yml from dir. Values from an optional .env file and
// the environment win over the file, e.g. MOMO_API_KEY for momo.api_key.
func LoadFrom(dir string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(dir)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", "8000")
	v.SetDefault("api.allowed_origins", []string{
		"http://localhost:3000",
		"https://a1tips.vercel.app",
		"https://www.a1tips.com",
	})
	v.SetDefault("payments.provider", ProviderMoMo)
	v.SetDefault("momo.target_environment", "sandbox")
	v.SetDefault("momo.currency", "EUR")
	v.SetDefault("momo.timeout", defaultTimeout)
	v.SetDefault("momo.token_expiry_margin", 30*time.Second)
	v.SetDefault("hosted_checkout.timeout", defaultTimeout)
	v.SetDefault("redis.namespace", "paymentgateway")
	v.SetDefault("outbox.queue", "payments.recorded")
	v.SetDefault("outbox.schedule", "@every 10s")
	v.SetDefault("outbox.batch_size", 100)
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Payments.Provider {
	case ProviderMoMo:
		if c.MoMo.BaseURL == "" || c.MoMo.APIUser == "" || c.MoMo.APIKey == "" || c.MoMo.SubscriptionKey == "" {
			errs = append(errs, errors.New("momo: base_url, api_user, api_key and subscription_key are required"))
		}
		if _, err := c.MoMo.Divisor(); err != nil {
			errs = append(errs, fmt.Errorf("momo: %w", err))
		}
		if err := validateTimeout(c.MoMo.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("momo: %w", err))
		}
	case ProviderHostedCheckout:
		if c.HostedCheckout.URL == "" || c.HostedCheckout.SecretKey == "" || c.HostedCheckout.RedirectURL == "" {
			errs = append(errs, errors.New("hosted_checkout: url, secret_key and redirect_url are required"))
		}
		if err := validateTimeout(c.HostedCheckout.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("hosted_checkout: %w", err))
		}
	default:
		errs = append(errs, fmt.Errorf("payments.provider: unknown provider %q", c.Payments.Provider))
	}

	if c.Outbox.BatchSize <= 0 {
		errs = append(errs, errors.New("outbox.batch_size must be positive"))
	}

	return errors.Join(errs...)
}

func validateTimeout(timeout time.Duration) error {
	if timeout <= 0 || timeout > maxTimeout {
		return fmt.Errorf("timeout %s must be within (0, %s]", timeout, maxTimeout)
	}

	return nil
}
