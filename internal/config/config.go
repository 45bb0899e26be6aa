package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/ardentinvoicing/ardent/internal/types"
)

type Configuration struct {
	Deployment   DeploymentConfig   `validate:"required"`
	Server       ServerConfig       `validate:"required"`
	Logging      LoggingConfig      `validate:"required"`
	Postgres     PostgresConfig     `validate:"required"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Paystack     PaystackConfig     `mapstructure:"paystack"`
	Email        EmailConfig        `mapstructure:"email"`
	ExchangeRate ExchangeRateConfig `mapstructure:"exchange_rate"`
	S3           S3Config           `mapstructure:"s3"`
	Cron         CronConfig         `mapstructure:"cron"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	DBName                 string
	SSLMode                string
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeMinutes int
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type AuthConfig struct {
	// Secret signs the API JWTs
	Secret string
	// TokenExpiryHours bounds session lifetime
	TokenExpiryHours int
}

func (c AuthConfig) TokenExpiry() time.Duration {
	hours := c.TokenExpiryHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

type PaystackConfig struct {
	BaseURL string
	// SecretKey authorises outbound API calls and verifies inbound
	// webhook signatures
	SecretKey   string
	CallbackURL string
}

type EmailConfig struct {
	Enabled      bool
	APIKey       string
	FromAddress  string
	ReplyTo      string
	AdminAddress string
}

type ExchangeRateConfig struct {
	BaseURL      string
	APIKey       string
	BaseCurrency string
	TTLMinutes   int
}

func (c ExchangeRateConfig) TTL() time.Duration {
	minutes := c.TTLMinutes
	if minutes == 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

type S3Config struct {
	Enabled       bool
	Region        string
	BackupBucket  string
	ReceiptBucket string
	// BackupRetentionDays bounds how long table dumps are kept
	BackupRetentionDays int
}

type CronConfig struct {
	// APIKey guards the /cron route group from public invocation
	APIKey string
	// PastDueGraceDays is how long a subscription may stay past_due
	// before the sweep cancels it
	PastDueGraceDays int
	// NotificationRetentionDays and WebhookRetentionDays bound the
	// retention cleanup job
	NotificationRetentionDays int
	WebhookRetentionDays      int
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ardent")

	v.SetEnvPrefix("ARDENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.maxopenconns", 10)
	v.SetDefault("postgres.maxidleconns", 5)
	v.SetDefault("postgres.connmaxlifetimeminutes", 30)
	v.SetDefault("paystack.baseurl", "https://api.paystack.co")
	v.SetDefault("exchange_rate.basecurrency", "GHS")
	v.SetDefault("exchange_rate.ttlminutes", 60)
	v.SetDefault("auth.tokenexpiryhours", 24)
	v.SetDefault("cron.pastduegracedays", 7)
	v.SetDefault("cron.notificationretentiondays", 90)
	v.SetDefault("cron.webhookretentiondays", 30)
	v.SetDefault("s3.backupretentiondays", 30)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Postgres: PostgresConfig{
			Host: "localhost", Port: 5432, User: "ardent",
			DBName: "ardent", SSLMode: "disable",
		},
		ExchangeRate: ExchangeRateConfig{BaseCurrency: "GHS", TTLMinutes: 60},
		Cron: CronConfig{
			PastDueGraceDays:          7,
			NotificationRetentionDays: 90,
			WebhookRetentionDays:      30,
		},
	}
}
