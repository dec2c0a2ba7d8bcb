package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/spf13/pflag"
)

type Arguments struct {
	ListenAddr        string        `env:"SERVER_ADDRESS" envDefault:"localhost:8080"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseDSN       string        `env:"DATABASE_DSN" envDefault:""`
	JWTSecret         string        `env:"JWT_SECRET" envDefault:"secret"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET" envDefault:""`
	SignatureSkew     time.Duration `env:"SIGNATURE_SKEW" envDefault:"5m"`
	DecisionTimeout   time.Duration `env:"DECISION_TIMEOUT" envDefault:"2s"`
	LedgerAddr        string        `env:"COLLATERAL_LEDGER_ADDRESS" envDefault:"http://localhost:8090"`
	LedgerTimeout     time.Duration `env:"COLLATERAL_LEDGER_TIMEOUT" envDefault:"300ms"`
	PositionCacheTTL  time.Duration `env:"POSITION_CACHE_TTL" envDefault:"500ms"`
	PositionStaleness time.Duration `env:"POSITION_STALENESS" envDefault:"5s"`
	OracleAddr        string        `env:"PRICE_ORACLE_ADDRESS" envDefault:"http://localhost:8091"`
	AssetSymbol       string        `env:"COLLATERAL_ASSET" envDefault:"SOL"`
	PriceStaleness    time.Duration `env:"PRICE_STALENESS" envDefault:"30s"`
	LTVBps            int64         `env:"LTV_BPS" envDefault:"5000"`
	MaxAmount         int64         `env:"MAX_AUTH_AMOUNT" envDefault:"500000000"`
	HoldTTL           time.Duration `env:"HOLD_TTL" envDefault:"168h"`
	PollInterval      time.Duration `env:"SETTLEMENT_POLL_INTERVAL" envDefault:"5s"`
	BatchSize         int           `env:"SETTLEMENT_BATCH_SIZE" envDefault:"10"`
}

// ServerConfig модель настроек сервера
type ServerConfig struct {
	ListenAddr  string
	LogLevel    string
	JWTSecret   string
	DatabaseDSN string
}

// ProcessorConfig модель настроек работы с процессингом карт
type ProcessorConfig struct {
	WebhookSecret   string
	SignatureSkew   time.Duration
	DecisionTimeout time.Duration
}

// LedgerConfig модель настроек чтения позиций из внешнего леджера
type LedgerConfig struct {
	LedgerAddr        string
	RequestTimeout    time.Duration
	CacheTTL          time.Duration
	PositionStaleness time.Duration
}

// OracleConfig модель настроек оракула цен
type OracleConfig struct {
	OracleAddr     string
	AssetSymbol    string
	PriceStaleness time.Duration
}

// RiskConfig модель параметров риск-политики
type RiskConfig struct {
	LTVBps    int64
	MaxAmount int64
}

// HoldConfig модель настроек удержаний и очереди расчётов
type HoldConfig struct {
	HoldTTL      time.Duration
	PollInterval time.Duration
	BatchSize    int
}

// Config модель настроек сервиса
type Config struct {
	Server    ServerConfig
	Processor ProcessorConfig
	Ledger    LedgerConfig
	Oracle    OracleConfig
	Risk      RiskConfig
	Hold      HoldConfig
}

func NewConfig() Config {

	var args Arguments
	if err := env.Parse(&args); err != nil {
		panic(fmt.Sprintf("Failed to parse enviroment var: %s", err.Error()))
	}

	var (
		server   = pflag.StringP("server", "a", args.ListenAddr, "Server listen address in a form host:port.")
		logLevel = pflag.StringP("log_level", "l", args.LogLevel, "Log level.")
		DSN      = pflag.StringP("dsn", "d", args.DatabaseDSN, "Database DSN")
		secret   = pflag.StringP("secret", "s", args.JWTSecret, "Secret to JWT")
		webhook  = pflag.StringP("webhook_secret", "w", args.WebhookSecret, "Shared secret to verify processor webhooks")
		ledger   = pflag.StringP("ledger", "c", args.LedgerAddr, "Collateral ledger address in a form host:port.")
		oracle   = pflag.StringP("oracle", "o", args.OracleAddr, "Price oracle address in a form host:port.")
	)
	pflag.Parse()

	return Config{
		Server: ServerConfig{
			ListenAddr:  *server,
			LogLevel:    *logLevel,
			DatabaseDSN: *DSN,
			JWTSecret:   *secret,
		},
		Processor: ProcessorConfig{
			WebhookSecret:   *webhook,
			SignatureSkew:   args.SignatureSkew,
			DecisionTimeout: args.DecisionTimeout,
		},
		Ledger: LedgerConfig{
			LedgerAddr:        *ledger,
			RequestTimeout:    args.LedgerTimeout,
			CacheTTL:          args.PositionCacheTTL,
			PositionStaleness: args.PositionStaleness,
		},
		Oracle: OracleConfig{
			OracleAddr:     *oracle,
			AssetSymbol:    args.AssetSymbol,
			PriceStaleness: args.PriceStaleness,
		},
		Risk: RiskConfig{
			LTVBps:    args.LTVBps,
			MaxAmount: args.MaxAmount,
		},
		Hold: HoldConfig{
			HoldTTL:      args.HoldTTL,
			PollInterval: args.PollInterval,
			BatchSize:    args.BatchSize,
		},
	}
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:  "localhost:8080",
			LogLevel:    "info",
			DatabaseDSN: "",
			JWTSecret:   "secret",
		},
		Processor: ProcessorConfig{
			WebhookSecret:   "test-secret",
			SignatureSkew:   5 * time.Minute,
			DecisionTimeout: 2 * time.Second,
		},
		Ledger: LedgerConfig{
			LedgerAddr:        "http://localhost:8090",
			RequestTimeout:    300 * time.Millisecond,
			CacheTTL:          500 * time.Millisecond,
			PositionStaleness: 5 * time.Second,
		},
		Oracle: OracleConfig{
			OracleAddr:     "http://localhost:8091",
			AssetSymbol:    "SOL",
			PriceStaleness: 30 * time.Second,
		},
		Risk: RiskConfig{
			LTVBps:    5000,
			MaxAmount: 500000000,
		},
		Hold: HoldConfig{
			HoldTTL:      168 * time.Hour,
			PollInterval: 5 * time.Second,
			BatchSize:    10,
		},
	}
}
