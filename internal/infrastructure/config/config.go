package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SheetPath locates the tracking sheet CSV file.
	SheetPath string `env:"SHEET_PATH, default=tracking_sheet.csv"`

	// RowDelay paces batch runs between sheet rows.
	RowDelay time.Duration `env:"ROW_DELAY, default=1s"`

	// HTTPTimeout bounds every outbound carrier API call.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT, default=10s"`

	UPS         UPSConfig
	USPS        USPSConfig
	DHL         DHLConfig
	ShipStation ShipStationConfig
	Origin      OriginConfig
	Redis       RedisConfig
}

type UPSConfig struct {
	ClientID     string `env:"UPS_CLIENT_ID"`
	ClientSecret string `env:"UPS_CLIENT_SECRET"`
}

type USPSConfig struct {
	UserID string `env:"USPS_USER_ID"`
}

type DHLConfig struct {
	APIKey string `env:"DHL_API_KEY"`
}

type ShipStationConfig struct {
	APIKey string `env:"SHIPSTATION_API_KEY"`
	// SeedWindowDays bounds how far back the seeder looks for shipments.
	SeedWindowDays int `env:"SHIPSTATION_SEED_WINDOW_DAYS, default=30"`
}

// OriginConfig is the shipper's own address, used as the origin for
// time-in-transit queries.
type OriginConfig struct {
	Street     string `env:"ORIGIN_STREET"`
	City       string `env:"ORIGIN_CITY"`
	State      string `env:"ORIGIN_STATE"`
	PostalCode string `env:"ORIGIN_ZIP"`
	Country    string `env:"ORIGIN_COUNTRY, default=US"`
}

type RedisConfig struct {
	// Addr may be empty, which disables the tracking result cache.
	Addr     string        `env:"REDIS_ADDR"`
	DB       int           `env:"REDIS_DB,  default=0"`
	CacheTTL time.Duration `env:"CACHE_TTL, default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
