package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all process configuration, read once at startup. There is no
// hot reload; restart the process to pick up changes.
type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`

	RoboflowAPIKey       string        `envconfig:"ROBOFLOW_API_KEY"`
	RoboflowModelID      string        `envconfig:"ROBOFLOW_MODEL_ID" default:"skin-conditions"`
	RoboflowModelVersion int           `envconfig:"ROBOFLOW_MODEL_VERSION" default:"1"`
	RoboflowBaseURL      string        `envconfig:"ROBOFLOW_BASE_URL" default:"https://classify.roboflow.com"`
	UpstreamTimeout      time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"15s"`

	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"host=postgres user=postgres password=postgres dbname=skinoai port=5432 sslmode=disable"`
	RedisAddr   string `envconfig:"REDIS_ADDR" default:"redis:6379"`

	JWTSecret   string `envconfig:"JWT_SECRET" default:"dev-secret"`
	JWTAudience string `envconfig:"JWT_AUDIENCE"`

	MaxImageBytes     int  `envconfig:"MAX_IMAGE_BYTES" default:"10485760"`
	MaxImageDimension uint `envconfig:"MAX_IMAGE_DIMENSION" default:"1024"`
}

// Load reads configuration from the environment, after loading a .env file
// when one is present next to the binary.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.RoboflowAPIKey) == "" {
		return nil, errors.New("ROBOFLOW_API_KEY is required")
	}
	return &cfg, nil
}
