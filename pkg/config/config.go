package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv          string `envconfig:"APP_ENV"`
	Port            int    `envconfig:"PORT" default:"8080"`
	SentryDSN       string `envconfig:"SENTRY_DSN"`
	AllowOrigins    string `envconfig:"ALLOW_ORIGINS" default:"*"`
	RateLimit       int    `envconfig:"RATE_LIMIT" default:"20"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	StoreDriver     string `envconfig:"STORE_DRIVER" default:"mongo"`

	Mongo struct {
		URI            string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
		Database       string `envconfig:"MONGO_DATABASE" default:"moviedb"`
		Collection     string `envconfig:"MONGO_COLLECTION" default:"movies"`
		ConnectTimeout int    `envconfig:"MONGO_CONNECT_TIMEOUT" default:"10"`
	}
	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT" default:"5432"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	DynamoDB struct {
		Region       string `envconfig:"DDB_REGION"`
		Endpoint     string `envconfig:"DDB_ENDPOINT"`
		AccessKey    string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey    string `envconfig:"DDB_SECRET_KEY"`
		SessionToken string `envconfig:"DDB_SESSION_TOKEN"`
		MoviesTable  string `envconfig:"DDB_MOVIES_TABLE" default:"movies"`
		CreateTable  bool   `envconfig:"DDB_CREATE_TABLE"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

// Origins splits the comma separated ALLOW_ORIGINS value.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}
