package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	DBURL           string `envconfig:"DB_URL" required:"true"`
	EmailServiceURL string `envconfig:"BASE_URL_EMAIL_SERVICE" required:"true"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error

	SchedulerInterval time.Duration `envconfig:"SCHEDULER_INTERVAL" default:"1h"`
	TriggerHour       int           `envconfig:"TRIGGER_HOUR" default:"9"`

	MaxSendRetries int           `envconfig:"MAX_SEND_RETRIES" default:"3"`
	RetryBackoff   time.Duration `envconfig:"RETRY_BACKOFF" default:"2s"`
	SendTimeout    time.Duration `envconfig:"SEND_TIMEOUT" default:"10s"`
}

// App is the process-wide configuration, populated once by Load.
var App Config

// Load reads environment variables into App.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	App = cfg
	return cfg, nil
}
