// internal/workers/content/detect-gaps/config.go
package detectgaps

import "time"

type Config struct {
	Timeout          time.Duration
	EnableValidation bool `mapstructure:"enable_validation"`
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          30 * time.Second,
		EnableValidation: true,
	}
}
