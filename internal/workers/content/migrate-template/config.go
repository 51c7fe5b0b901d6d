// internal/workers/content/migrate-template/config.go
package migratetemplate

import "time"

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  30 * time.Second,
		CacheTTL: time.Hour,
	}
}
