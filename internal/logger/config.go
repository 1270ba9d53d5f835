package logger

import (
	"io"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds logger configuration loaded from environment variables.
type EnvConfig struct {
	Level       string    `env:"LOG_LEVEL"    envDefault:"info"`
	Format      string    `env:"LOG_FORMAT"   envDefault:"json"`
	ServiceName string    `env:"SERVICE_NAME" envDefault:"calsnap"`
	Environment string    `env:"APP_ENV"      envDefault:"local"`
	Output      io.Writer

	// File output, used outside the local environment.
	LogFile     string `env:"LOG_FILE"      envDefault:"/var/log/calsnap/app.log"`
	LogFileOnly bool   `env:"LOG_FILE_ONLY" envDefault:"false"`

	// Rotation
	MaxSize    int  `env:"LOG_MAX_SIZE"    envDefault:"100"`
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	MaxAge     int  `env:"LOG_MAX_AGE"     envDefault:"30"`
	Compress   bool `env:"LOG_COMPRESS"    envDefault:"true"`
}

// LoadFromEnv loads configuration from environment variables.
// Unparseable values fall back to the defaults.
func LoadFromEnv() *EnvConfig {
	cfg, err := env.ParseAs[EnvConfig]()
	if err != nil {
		cfg = EnvConfig{}
		_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	}
	return &cfg
}
