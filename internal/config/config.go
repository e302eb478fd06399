package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	AppEnv         string `env:"APP_ENV" envDefault:"production"`
	DatabaseURL    string `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns     int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"true"`

	JWTKey        string `env:"JWT_KEY"`
	JWTTTLMinutes int    `env:"JWT_TTL_MINUTES" envDefault:"0"`
	BcryptCost    int    `env:"BCRYPT_COST" envDefault:"10"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	LoginMaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS" envDefault:"10"`
	LoginAttemptWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW" envDefault:"15m"`
	TrustedProxies     []string      `env:"TRUSTED_PROXIES" envSeparator:","`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment indica si el servicio corre en modo desarrollo.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// JWTTTL devuelve la vigencia de los tokens; cero significa sin expiración.
func (c *Config) JWTTTL() time.Duration {
	if c.JWTTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(c.JWTTTLMinutes) * time.Minute
}
