package config

import (
	"fmt"
	"strings"
	"time"
)

type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"
	StoragePostgres StorageDriver = "postgres"
)

func (d *StorageDriver) Decode(value string) error {
	switch StorageDriver(strings.ToLower(value)) {
	case StorageMemory, StoragePostgres:
		*d = StorageDriver(strings.ToLower(value))
		return nil
	default:
		return fmt.Errorf("invalid storage driver: %s", value)
	}
}

type DatabaseConfig struct {
	BaseConfig
	Driver   StorageDriver  `envconfig:"STORAGE_DRIVER" default:"memory"`
	Seed     bool           `envconfig:"STORAGE_SEED" default:"false"`
	Postgres PostgresConfig `envconfig:"POSTGRES"`
}

type PostgresConfig struct {
	Host            string        `envconfig:"HOST" default:"localhost" validate:"required"`
	Port            int           `envconfig:"PORT" default:"5432" validate:"min=1,max=65535"`
	User            string        `envconfig:"USER" default:"postgres" validate:"required"`
	Password        string        `envconfig:"PASSWORD" default:""`
	Database        string        `envconfig:"DB" default:"avaliacao_docente" validate:"required"`
	SSLMode         string        `envconfig:"SSL_MODE" default:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25" validate:"min=1"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"5" validate:"min=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"5m"`
	ConnMaxIdleTime time.Duration `envconfig:"CONN_MAX_IDLE_TIME" default:"5m"`
	ConnectAttempts int           `envconfig:"CONNECT_ATTEMPTS" default:"5" validate:"min=1"`
	ConnectBackoff  time.Duration `envconfig:"CONNECT_BACKOFF" default:"2s"`
}

// DSN quotes the password so values with spaces survive lib/pq's key=value parser.
func (c *PostgresConfig) DSN() string {
	password := "''"
	if c.Password != "" {
		password = "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(c.Password) + "'"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, password, c.Database, c.SSLMode)
}

func (c *PostgresConfig) GetMaxOpenConns() int {
	return c.MaxOpenConns
}

func (c *PostgresConfig) GetMaxIdleConns() int {
	return c.MaxIdleConns
}

func (c *PostgresConfig) GetConnMaxLifetime() time.Duration {
	return c.ConnMaxLifetime
}

func (c *PostgresConfig) GetConnMaxIdleTime() time.Duration {
	return c.ConnMaxIdleTime
}

func (c *DatabaseConfig) UsesPostgres() bool {
	return c.Driver == StoragePostgres
}

func LoadDatabase() (*DatabaseConfig, error) {
	var cfg DatabaseConfig
	if err := load(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
