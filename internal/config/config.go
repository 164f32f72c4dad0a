package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains identity store configuration parameters.
type Config struct {
	LogLevel int   `env:"LOG_LEVEL" envDefault:"0"`
	Mongo    Mongo `envPrefix:"MONGO_"`
}

// Mongo contains document store connection parameters.
type Mongo struct {
	URI             string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database        string `env:"DATABASE" envDefault:"identity"`
	UsersCollection string `env:"USERS_COLLECTION" envDefault:"users"`
	RolesCollection string `env:"ROLES_COLLECTION" envDefault:"roles"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
