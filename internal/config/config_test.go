package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DefaultValues(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.LogLevel)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "identity", cfg.Mongo.Database)
	assert.Equal(t, "users", cfg.Mongo.UsersCollection)
	assert.Equal(t, "roles", cfg.Mongo.RolesCollection)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*Config)
	}{
		{
			name: "log level override",
			envVars: map[string]string{
				"LOG_LEVEL": "2",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, 2, cfg.LogLevel)
			},
		},
		{
			name: "mongo config override",
			envVars: map[string]string{
				"MONGO_URI":              "mongodb://mongo.example.com:27017",
				"MONGO_DATABASE":         "identity_prod",
				"MONGO_USERS_COLLECTION": "app_users",
				"MONGO_ROLES_COLLECTION": "app_roles",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "mongodb://mongo.example.com:27017", cfg.Mongo.URI)
				assert.Equal(t, "identity_prod", cfg.Mongo.Database)
				assert.Equal(t, "app_users", cfg.Mongo.UsersCollection)
				assert.Equal(t, "app_roles", cfg.Mongo.RolesCollection)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				os.Setenv(key, value)
				defer os.Unsetenv(key)
			}

			cfg, err := NewConfig()
			require.NoError(t, err)

			tt.expected(cfg)
		})
	}
}
