package database

import (
	"testing"
	"time"

	"storefront/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartPoolConfig(t *testing.T) {
	tests := []struct {
		name             string
		cfg              config.DatabaseConfig
		expectedMax      int32
		expectedMin      int32
		expectedLifetime time.Duration
	}{
		{
			name: "Configured limits",
			cfg: config.DatabaseConfig{
				Host: "localhost", Port: 5432, User: "u", Password: "p", Database: "carts",
				MaxConnections: 10, MinConnections: 2, MaxConnLifetime: 600,
			},
			expectedMax:      10,
			expectedMin:      2,
			expectedLifetime: 10 * time.Minute,
		},
		{
			name: "Minimum capped by maximum",
			cfg: config.DatabaseConfig{
				Host: "localhost", Port: 5432, User: "u", Password: "p", Database: "carts",
				MaxConnections: 3, MinConnections: 8, MaxConnLifetime: 60,
			},
			expectedMax:      3,
			expectedMin:      3,
			expectedLifetime: time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poolConfig, err := cartPoolConfig(tt.cfg)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedMax, poolConfig.MaxConns)
			assert.Equal(t, tt.expectedMin, poolConfig.MinConns)
			assert.Equal(t, tt.expectedLifetime, poolConfig.MaxConnLifetime)
			assert.Equal(t, cartIdleConnTime, poolConfig.MaxConnIdleTime)
			assert.Equal(t, "carts", poolConfig.ConnConfig.Database)
		})
	}
}

func TestCartPoolConfig_RuntimeParams(t *testing.T) {
	poolConfig, err := cartPoolConfig(config.DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Database: "carts", MaxConnections: 4,
	})
	require.NoError(t, err)

	params := poolConfig.ConnConfig.RuntimeParams
	assert.Equal(t, "storefront-carts", params["application_name"])
	assert.Equal(t, "5000", params["statement_timeout"])
}
