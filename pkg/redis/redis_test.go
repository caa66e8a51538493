package redis

import (
	"testing"

	"github.com/shopworks/storefront-backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_UnreachableBackendStaysDisabled(t *testing.T) {
	err := Init(&config.RedisConfig{
		Host: "127.0.0.1",
		Port: "1", // nothing listens here
		DB:   0,
	})
	require.Error(t, err)

	// A failed connection must not leave the package half-enabled;
	// callers branch on Enabled before issuing blacklist lookups.
	assert.False(t, Enabled())
}

func TestEnabled_FalseBeforeInit(t *testing.T) {
	assert.False(t, Enabled())
}
