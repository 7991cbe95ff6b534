package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupabaseConfig(t *testing.T) {
	t.Run("derived urls", func(t *testing.T) {
		cfg := &SupabaseConfig{URL: "https://abc.supabase.co", ServiceRoleKey: "key"}

		assert.Equal(t, "https://abc.supabase.co/rest/v1", cfg.RESTURL())
		assert.Equal(t, "https://abc.supabase.co/auth/v1/admin/users", cfg.AuthAdminURL())
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing key", func(t *testing.T) {
		cfg := &SupabaseConfig{URL: "https://abc.supabase.co"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing url", func(t *testing.T) {
		cfg := &SupabaseConfig{ServiceRoleKey: "key"}
		assert.Error(t, cfg.Validate())
	})
}

func TestDBConfigDSN(t *testing.T) {
	cfg := &DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}

func TestRedisConfigEnabled(t *testing.T) {
	assert.False(t, (&RedisConfig{}).Enabled())
	assert.True(t, (&RedisConfig{Addr: "localhost:6379"}).Enabled())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("VRECRUIT_TEST_KEY", "value")
	assert.Equal(t, "value", getEnv("VRECRUIT_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnv("VRECRUIT_TEST_MISSING", "fallback"))
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		logger, err := NewLogger(env)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}
