package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearStoreEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"STORE_APP_NAME", "STORE_APP_ENV", "STORE_APP_PORT",
		"STORE_REMOTE_API_URL", "STORE_REMOTE_AUTH_URL", "STORE_REMOTE_TIMEOUT",
		"STORE_CART_SHIPPING_FEE", "STORE_CART_CURRENCY", "STORE_CART_IDLE_TTL",
		"STORE_CACHE_ENABLED", "STORE_CACHE_BACKEND", "STORE_CACHE_REDIS_HOST",
		"STORE_HTTP_CORS_ALLOW_ORIGINS", "STORE_TELEMETRY_SAMPLING_RATIO",
	} {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, v) })
			os.Unsetenv(k)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearStoreEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "medistore-storefront", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "http://localhost:5000", cfg.Remote.APIURL)
		assert.Equal(t, "http://localhost:5000/api/auth", cfg.Remote.AuthURL)
		assert.Equal(t, 15*time.Second, cfg.Remote.Timeout)
		assert.Equal(t, "120", cfg.Cart.ShippingFee)
		assert.Equal(t, "BDT", cfg.Cart.Currency)
		assert.Equal(t, 30*time.Minute, cfg.Cart.IdleTTL)
		assert.Equal(t, "memory", cfg.Cache.Backend)
		assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr())
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
		assert.Equal(t, cfg.App.Name, cfg.Telemetry.ServiceName)
	})

	t.Run("loads values from environment variables with STORE prefix", func(t *testing.T) {
		clearStoreEnv(t)
		t.Setenv("STORE_APP_PORT", "9000")
		t.Setenv("STORE_REMOTE_API_URL", "https://api.medistore.test")
		t.Setenv("STORE_REMOTE_AUTH_URL", "https://auth.medistore.test/api/auth")
		t.Setenv("STORE_REMOTE_TIMEOUT", "5s")
		t.Setenv("STORE_CART_SHIPPING_FEE", "60.50")
		t.Setenv("STORE_CACHE_BACKEND", "redis")
		t.Setenv("STORE_CACHE_REDIS_HOST", "cache.local")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "https://api.medistore.test", cfg.Remote.APIURL)
		assert.Equal(t, "https://auth.medistore.test/api/auth", cfg.Remote.AuthURL)
		assert.Equal(t, 5*time.Second, cfg.Remote.Timeout)
		assert.Equal(t, "60.5", cfg.Cart.ShippingFeeDecimal().String())
		assert.Equal(t, "redis", cfg.Cache.Backend)
		assert.Equal(t, "cache.local:6379", cfg.Cache.Redis.Addr())
	})

	t.Run("rejects relative remote url", func(t *testing.T) {
		clearStoreEnv(t)
		t.Setenv("STORE_REMOTE_API_URL", "api.medistore.test")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "remote.api_url")
	})

	t.Run("rejects negative shipping fee", func(t *testing.T) {
		clearStoreEnv(t)
		t.Setenv("STORE_CART_SHIPPING_FEE", "-5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shipping_fee")
	})

	t.Run("rejects unknown cache backend", func(t *testing.T) {
		clearStoreEnv(t)
		t.Setenv("STORE_CACHE_BACKEND", "memcached")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cache.backend")
	})

	t.Run("production requires https", func(t *testing.T) {
		clearStoreEnv(t)
		t.Setenv("STORE_APP_ENV", "production")
		t.Setenv("STORE_REMOTE_API_URL", "http://api.medistore.test")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "https")
	})

	t.Run("rejects sampling ratio out of range", func(t *testing.T) {
		clearStoreEnv(t)
		t.Setenv("STORE_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}
