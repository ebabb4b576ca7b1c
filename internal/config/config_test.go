package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"SERVER_ADDRESS", "CONTEXT_TIMEOUT", "STORE_DRIVER", "ADMIN_SENTINEL_EMAIL",
		"ADMIN_COOKIE_FLAG", "SESSION_TTL_HOURS", "MAGIC_LINK_TTL_MINUTES",
		"KAFKA_BROKERS", "REQUIRE_EXISTING_POST", "BLOOM_FILTER_SIZE", "SITE_URL",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, 30*time.Second, cfg.ContextTimeout)
	assert.Equal(t, StoreMySQL, cfg.StoreDriver)
	assert.Equal(t, "admin@layers.blog", cfg.AdminEmail)
	assert.Equal(t, "logged-in", cfg.AdminCookieFlag)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 15*time.Minute, cfg.MagicLinkTTL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.True(t, cfg.RequireExistingPost)
	assert.EqualValues(t, defaultBloomBitSize, cfg.BloomBitSize)
	assert.False(t, cfg.SecureCookies())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("CONTEXT_TIMEOUT", "5")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REQUIRE_EXISTING_POST", "false")
	t.Setenv("SESSION_TTL_HOURS", "not-a-number")
	t.Setenv("SITE_URL", "https://layers.blog")

	cfg := Load()
	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.ContextTimeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.RequireExistingPost)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SecureCookies())
}
