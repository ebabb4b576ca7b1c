// Package config reads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout       = 30
	defaultAddress       = ":9090"
	defaultCacheDB       = 0
	defaultBloomBitSize  = 10000000
	defaultAdminEmail    = "admin@layers.blog"
	defaultAdminFlag     = "logged-in"
	defaultAdminTTLHours = 720
	defaultSessionHours  = 720
	defaultMagicLinkMins = 15
	defaultMailTopic     = "mail.magic-link"
	defaultMongoDatabase = "layers"
)

const (
	StoreMySQL = "mysql"
	StoreMongo = "mongo"
)

type Database struct {
	Host, Port, User, Pass, Name string
}

type Cache struct {
	Host, Port, Pass string
	DB               int
}

type Config struct {
	Env            string
	LogLevel       string
	ServerAddress  string
	ContextTimeout time.Duration
	SiteURL        string

	StoreDriver   string
	Database      Database
	MongoURI      string
	MongoDatabase string
	Cache         Cache
	BloomBitSize  uint64

	AdminEmail        string
	AdminCookieSecret string
	AdminCookieFlag   string
	AdminCookieTTL    time.Duration
	AdminPasswordHash string

	SessionTTL   time.Duration
	MagicLinkTTL time.Duration

	KafkaBrokers   []string
	KafkaMailTopic string

	RequireExistingPost bool
}

// Load reads .env if present and then the environment. Unparsable values
// fall back to their defaults with a log line.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file loaded, reading environment only")
	}

	return Config{
		Env:            os.Getenv("ENV"),
		LogLevel:       getString("LOG_LEVEL", "info"),
		ServerAddress:  getString("SERVER_ADDRESS", defaultAddress),
		ContextTimeout: time.Duration(getInt("CONTEXT_TIMEOUT", defaultTimeout)) * time.Second,
		SiteURL:        os.Getenv("SITE_URL"),

		StoreDriver: strings.ToLower(getString("STORE_DRIVER", StoreMySQL)),
		Database: Database{
			Host: os.Getenv("DATABASE_HOST"),
			Port: os.Getenv("DATABASE_PORT"),
			User: os.Getenv("DATABASE_USER"),
			Pass: os.Getenv("DATABASE_PASS"),
			Name: os.Getenv("DATABASE_NAME"),
		},
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getString("MONGO_DATABASE", defaultMongoDatabase),
		Cache: Cache{
			Host: os.Getenv("CACHE_HOST"),
			Port: os.Getenv("CACHE_PORT"),
			Pass: os.Getenv("CACHE_PASS"),
			DB:   getInt("CACHE_DB", defaultCacheDB),
		},
		BloomBitSize: getUint("BLOOM_FILTER_SIZE", defaultBloomBitSize),

		AdminEmail:        getString("ADMIN_SENTINEL_EMAIL", defaultAdminEmail),
		AdminCookieSecret: os.Getenv("ADMIN_COOKIE_SECRET"),
		AdminCookieFlag:   getString("ADMIN_COOKIE_FLAG", defaultAdminFlag),
		AdminCookieTTL:    time.Duration(getInt("ADMIN_COOKIE_TTL_HOURS", defaultAdminTTLHours)) * time.Hour,
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		SessionTTL:   time.Duration(getInt("SESSION_TTL_HOURS", defaultSessionHours)) * time.Hour,
		MagicLinkTTL: time.Duration(getInt("MAGIC_LINK_TTL_MINUTES", defaultMagicLinkMins)) * time.Minute,

		KafkaBrokers:   splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaMailTopic: getString("KAFKA_MAIL_TOPIC", defaultMailTopic),

		RequireExistingPost: getBool("REQUIRE_EXISTING_POST", true),
	}
}

// SecureCookies is true when the site is served over https.
func (c Config) SecureCookies() bool {
	return strings.HasPrefix(c.SiteURL, "https://")
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		logrus.Warnf("failed to parse %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func getUint(key string, def uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n == 0 {
		logrus.Warnf("failed to parse %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logrus.Warnf("failed to parse %s=%q, using default %t", key, v, def)
		return def
	}
	return b
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
