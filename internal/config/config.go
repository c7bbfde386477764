package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Most values have development defaults so
// the service can run from a bare checkout; JWT_SECRET is the only
// variable enforced in the "prod" environment.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	DBUser          string // database username
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
	JWTSecret       string // secret used to sign JWTs
	AccessTTLMin    int    // access token time-to-live in minutes
	BcryptCost      int    // bcrypt cost for password hashing
	SessionTTLHours int    // server-side session lifetime in hours
	SessionCookie   string // name of the session cookie
	RedisAddr       string // host:port of the Redis server
	RedisPassword   string // Redis password (optional)
	RedisDB         int    // Redis database number
	RedisTLS        bool   // dial Redis over TLS
}

// Load reads configuration values from environment variables and returns
// a Config. In "prod" JWT_SECRET must be set explicitly; everywhere else
// a fixed development secret is used as fallback.
func Load() Config {
	cfg := Config{
		Env:             getenv("APP_ENV", "dev"),
		Port:            getenv("APP_PORT", "5000"),
		DBUser:          getenv("DB_USER", "root"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          getenv("DB_HOST", "localhost"),
		DBPort:          getenv("DB_PORT", "3306"),
		DBName:          getenv("DB_NAME", "turnero"),
		JWTSecret:       getenv("JWT_SECRET", "turnero-dev-secret"),
		AccessTTLMin:    getint("ACCESS_TOKEN_TTL_MIN", 480),
		BcryptCost:      getint("BCRYPT_COST", 10),
		SessionTTLHours: getint("SESSION_TTL_HOURS", 8),
		SessionCookie:   getenv("SESSION_COOKIE", "turnero_session"),
		RedisAddr:       redisAddr(),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getint("REDIS_DB", 0),
		RedisTLS:        getbool("REDIS_TLS"),
	}
	if cfg.Env == "prod" && os.Getenv("JWT_SECRET") == "" {
		log.Fatal("missing required env var: JWT_SECRET")
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func getbool(key string) bool {
	v := os.Getenv(key)
	return v == "1" || strings.EqualFold(v, "true")
}

// redisAddr resolves the Redis address: REDIS_HOST/REDIS_PORT win over
// the REDIS_ADDR shorthand when both are set.
func redisAddr() string {
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		return host + ":" + port
	}
	return getenv("REDIS_ADDR", "localhost:6379")
}
