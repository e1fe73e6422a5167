package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	Env         string
	ServiceName string
	JWTSecret   string
	CookieName  string
	// StockAllowNegative reproduces the legacy unguarded stock counter
	// behavior; leave off outside compatibility testing.
	StockAllowNegative bool
}

// Load reads .env when present, then the environment, applying defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:               getenv("ADDR", ":8080"),
		Env:                getenv("ENV", "dev"),
		ServiceName:        getenv("SERVICE_NAME", "waveshop"),
		JWTSecret:          getenv("JWT_SECRET", "dev-secret"),
		CookieName:         getenv("COOKIE_NAME", "w_auth"),
		StockAllowNegative: getbool("STOCK_ALLOW_NEGATIVE", false),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
