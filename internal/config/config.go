package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server
	Log
	WiinPay
	Webhook
	Static
	Cache
	Workers
}

type Server struct {
	Port string
}

type Log struct {
	Level string
}

type WiinPay struct {
	APIKey  string
	APIURL  string
	Timeout time.Duration
}

// Webhook holds the raw (unsanitized) sources the callback URL is resolved from.
type Webhook struct {
	ExplicitURL string
	// PublicBaseURLs is ordered by priority.
	PublicBaseURLs []string
}

type Static struct {
	Dir string
}

type Cache struct {
	Addr     string
	Password string
	Channel  string
}

type Workers struct {
	NotifyCount      int
	NotifyBufferSize int
}

// publicBaseURLKeys lists the environment keys checked for a public base URL, highest priority first.
var publicBaseURLKeys = []string{
	"RENDER_EXTERNAL_URL",
	"PUBLIC_BASE_URL",
	"WIINPAY_PUBLIC_BASE_URL",
}

func NewConfig() *Config {
	baseURLs := make([]string, 0, len(publicBaseURLKeys))
	for _, key := range publicBaseURLKeys {
		baseURLs = append(baseURLs, getEnvString(key, ""))
	}

	return &Config{
		Server: Server{
			Port: getEnvString("PORT", "3000"),
		},
		Log: Log{
			Level: resolveLogLevel(getEnvString("LOG_LEVEL", ""), environment()),
		},
		WiinPay: WiinPay{
			APIKey:  getEnvString("WIINPAY_API_KEY", ""),
			APIURL:  getEnvString("WIINPAY_API_URL", "https://api-v2.wiinpay.com.br/payment/create"),
			Timeout: time.Duration(getEnvInt("WIINPAY_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Webhook: Webhook{
			ExplicitURL:    getEnvString("WIINPAY_WEBHOOK_URL", ""),
			PublicBaseURLs: baseURLs,
		},
		Static: Static{
			Dir: getEnvString("STATIC_DIR", ".."),
		},
		Cache: Cache{
			Addr:     getEnvString("REDIS_ADDR", ""),
			Password: getEnvString("REDIS_PASSWORD", ""),
			Channel:  getEnvString("WEBHOOK_CHANNEL", "wiinpay:webhooks"),
		},
		Workers: Workers{
			NotifyCount:      getEnvInt("NOTIFY_WORKERS_COUNT", 2),
			NotifyBufferSize: getEnvInt("NOTIFY_WORKERS_EVENTS_BUFFER_SIZE", 100),
		},
	}
}

func environment() string {
	if env := getEnvString("APP_ENV", ""); env != "" {
		return env
	}

	return getEnvString("NODE_ENV", "")
}

func resolveLogLevel(level, env string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		if strings.EqualFold(env, "production") {
			return "info"
		}
		return "debug"
	}

	switch level {
	case "debug", "info", "warn", "error":
		return level
	}

	return "info"
}

func getEnvString(key string, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}
