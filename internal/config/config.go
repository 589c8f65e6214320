package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	defaultEventbriteURL = "https://www.eventbriteapi.com/v3"
	defaultCalendarURL   = "https://www.googleapis.com/calendar/v3"
	defaultICSMaxBytes   = 10 << 20
)

// Config is built once at startup and handed to the router. Nothing reads
// the environment after Load returns.
type Config struct {
	AppEnv      string `validate:"required"`
	Port        string `validate:"required,numeric"`
	ServiceName string `validate:"required"`

	// Upstream credentials. Empty values are allowed at startup; the
	// corresponding endpoint refuses requests instead.
	EventbriteToken string
	GoogleAPIKey    string

	EventbriteBaseURL     string `validate:"required,url"`
	GoogleCalendarBaseURL string `validate:"required,url"`

	// UpstreamTimeout of zero disables the per-call deadline.
	UpstreamTimeout time.Duration `validate:"gte=0"`
	ICSMaxBytes     int64         `validate:"gt=0"`

	CORSAllowedOrigins []string `validate:"required,min=1,dive,required"`

	LogLevel  string `validate:"required,oneof=trace debug info warn error fatal panic disabled"`
	LogFormat string `validate:"required,oneof=json console"`

	TracingEnabled bool
	OTLPEndpoint   string `validate:"required_if=TracingEnabled true"`
}

var validate = validator.New()

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		Port:        getEnv("PORT", "3000"),
		ServiceName: getEnv("SERVICE_NAME", "aggregator-service"),

		EventbriteToken: getEnv("EVENTBRITE_TOKEN", ""),
		GoogleAPIKey:    getEnv("GOOGLE_API_KEY", ""),

		EventbriteBaseURL:     strings.TrimRight(getEnv("EVENTBRITE_API_URL", defaultEventbriteURL), "/"),
		GoogleCalendarBaseURL: strings.TrimRight(getEnv("GOOGLE_CALENDAR_API_URL", defaultCalendarURL), "/"),

		UpstreamTimeout: getDuration("UPSTREAM_TIMEOUT", 0),
		ICSMaxBytes:     getInt64("ICS_MAX_BYTES", defaultICSMaxBytes),

		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "console")),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	tracing, err := getBool("TRACING_ENABLED", false)
	if err != nil {
		return nil, err
	}
	cfg.TracingEnabled = tracing

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid field by its env-facing name.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config %s: failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getInt64(k string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return i
}

func getBool(k string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	switch strings.ToLower(v) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean env %s=%q", k, v)
	}
}

func getDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getList(k string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
