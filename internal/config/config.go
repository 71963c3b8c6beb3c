package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Postgres struct {
	Host     string
	Port     string
	DB       string
	User     string
	Password string
	SSLMode  string
}

type Kafka struct {
	Brokers     []string
	Topic       string
	Partitions  int
	Replication int
}

type Stripe struct {
	SecretKey string
	// APIURL overrides the gateway base URL; empty means the real API.
	APIURL string
}

type Retry struct {
	Attempts     int
	Base         time.Duration
	Max          time.Duration
	JitterFactor float64
}

type Config struct {
	HTTPAddr    string
	CacheCap    int
	JWTSecret   string
	CORSOrigins []string

	Pg         Postgres
	Kafka      Kafka
	Stripe     Stripe
	EventRetry Retry
}

// Load fatals on error for simplicity in main().
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load("env/.env")

	cfg := Config{
		HTTPAddr:  envDefault("HTTP_ADDR", ":8081"),
		CacheCap:  envInt("CACHE_CAP", 1000),
		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
		CORSOrigins: splitCSV(envDefault("CORS_ORIGINS",
			"https://felipe-sobarzo-full-stack-res-a3332bfb2e0d.herokuapp.com,http://localhost:3000")),

		Pg: Postgres{
			Host:     strings.TrimSpace(os.Getenv("PG_HOST")),
			Port:     strings.TrimSpace(envDefault("PG_PORT", "5432")),
			DB:       strings.TrimSpace(os.Getenv("PG_DB")),
			User:     strings.TrimSpace(os.Getenv("PG_USER")),
			Password: strings.TrimSpace(os.Getenv("PG_PASSWORD")),
			SSLMode:  strings.TrimSpace(envDefault("PG_SSLMODE", "disable")),
		},

		Kafka: Kafka{
			Brokers:     splitCSV(strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))),
			Topic:       strings.TrimSpace(envDefault("KAFKA_TOPIC", "orders.created")),
			Partitions:  envInt("KAFKA_PARTITIONS", 1),
			Replication: envInt("KAFKA_REPLICATION", 1),
		},

		Stripe: Stripe{
			SecretKey: strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
			APIURL:    strings.TrimSpace(os.Getenv("STRIPE_API_URL")),
		},

		EventRetry: Retry{
			Attempts:     envInt("EVENT_RETRY_ATTEMPTS", 3),
			Base:         envDurationMS("EVENT_RETRY_BASE", 100*time.Millisecond),
			Max:          envDurationMS("EVENT_RETRY_MAX", 2*time.Second),
			JitterFactor: envFloat64("EVENT_RETRY_JITTERFACTOR", 0.3),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	req := map[string]string{
		"PG_HOST":           c.Pg.Host,
		"PG_DB":             c.Pg.DB,
		"PG_USER":           c.Pg.User,
		"PG_PASSWORD":       c.Pg.Password,
		"STRIPE_SECRET_KEY": c.Stripe.SecretKey,
	}
	for k, v := range req {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &missingEnvError{Keys: missing}
	}

	if c.CacheCap <= 0 {
		log.Printf("CACHE_CAP is %d, adjusting to 1", c.CacheCap)
	}
	if c.EventRetry.Attempts < 0 {
		log.Printf("EVENT_RETRY_ATTEMPTS is %d, adjusting to 0", c.EventRetry.Attempts)
	}
	if len(c.CORSOrigins) == 0 {
		log.Printf("CORS_ORIGINS is empty, cross-origin requests will be refused")
	}
	// Kafka is optional: without brokers the publisher is simply not wired.
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

// DSN builds a proper Postgres URL, safely escaping user/pass and query.
func (c Config) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Pg.User, c.Pg.Password),
		Host:   net.JoinHostPort(c.Pg.Host, c.Pg.Port),
		Path:   "/" + c.Pg.DB,
	}
	q := url.Values{}
	if c.Pg.SSLMode != "" {
		q.Set("sslmode", c.Pg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

func envFloat64(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %.3f: %v", k, v, def, err)
		return def
	}
	return f
}

// envDurationMS supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "2m").
func envDurationMS(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
