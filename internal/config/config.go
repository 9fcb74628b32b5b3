package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string

	CookieSecure bool
	SessionTTL   time.Duration

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	// Written by `go generate ./cmd/app`.
	SwaggerDoc string
}

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	SessionsRedis  = "redis"
	SessionsMemory = "memory"
)

type Storage struct {
	Driver   string
	Sessions string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Plex struct {
	URL      string
	Token    string
	ClientID string
	Product  string
	Section  string
}

type Room struct {
	// Zero disables the idle room sweep.
	TTL           time.Duration
	CleanupPeriod int
}

type Log struct {
	Level  string
	Format string

	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type Config struct {
	HTTP     HTTPServer
	Storage  Storage
	Redis    RedisCache
	Postgres Postgres
	Plex     Plex
	Room     Room
	Log      Log
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := FromEnv()
	log.Printf("%s backend config : %+v\n", logtag, cfg.redacted())
	return cfg
}

// FromEnv builds the config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		HTTP:     *newHTTP(),
		Storage:  *newStorage(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		Plex:     *newPlex(),
		Room:     *newRoom(),
		Log:      *newLog(),
	}
}

func (c Config) redacted() Config {
	if c.Postgres.Password != "" {
		c.Postgres.Password = "***"
	}
	if c.Redis.Password != "" {
		c.Redis.Password = "***"
	}
	if c.Plex.Token != "" {
		c.Plex.Token = "***"
	}
	return c
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port:           getenv("HTTP_PORT", "5005"),
		Host:           getenv("HTTP_HOST", "0.0.0.0"),
		CookieSecure:   getbool("COOKIE_SECURE", false),
		SessionTTL:     getduration("SESSION_TTL", 24*time.Hour),
		CORSOrigins:    getlist("CORS_ORIGINS"),
		RateLimitRPS:   getfloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getint("RATE_LIMIT_BURST", 40),
		SwaggerDoc:     getenv("SWAGGER_DOC", "docs/swagger.json"),
	}
}

func newStorage() *Storage {
	return &Storage{
		Driver:   getenv("STORAGE", StoragePostgres),
		Sessions: getenv("SESSIONS", SessionsRedis),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getsecret("REDIS_PASSWORD", ""),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getsecret("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "kinoswipe"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newPlex() *Plex {
	return &Plex{
		URL:      strings.TrimRight(getenv("PLEX_URL", ""), "/"),
		Token:    getsecret("PLEX_TOKEN", ""),
		ClientID: getenv("PLEX_CLIENT_ID", "KinoSwipe-Bergasha-2026"),
		Product:  getenv("PLEX_PRODUCT", "KinoSwipe"),
		Section:  getenv("PLEX_SECTION", "Movies"),
	}
}

func newRoom() *Room {
	return &Room{
		TTL:           getduration("ROOM_TTL", 0),
		CleanupPeriod: getint("ROOM_CLEANUP_PERIOD", 20),
	}
}

func newLog() *Log {
	return &Log{
		Level:      getenv("LOG_LEVEL", "info"),
		Format:     getenv("LOG_FORMAT", "text"),
		File:       getenv("LOG_FILE", ""),
		MaxSizeMB:  getint("LOG_MAX_SIZE_MB", 50),
		MaxBackups: getint("LOG_MAX_BACKUPS", 3),
		MaxAgeDays: getint("LOG_MAX_AGE_DAYS", 14),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

// Same as getenv but never echoes the value.
func getsecret(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value\n", logtag, key)
		return defaultValue
	}
	fmt.Printf("%s %s is set\n", logtag, key)
	return val
}

func getint(key string, defaultValue int) int {
	raw := getenv(key, strconv.Itoa(defaultValue))
	v, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Printf("%s %s=%q is not an int. Using default value %d\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getfloat(key string, defaultValue float64) float64 {
	raw := getenv(key, strconv.FormatFloat(defaultValue, 'f', -1, 64))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Printf("%s %s=%q is not a number. Using default value %v\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getbool(key string, defaultValue bool) bool {
	raw := getenv(key, strconv.FormatBool(defaultValue))
	v, err := strconv.ParseBool(raw)
	if err != nil {
		fmt.Printf("%s %s=%q is not a bool. Using default value %v\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getduration(key string, defaultValue time.Duration) time.Duration {
	raw := getenv(key, defaultValue.String())
	v, err := time.ParseDuration(raw)
	if err != nil {
		fmt.Printf("%s %s=%q is not a duration. Using default value %s\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getlist(key string) []string {
	raw := getenv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
