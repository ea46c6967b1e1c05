package config

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Env             string   `env:"APP_ENV" envDefault:"development"`
	ServerAddr      string   `env:"SERVER_ADDR" envDefault:":8080"`
	FrontendOrigins []string `env:"FRONTEND_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	CatalogKey     string `env:"CATALOG_KEY" envDefault:"allSolutions_cases"`
	FileDir        string `env:"STORAGE_FILE_DIR" envDefault:"./data"`
	MongoURI       string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017/rts"`
	MongoDB        string `env:"MONGO_DB"`
	RedisURL       string `env:"REDIS_URL"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	SQLiteDSN      string `env:"SQLITE_DSN" envDefault:"rts.db"`
	PostgresDSN    string `env:"POSTGRES_DSN"`

	PersistDebounce time.Duration `env:"CATALOG_PERSIST_DEBOUNCE" envDefault:"100ms"`
	LoadTimeout     time.Duration `env:"CATALOG_LOAD_TIMEOUT" envDefault:"3s"`

	RateLimitLogin     int `env:"RATE_LIMIT_LOGIN" envDefault:"5"`
	RateLimitWindowSec int `env:"RATE_LIMIT_WINDOW_SEC" envDefault:"60"`

	AdminAPIKey     string        `env:"ADMIN_API_KEY"`
	AdminUser       string        `env:"ADMIN_USER" envDefault:"admin"`
	AdminPassword   string        `env:"ADMIN_PASSWORD"`
	JWTSecret       string        `env:"JWT_SECRET"`
	SessionTokenTTL time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"12h"`
	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// Load reads .env (if present) without overriding the real environment,
// then parses the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	switch cfg.StorageBackend {
	case BackendMemory, BackendFile, BackendRedis, BackendMongo, BackendSQLite, BackendPostgres:
	default:
		return nil, errors.New("unknown STORAGE_BACKEND: " + cfg.StorageBackend)
	}
	if cfg.StorageBackend == BackendPostgres && cfg.PostgresDSN == "" {
		return nil, errors.New("POSTGRES_DSN is required for the postgres backend")
	}

	if cfg.MongoDB == "" {
		cfg.MongoDB = mongoDBFromURI(cfg.MongoURI)
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "rts"
	}

	return cfg, nil
}

func mongoDBFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	db := strings.Trim(u.Path, "/")
	if db == "" {
		return ""
	}
	// only the first path segment names the database
	if idx := strings.Index(db, "/"); idx >= 0 {
		db = db[:idx]
	}
	return db
}
