package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Storage   StorageConfig
	Admin     AdminConfig
	Cache     CacheConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int64
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RateLimitConfig mirrors the "max requests per window per client" knobs.
// The in-memory limiter derives a token bucket from it (rate = max/window, burst = max).
type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	MaxRequests   int
	WindowSeconds int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type StorageConfig struct {
	Driver         string // disk | minio
	Dir            string
	MaxResumeBytes int64
	MinIO          MinIOConfig
}

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type AdminConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Keycloak  KeycloakConfig
}

type KeycloakConfig struct {
	URL      string
	Realm    string
	ClientID string
}

type CacheConfig struct {
	StatsTTL time.Duration
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Server.Environment, "development")
}

// RatePerSecond is the steady refill rate for the in-memory limiter.
func (r RateLimitConfig) RatePerSecond() float64 {
	if r.WindowSeconds <= 0 {
		return float64(r.MaxRequests)
	}
	return float64(r.MaxRequests) / float64(r.WindowSeconds)
}

// Window returns the fixed window used by the Redis limiter.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	// legacy names used by the old deployment are still honoured
	_ = viper.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT")
	_ = viper.BindEnv("SERVER_ENVIRONMENT", "SERVER_ENVIRONMENT", "NODE_ENV")
	_ = viper.BindEnv("MONGODB_DATABASE", "MONGODB_DATABASE", "DB_NAME")

	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("SERVER_BODY_LIMIT_MB", 10)
	viper.SetDefault("MONGODB_DATABASE", "cohortlab")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_USE_REDIS", false)
	viper.SetDefault("RATE_LIMIT_MAX_REQUESTS", 1000)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 900)
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("FRONTEND_URL_PROD", "https://cohort-lab.vercel.app")
	viper.SetDefault("STORAGE_DRIVER", "disk")
	viper.SetDefault("STORAGE_DIR", "uploads")
	viper.SetDefault("STORAGE_MAX_RESUME_MB", 5)
	viper.SetDefault("MINIO_BUCKET", "cohortlab")
	viper.SetDefault("ADMIN_TOKEN_TTL_MINUTES", 720)
	viper.SetDefault("NEWSLETTER_STATS_TTL_SECONDS", 30)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			BodyLimit:    viper.GetInt64("SERVER_BODY_LIMIT_MB") << 20,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			MaxRequests:   viper.GetInt("RATE_LIMIT_MAX_REQUESTS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: allowedOrigins(
				viper.GetString("FRONTEND_URL"),
				viper.GetString("FRONTEND_URL_PROD"),
				viper.GetString("FRONTEND_URL_DEV"),
			),
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(viper.GetString("STORAGE_DRIVER")),
			Dir:            viper.GetString("STORAGE_DIR"),
			MaxResumeBytes: viper.GetInt64("STORAGE_MAX_RESUME_MB") << 20,
			MinIO: MinIOConfig{
				Endpoint:  viper.GetString("MINIO_ENDPOINT"),
				AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
				SecretKey: viper.GetString("MINIO_SECRET_KEY"),
				UseSSL:    viper.GetBool("MINIO_USE_SSL"),
				Bucket:    viper.GetString("MINIO_BUCKET"),
			},
		},
		Admin: AdminConfig{
			JWTSecret: viper.GetString("ADMIN_JWT_SECRET"),
			TokenTTL:  time.Duration(viper.GetInt("ADMIN_TOKEN_TTL_MINUTES")) * time.Minute,
			Keycloak: KeycloakConfig{
				URL:      viper.GetString("KEYCLOAK_URL"),
				Realm:    viper.GetString("KEYCLOAK_REALM"),
				ClientID: viper.GetString("KEYCLOAK_CLIENT_ID"),
			},
		},
		Cache: CacheConfig{
			StatsTTL: time.Duration(viper.GetInt("NEWSLETTER_STATS_TTL_SECONDS")) * time.Second,
		},
	}

	return cfg, nil
}

// allowedOrigins drops empty and repeated entries while keeping order.
func allowedOrigins(values ...string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]bool{}
	for _, v := range values {
		for _, o := range strings.Split(v, ",") {
			o = strings.TrimRight(strings.TrimSpace(o), "/")
			if o == "" || seen[o] {
				continue
			}
			seen[o] = true
			out = append(out, o)
		}
	}
	return out
}
