package config

import (
	"log"
	"os"
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
	Auth      AuthConfig
	Mail      MailConfig
	Verify    VerifyConfig
	LLM       LLMConfig
	Assets    AssetsConfig
	MinIO     MinIOConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
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

type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

// MailConfig configures the Resend client and the notification addresses.
// From is the verified sender; Operator receives contact notifications and is
// the address advertised by chatbot fallback responses.
type MailConfig struct {
	APIKey   string
	BaseURL  string
	From     string
	Operator string
}

// VerifyConfig configures the email deliverability provider. An empty APIKey
// disables verification (the contact pipeline fails open).
type VerifyConfig struct {
	APIKey  string
	BaseURL string
}

// LLMConfig configures the Groq chat-completion client. Models is the
// fallback chain, tried in order.
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Models  []string
}

type AssetsConfig struct {
	ResumePath string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "devfolio")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("JWT_ACCESS_TOKEN_TTL", 60)
	viper.SetDefault("RESEND_BASE_URL", "https://api.resend.com")
	viper.SetDefault("MAIL_FROM", "noreply@devfolio.dev")
	viper.SetDefault("MAIL_OPERATOR", "hello@devfolio.dev")
	viper.SetDefault("VERIFY_BASE_URL", "https://apilayer.net/api/check")
	viper.SetDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	viper.SetDefault("GROQ_MODELS", "llama-3.3-70b-versatile,llama-3.1-8b-instant,gemma2-9b-it")
	viper.SetDefault("RESUME_PATH", "data/resume.pdf")
	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_RPS", 1.0)
	viper.SetDefault("RATE_LIMIT_BURST", 5)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("MINIO_BUCKET", "devfolio-uploads")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      getEnvOrPanic("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("JWT_SECRET"),
			AccessTokenTTL: time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
		},
		Mail: MailConfig{
			APIKey:   os.Getenv("RESEND_API_KEY"),
			BaseURL:  viper.GetString("RESEND_BASE_URL"),
			From:     viper.GetString("MAIL_FROM"),
			Operator: viper.GetString("MAIL_OPERATOR"),
		},
		Verify: VerifyConfig{
			APIKey:  os.Getenv("VERIFY_API_KEY"),
			BaseURL: viper.GetString("VERIFY_BASE_URL"),
		},
		LLM: LLMConfig{
			APIKey:  os.Getenv("GROQ_API_KEY"),
			BaseURL: viper.GetString("GROQ_BASE_URL"),
			Models:  splitModels(viper.GetString("GROQ_MODELS")),
		},
		Assets: AssetsConfig{
			ResumePath: viper.GetString("RESUME_PATH"),
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	// Basic validation
	if cfg.Auth.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is not set; set a secure value in production")
	}

	return cfg, nil
}

func splitModels(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvOrPanic(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("environment variable %s is required", key)
	}
	return v
}
