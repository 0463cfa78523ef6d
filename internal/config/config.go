package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/smartdoc/docqa-backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	GeminiCfg      GeminiConfig      `envPrefix:"GEMINI_"`
	VectorIndexCfg VectorIndexConfig `envPrefix:"VECTOR_INDEX_"`

	// Ingestion configuration
	ChunkCfg      ChunkConfig      `envPrefix:"CHUNK_"`
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS,notEmpty"`

	// Environment (set from flag, not from env var)
	Environment string
}

// GeminiConfig configures the Gemini embedding and generation clients.
type GeminiConfig struct {
	APIKey          string        `env:"API_KEY,notEmpty"`
	EmbeddingModel  string        `env:"EMBEDDING_MODEL" envDefault:"text-embedding-004"`
	GenerationModel string        `env:"GENERATION_MODEL" envDefault:"gemini-1.5-flash"`
	RequestTimeout  time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// VectorIndexConfig configures the Qdrant vector index connector.
type VectorIndexConfig struct {
	HTTPClientConfig
	Collection string               `env:"COLLECTION" envDefault:"documents"`
	Dimension  int                  `env:"DIMENSION" envDefault:"768"`
	TopK       int                  `env:"TOP_K" envDefault:"5"`
	Bootstrap  pkgRetry.RetryConfig `envPrefix:"BOOTSTRAP_RETRY_"`
}

// ChunkConfig holds the sliding window parameters for text chunking.
type ChunkConfig struct {
	Size    int `env:"SIZE" envDefault:"1000"`
	Overlap int `env:"OVERLAP" envDefault:"200"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT,notEmpty"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT,notEmpty"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE,notEmpty"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT,notEmpty"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT,notEmpty"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE,notEmpty"`   // per file
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE,notEmpty"` // multipart form memory limit
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		return fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns)
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns)
	}

	// A window that never advances would loop forever during ingestion, so a
	// non-positive step is rejected here instead of being handled at runtime.
	if cfg.ChunkCfg.Size <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", cfg.ChunkCfg.Size)
	}
	if cfg.ChunkCfg.Overlap < 0 || cfg.ChunkCfg.Overlap >= cfg.ChunkCfg.Size {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", cfg.ChunkCfg.Overlap)
	}

	if cfg.VectorIndexCfg.Dimension <= 0 {
		return fmt.Errorf("VECTOR_INDEX_DIMENSION must be positive, got %d", cfg.VectorIndexCfg.Dimension)
	}
	if cfg.VectorIndexCfg.TopK <= 0 {
		return fmt.Errorf("VECTOR_INDEX_TOP_K must be positive, got %d", cfg.VectorIndexCfg.TopK)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
