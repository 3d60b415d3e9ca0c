package config

import (
	"time"
	_ "time/tzdata"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rpvscraper/internal/model"
	"rpvscraper/internal/segment"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for archiving source gazettes.
type MinIOConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ExtractionConfig holds the literals and locations used by the document pipeline.
type ExtractionConfig struct {
	PDFDir       string
	FooterLine   string
	Counterparty string
	Status       string
	BatchSize    int
}

// LogConfig selects the zap logger flavour.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port          string
	Timezone      string
	PresignExpiry time.Duration
	Database      DatabaseConfig
	MinIO         MinIOConfig
	Extraction    ExtractionConfig
	Log           LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over defaults.
func Load() *AppConfig {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_TZ", "America/Sao_Paulo")
	v.SetDefault("PRESIGN_EXPIRY", 15*time.Minute)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME_SEC", 300)
	v.SetDefault("MINIO_ENABLED", false)
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("PDF_DIR", "./pdfs")
	v.SetDefault("FOOTER_LINE", segment.DefaultFooter)
	v.SetDefault("COUNTERPARTY", model.CounterpartyINSS)
	v.SetDefault("RECORD_STATUS", model.StatusNew)
	v.SetDefault("BATCH_SIZE", 500)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	return &AppConfig{
		Port:          v.GetString("PORT"),
		Timezone:      v.GetString("APP_TZ"),
		PresignExpiry: v.GetDuration("PRESIGN_EXPIRY"),
		Database: DatabaseConfig{
			Host:               v.GetString("DB_HOST"),
			Port:               v.GetString("DB_PORT"),
			User:               v.GetString("DB_USER"),
			Password:           v.GetString("DB_PASSWORD"),
			Name:               v.GetString("DB_NAME"),
			SSLMode:            v.GetString("DB_SSLMODE"),
			MaxOpenConns:       v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:       v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetimeSec: v.GetInt("DB_CONN_MAX_LIFETIME_SEC"),
		},
		MinIO: MinIOConfig{
			Enabled:   v.GetBool("MINIO_ENABLED"),
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
		},
		Extraction: ExtractionConfig{
			PDFDir:       v.GetString("PDF_DIR"),
			FooterLine:   v.GetString("FOOTER_LINE"),
			Counterparty: v.GetString("COUNTERPARTY"),
			Status:       v.GetString("RECORD_STATUS"),
			BatchSize:    v.GetInt("BATCH_SIZE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// timeEncoder renders entry timestamps as RFC 3339 in loc.
func timeEncoder(loc *time.Location) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(loc).Format(time.RFC3339Nano))
	}
}

// NewLogger builds a zap logger for cfg without touching the globals.
// Timestamps are written in loc; nil means UTC.
func NewLogger(cfg LogConfig, loc *time.Location) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	if loc == nil {
		loc = time.UTC
	}
	zapCfg.EncoderConfig.EncodeTime = timeEncoder(loc)

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "config: build logger")
	}
	return logger, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig, loc *time.Location) error {
	logger, err := NewLogger(cfg, loc)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
