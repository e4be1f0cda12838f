package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Batch   BatchConfig
	Export  ExportConfig
	Archive ArchiveConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings for the review API.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds database connection settings. Driver selects between the
// embedded sqlite file and PostgreSQL.
type DBConfig struct {
	Driver   string `mapstructure:"driver"` // "sqlite" or "postgres"
	Path     string `mapstructure:"path"`   // sqlite database file
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the connection string for the configured driver.
func (d *DBConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// BatchConfig holds batch intake settings: where vendor folders live, where
// split PDFs land, and whether the inbox is watched for new files.
type BatchConfig struct {
	InboxDir     string        `mapstructure:"inbox_dir"`
	ProcessedDir string        `mapstructure:"processed_dir"`
	Watch        bool          `mapstructure:"watch"`
	SettleDelay  time.Duration `mapstructure:"settle_delay"`
}

// ExportConfig holds spreadsheet export settings.
type ExportConfig struct {
	WorkbookPath string `mapstructure:"workbook_path"`
	CSVDir       string `mapstructure:"csv_dir"`
}

// ArchiveConfig holds S3 archive settings for processed documents. An empty
// bucket disables archiving.
type ArchiveConfig struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// Enabled reports whether archiving is configured.
func (a *ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// ObjectKey returns the bucket key for an archived file name.
func (a *ArchiveConfig) ObjectKey(filename string) string {
	if a.Prefix == "" {
		return filename
	}
	return a.Prefix + "/" + filename
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the BILLDOZER_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLDOZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "billdozer.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billdozer")
	v.SetDefault("db.password", "billdozer_secret")
	v.SetDefault("db.name", "billdozer_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Batch defaults
	v.SetDefault("batch.inbox_dir", "inbox")
	v.SetDefault("batch.processed_dir", "processed")
	v.SetDefault("batch.watch", false)
	v.SetDefault("batch.settle_delay", "2s")

	// Export defaults
	v.SetDefault("export.workbook_path", "billdozer.xlsx")
	v.SetDefault("export.csv_dir", "exports")

	// Archive defaults (disabled until a bucket is set)
	v.SetDefault("archive.region", "us-west-2")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.endpoint", "")
	v.SetDefault("archive.prefix", "invoices")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "BILLDOZER_SERVER_PORT",
		"server.read_timeout":  "BILLDOZER_SERVER_READ_TIMEOUT",
		"server.write_timeout": "BILLDOZER_SERVER_WRITE_TIMEOUT",
		"server.environment":   "BILLDOZER_SERVER_ENVIRONMENT",
		"db.driver":            "BILLDOZER_DB_DRIVER",
		"db.path":              "BILLDOZER_DB_PATH",
		"db.host":              "BILLDOZER_DB_HOST",
		"db.port":              "BILLDOZER_DB_PORT",
		"db.user":              "BILLDOZER_DB_USER",
		"db.password":          "BILLDOZER_DB_PASSWORD",
		"db.name":              "BILLDOZER_DB_NAME",
		"db.sslmode":           "BILLDOZER_DB_SSLMODE",
		"db.max_open":          "BILLDOZER_DB_MAX_OPEN",
		"db.max_idle":          "BILLDOZER_DB_MAX_IDLE",
		"batch.inbox_dir":      "BILLDOZER_BATCH_INBOX_DIR",
		"batch.processed_dir":  "BILLDOZER_BATCH_PROCESSED_DIR",
		"batch.watch":          "BILLDOZER_BATCH_WATCH",
		"batch.settle_delay":   "BILLDOZER_BATCH_SETTLE_DELAY",
		"export.workbook_path": "BILLDOZER_EXPORT_WORKBOOK_PATH",
		"export.csv_dir":       "BILLDOZER_EXPORT_CSV_DIR",
		"archive.region":       "BILLDOZER_ARCHIVE_REGION",
		"archive.bucket":       "BILLDOZER_ARCHIVE_BUCKET",
		"archive.endpoint":     "BILLDOZER_ARCHIVE_ENDPOINT",
		"archive.access_key":   "BILLDOZER_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":   "BILLDOZER_ARCHIVE_SECRET_KEY",
		"archive.prefix":       "BILLDOZER_ARCHIVE_PREFIX",
		"log.level":            "BILLDOZER_LOG_LEVEL",
		"log.format":           "BILLDOZER_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLDOZER_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLDOZER_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Driver:   v.GetString("db.driver"),
		Path:     v.GetString("db.path"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Batch = BatchConfig{
		InboxDir:     v.GetString("batch.inbox_dir"),
		ProcessedDir: v.GetString("batch.processed_dir"),
		Watch:        v.GetBool("batch.watch"),
		SettleDelay:  v.GetDuration("batch.settle_delay"),
	}
	cfg.Export = ExportConfig{
		WorkbookPath: v.GetString("export.workbook_path"),
		CSVDir:       v.GetString("export.csv_dir"),
	}
	cfg.Archive = ArchiveConfig{
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
		Prefix:    v.GetString("archive.prefix"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	switch cfg.DB.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}

	return cfg, nil
}
