package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from
// environment variables or a .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	DATA_DIR=./data/source
//	INGEST_PARALLEL=0
//	INGEST_SALVAGE_ROWS=false
//	SHARE_MEAN_OF_RATIOS=false
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=postgres
//	POSTGRES_DB=brokerpulse
//	POSTGRES_SSLMODE=disable
type Config struct {
	Server   ServerConfig
	Ingest   IngestConfig
	Query    QueryConfig
	Postgres PostgresConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string // TCP port the HTTP server listens on (e.g., "8080")
}

// IngestConfig controls the ingestion pass.
//
// Historical variants of this pipeline disagreed on whether a file with
// some malformed rows is rejected whole or its valid rows are salvaged.
// SalvageRows makes that an explicit switch; the default (false) rejects
// the whole file.
type IngestConfig struct {
	DataDir     string // directory holding the source .xlsx files
	Parallel    int    // worker count; 0 = auto (min(16, files, NumCPU))
	SalvageRows bool   // keep valid rows of a partially-invalid file
}

// QueryConfig controls the aggregation engine.
//
// MeanOfRatios switches monthly/yearly percentages from the recommended
// sum-then-ratio computation to the arithmetic mean of daily ratios,
// matching an older variant of the pipeline. Default is false.
type QueryConfig struct {
	MeanOfRatios bool
}

// PostgresConfig defines connection details for the ingestion audit log.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string // computed DSN used by database/sql
}

// AppConfig is the globally accessible configuration instance,
// populated once via LoadConfig().
var AppConfig Config

// LoadConfig initializes AppConfig from defaults, an optional .env file,
// and environment variables (highest precedence). Missing required
// fields terminate the app via validateConfig().
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("DATA_DIR", "./data/source")
	viper.SetDefault("INGEST_PARALLEL", 0)
	viper.SetDefault("INGEST_SALVAGE_ROWS", false)
	viper.SetDefault("SHARE_MEAN_OF_RATIOS", false)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "brokerpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Ingest: IngestConfig{
			DataDir:     viper.GetString("DATA_DIR"),
			Parallel:    viper.GetInt("INGEST_PARALLEL"),
			SalvageRows: viper.GetBool("INGEST_SALVAGE_ROWS"),
		},
		Query: QueryConfig{
			MeanOfRatios: viper.GetBool("SHARE_MEAN_OF_RATIOS"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Ingest.DataDir == "" {
		missing = append(missing, "DATA_DIR")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
