package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendSheets   = "sheets"
	BackendWorkbook = "workbook"
)

type Config struct {
	AppEnv      string
	HTTPPort    string
	CORSOrigins string
	JWTSecret   string // boşsa mutasyon uçları korumasız kalır
	DatabaseDSN string // boşsa audit kaydı kapalı

	Logger LoggerConfig
	Store  StoreConfig

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type StoreConfig struct {
	Backend string

	// Google Sheets
	CredentialsFile      string
	CatalogSpreadsheetID string
	CatalogSheetName     string // boşsa ilk sayfa
	LedgerSpreadsheetID  string
	LedgerSheetName      string

	// Yerel XLSX
	WorkbookPath string
}

func Load() *Config {
	// .env yoksa ortam değişkenleri aynen kullanılır
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "production"),
		HTTPPort:    getEnv("HTTP_PORT", "8000"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		DatabaseDSN: getEnv("DATABASE_DSN", ""),
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Store: StoreConfig{
			Backend:              getEnv("STORE_BACKEND", BackendSheets),
			CredentialsFile:      getEnv("GOOGLE_CREDENTIALS_FILE", "service_account.json"),
			CatalogSpreadsheetID: getEnv("CATALOG_SPREADSHEET_ID", ""),
			CatalogSheetName:     getEnv("CATALOG_SHEET_NAME", ""),
			LedgerSpreadsheetID:  getEnv("LEDGER_SPREADSHEET_ID", ""),
			LedgerSheetName:      getEnv("LEDGER_SHEET_NAME", "Entregas"),
			WorkbookPath:         getEnv("WORKBOOK_PATH", "./inventario.xlsx"),
		},
		ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	if cfg.CORSOrigins == "*" && cfg.IsProduction() {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS tanımlanmamış, tüm origin'lere izin veriliyor.")
	}
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET tanımlanmamış, kayıt/güncelleme uçları korumasız.")
	}

	return cfg
}

// Validate checks that the selected store backend has what it needs.
func (c *Config) Validate() error {
	var errs []error

	switch c.Store.Backend {
	case BackendSheets:
		if c.Store.CatalogSpreadsheetID == "" {
			errs = append(errs, errors.New("CATALOG_SPREADSHEET_ID is required for the sheets backend"))
		}
		if c.Store.LedgerSpreadsheetID == "" {
			errs = append(errs, errors.New("LEDGER_SPREADSHEET_ID is required for the sheets backend"))
		}
		if c.Store.CredentialsFile == "" {
			errs = append(errs, errors.New("GOOGLE_CREDENTIALS_FILE is required for the sheets backend"))
		}
	case BackendWorkbook:
		if c.Store.WorkbookPath == "" {
			errs = append(errs, errors.New("WORKBOOK_PATH is required for the workbook backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend))
	}

	if c.JWTSecret != "" && len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters"))
	}
	if c.Store.LedgerSheetName == "" {
		errs = append(errs, errors.New("LEDGER_SHEET_NAME must not be empty"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func (c *Config) AuditEnabled() bool {
	return c.DatabaseDSN != ""
}

func (c *Config) CORSOriginList() string {
	origins := strings.Split(c.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return strings.Join(origins, ",")
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// düz sayı saniye kabul edilir
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
