package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

var (
	ListenAddr = ":8080"

	// Export settings
	ExportDir    = "./hugo"
	SiteURL      = "http://localhost" // base for resolving relative media locators
	OutputFormat = "webp"
	FetchTimeout = 30 * time.Second

	// WordPress database settings
	DBDSN       = ""
	TablePrefix = "wp_"

	// Auth settings
	AdminPassword = ""
	SessionSecret = "hugo-exporter-dev"
)

// fileSettings mirrors the optional exporter.toml settings file. Env vars
// take precedence over whatever the file declares.
type fileSettings struct {
	ListenAddr    string `toml:"listen_addr"`
	ExportDir     string `toml:"export_dir"`
	SiteURL       string `toml:"site_url"`
	OutputFormat  string `toml:"output_format"`
	FetchTimeout  int    `toml:"fetch_timeout"` // seconds
	DBDSN         string `toml:"db_dsn"`
	TablePrefix   string `toml:"table_prefix"`
	AdminPassword string `toml:"admin_password"`
	SessionSecret string `toml:"session_secret"`
}

func Init() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found or error loading it.")
	}

	loadSettingsFile(os.Getenv("EXPORTER_CONFIG"))

	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	ListenAddr = getEnv("LISTEN_ADDR", ListenAddr)

	ExportDir = getEnv("EXPORT_DIR", ExportDir)
	SiteURL = getEnv("SITE_URL", SiteURL)
	OutputFormat = getEnv("OUTPUT_FORMAT", OutputFormat)

	DBDSN = getEnv("WP_DB_DSN", DBDSN)
	TablePrefix = getEnv("WP_TABLE_PREFIX", TablePrefix)

	AdminPassword = getEnv("ADMIN_PASSWORD", AdminPassword)
	SessionSecret = getEnv("SESSION_SECRET", SessionSecret)

	if ft := os.Getenv("FETCH_TIMEOUT"); ft != "" {
		if val, err := strconv.Atoi(ft); err == nil && val > 0 {
			FetchTimeout = time.Duration(val) * time.Second
		}
	}
}

func loadSettingsFile(path string) {
	if path == "" {
		path = "exporter.toml"
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var s fileSettings
	if err := toml.Unmarshal(content, &s); err != nil {
		fmt.Printf("Ignoring settings file %s: %v\n", path, err)
		return
	}

	if s.ListenAddr != "" {
		ListenAddr = s.ListenAddr
	}
	if s.ExportDir != "" {
		ExportDir = s.ExportDir
	}
	if s.SiteURL != "" {
		SiteURL = s.SiteURL
	}
	if s.OutputFormat != "" {
		OutputFormat = s.OutputFormat
	}
	if s.FetchTimeout > 0 {
		FetchTimeout = time.Duration(s.FetchTimeout) * time.Second
	}
	if s.DBDSN != "" {
		DBDSN = s.DBDSN
	}
	if s.TablePrefix != "" {
		TablePrefix = s.TablePrefix
	}
	if s.AdminPassword != "" {
		AdminPassword = s.AdminPassword
	}
	if s.SessionSecret != "" {
		SessionSecret = s.SessionSecret
	}
}
