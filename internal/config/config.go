package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"crub-courses/internal/httpx"
)

type Config struct {
	// Google Sheets web app (materias_equipo, designaciones_docentes)
	SheetsBaseURL string
	SheetsSecret  string

	// Huayca
	HuaycaBaseURL   string
	HuaycaUser      string
	HuaycaPass      string
	HuaycaVerifyTLS bool

	// REST admin routes
	AdminUser string
	AdminPass string

	HTTPTimeout  time.Duration
	HTTPAddr     string
	FieldMapFile string

	LogFormat string
	LogLevel  string

	// SFTP report upload
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPInsecureIgnoreHostKey bool
	SFTPKnownHosts            string
}

// MissingError lists required variables that were not set.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return "missing env vars: " + strings.Join(e.Keys, " / ")
}

// Load reads the process environment. Source credentials have no defaults; a
// *MissingError names every one that is absent.
func Load() (Config, error) {
	var missing []string
	require := func(k string) string {
		v := strings.TrimSpace(os.Getenv(k))
		if v == "" {
			missing = append(missing, k)
		}
		return v
	}

	cfg := Config{
		SheetsBaseURL:   require("SHEETS_BASE_URL"),
		SheetsSecret:    require("SHEETS_SECRET"),
		HuaycaBaseURL:   require("HUAYCA_BASE_URL"),
		HuaycaUser:      require("HUAYCA_USERNAME"),
		HuaycaPass:      require("HUAYCA_PASSWORD"),
		HuaycaVerifyTLS: getenvBool("HUAYCA_VERIFY_TLS", false),

		AdminUser: os.Getenv("ADMIN_USERNAME"),
		AdminPass: os.Getenv("ADMIN_PASSWORD"),

		HTTPTimeout:  getenvDuration("CRUB_HTTP_TIMEOUT", httpx.DefaultTimeout),
		HTTPAddr:     getenv("CRUB_HTTP_ADDR", ":8000"),
		FieldMapFile: os.Getenv("CRUB_FIELD_MAP_FILE"),

		LogFormat: getenv("CRUB_LOG_FORMAT", "json"),
		LogLevel:  getenv("CRUB_LOG_LEVEL", "info"),

		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/inbound"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", true),
		SFTPKnownHosts:            os.Getenv("SFTP_KNOWN_HOSTS"),
	}

	if len(missing) > 0 {
		return cfg, &MissingError{Keys: missing}
	}
	return cfg, nil
}

// RequireAdmin checks the credentials the REST server needs on top of Load.
func (c Config) RequireAdmin() error {
	var missing []string
	if c.AdminUser == "" {
		missing = append(missing, "ADMIN_USERNAME")
	}
	if c.AdminPass == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}
	if len(missing) > 0 {
		return &MissingError{Keys: missing}
	}
	return nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getenvDuration accepts Go durations ("90s") or a bare number of seconds.
func getenvDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func (c Config) String() string {
	return fmt.Sprintf("sheets=%s huayca=%s timeout=%s log=%s/%s",
		c.SheetsBaseURL, c.HuaycaBaseURL, c.HTTPTimeout, c.LogFormat, c.LogLevel)
}
