// Package config provides configuration management for go-islands.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var AppVersion = "-unset-" // will be set at build time

const (
	// DefaultListenPort is the port the demo has always listened on
	DefaultListenPort = 3000

	// DefaultDisplayName is rendered into the home page
	DefaultDisplayName = "Toto"

	// DefaultSlowDelay is how long the slow component keeps its loading text
	DefaultSlowDelay = 3 * time.Second

	envPrefix         = "ISLANDS"
	defaultConfigName = "config"
)

// MainConfig holds the main configuration for go-islands
type MainConfig struct {
	Web        WebConfig `json:"web"`
	Log        LogConfig `json:"log"`
	PprofAddr  string    `json:"pprof_addr"`  // empty disables the profiler
	AppVersion string    `json:"app_version"` // Application version, set at build time
}

// WebConfig holds web interface configuration
type WebConfig struct {
	ListenPort   int           `json:"listen_port"`
	SSL          bool          `json:"ssl"`
	CertFile     string        `json:"cert_file,omitempty"`
	KeyFile      string        `json:"key_file,omitempty"`
	StaticDir    string        `json:"static_dir"`    // served under /dist, empty uses the embedded bundle
	TemplatesDir string        `json:"templates_dir"` // empty uses the embedded templates
	DisplayName  string        `json:"display_name"`
	SlowDelay    time.Duration `json:"slow_delay"`
	CORSOrigins  []string      `json:"cors_origins"`
	AccessLog    string        `json:"access_log"` // "json" or "apache"
	Debug        bool          `json:"debug"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `json:"level"` // debug, info, warn, error
	Pretty bool   `json:"pretty"`
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *MainConfig {
	return &MainConfig{
		AppVersion: AppVersion,
		Web: WebConfig{
			ListenPort:  DefaultListenPort,
			SSL:         false,
			StaticDir:   "dist",
			DisplayName: DefaultDisplayName,
			SlowDelay:   DefaultSlowDelay,
			CORSOrigins: []string{"*"},
			AccessLog:   "json",
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: false,
		},
	}
}

// Load builds the configuration from defaults, an optional .env file,
// an optional config.yaml (searched in dir, "." and "config") and
// ISLANDS_* environment variables, in that order of precedence.
func Load(dir string) (*MainConfig, error) {
	// .env is optional
	_ = godotenv.Load()

	def := NewDefaultConfig()

	v := viper.New()
	v.SetConfigName(defaultConfigName)
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("config")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("web.listen_port", def.Web.ListenPort)
	v.SetDefault("web.ssl", def.Web.SSL)
	v.SetDefault("web.cert_file", "")
	v.SetDefault("web.key_file", "")
	v.SetDefault("web.static_dir", def.Web.StaticDir)
	v.SetDefault("web.templates_dir", "")
	v.SetDefault("web.display_name", def.Web.DisplayName)
	v.SetDefault("web.slow_delay", def.Web.SlowDelay)
	v.SetDefault("web.cors_origins", def.Web.CORSOrigins)
	v.SetDefault("web.access_log", def.Web.AccessLog)
	v.SetDefault("web.debug", false)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.pretty", def.Log.Pretty)
	v.SetDefault("pprof.addr", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &MainConfig{
		AppVersion: AppVersion,
		Web: WebConfig{
			ListenPort:   v.GetInt("web.listen_port"),
			SSL:          v.GetBool("web.ssl"),
			CertFile:     strings.TrimSpace(v.GetString("web.cert_file")),
			KeyFile:      strings.TrimSpace(v.GetString("web.key_file")),
			StaticDir:    strings.TrimSpace(v.GetString("web.static_dir")),
			TemplatesDir: strings.TrimSpace(v.GetString("web.templates_dir")),
			DisplayName:  v.GetString("web.display_name"),
			SlowDelay:    v.GetDuration("web.slow_delay"),
			CORSOrigins:  v.GetStringSlice("web.cors_origins"),
			AccessLog:    strings.ToLower(strings.TrimSpace(v.GetString("web.access_log"))),
			Debug:        v.GetBool("web.debug"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
			Pretty: v.GetBool("log.pretty"),
		},
		PprofAddr: strings.TrimSpace(v.GetString("pprof.addr")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with
func (c *MainConfig) Validate() error {
	return c.Web.Validate()
}

// Validate checks the web configuration
func (w *WebConfig) Validate() error {
	if w.ListenPort < 1024 || w.ListenPort > 65535 {
		return fmt.Errorf("invalid listen port %d (must be between 1024 and 65535)", w.ListenPort)
	}
	if w.SSL && (w.CertFile == "" || w.KeyFile == "") {
		return errors.New("SSL enabled but cert_file or key_file not specified in config")
	}
	if w.SlowDelay <= 0 {
		return fmt.Errorf("invalid slow delay %s (must be positive)", w.SlowDelay)
	}
	switch w.AccessLog {
	case "json", "apache":
	default:
		return fmt.Errorf("invalid access_log %q (want json or apache)", w.AccessLog)
	}
	return nil
}

// Addr returns the listen address for the web server
func (w *WebConfig) Addr() string {
	return fmt.Sprintf(":%d", w.ListenPort)
}
