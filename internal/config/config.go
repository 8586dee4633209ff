package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/output"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. OUTLINER_WORKER_COUNT
// or OUTLINER_OUTLINE_MAX_LEVELS.
const EnvPrefix = "OUTLINER"

// Sink kinds.
const (
	SinkDir       = "dir"
	SinkPathstore = "pathstore"
	SinkNone      = "none"
)

type Config struct {
	Port   string `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`

	// Worker pool
	WorkerCount  int `mapstructure:"worker_count"`
	MaxQueueSize int `mapstructure:"max_queue_size"`

	// Upload limits
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`

	JobTTL          time.Duration `mapstructure:"job_ttl"`
	DocumentTimeout time.Duration `mapstructure:"document_timeout"`

	PDFFallbackMutool bool `mapstructure:"pdf_fallback_mutool"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Result persistence
	Sink         string `mapstructure:"sink"`
	OutputDir    string `mapstructure:"output_dir"`
	OutputFormat string `mapstructure:"output_format"`

	PathstoreURL    string `mapstructure:"pathstore_url"`
	PathstoreAPIKey string `mapstructure:"pathstore_api_key"`

	// Outline is resolved from outline.preset plus any outline.* overrides.
	Outline outline.Options `mapstructure:"-"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:              "8090",
		WorkerCount:       4,
		MaxQueueSize:      100,
		MaxUploadBytes:    52428800, // 50MB
		JobTTL:            time.Hour,
		DocumentTimeout:   2 * time.Minute,
		PDFFallbackMutool: true,
		LogLevel:          "info",
		LogFormat:         "json",
		Sink:              SinkDir,
		OutputDir:         "/app/output",
		OutputFormat:      string(output.FormatJSON),
		PathstoreURL:      "http://localhost:8080",
		Outline:           outline.DefaultOptions(),
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("port", d.Port)
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("worker_count", d.WorkerCount)
	v.SetDefault("max_queue_size", d.MaxQueueSize)
	v.SetDefault("max_upload_bytes", d.MaxUploadBytes)
	v.SetDefault("job_ttl", d.JobTTL)
	v.SetDefault("document_timeout", d.DocumentTimeout)
	v.SetDefault("pdf_fallback_mutool", d.PDFFallbackMutool)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("sink", d.Sink)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("pathstore_url", d.PathstoreURL)
	v.SetDefault("pathstore_api_key", d.PathstoreAPIKey)
	v.SetDefault("outline.preset", outline.PresetScored)
}

func newViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("outliner")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.outliner")
	}

	// The config file is optional unless named explicitly.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return v, nil
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	opts, err := outlineOptions(v)
	if err != nil {
		return cfg, err
	}
	cfg.Outline = opts
	return cfg, nil
}

// outlineOptions starts from the named preset and applies each outline.*
// key that was set explicitly in the file or environment.
func outlineOptions(v *viper.Viper) (outline.Options, error) {
	opts, err := outline.Preset(v.GetString("outline.preset"))
	if err != nil {
		return opts, err
	}
	if v.IsSet("outline.size_weight") {
		opts.SizeWeight = v.GetFloat64("outline.size_weight")
	}
	if v.IsSet("outline.bold_bonus") {
		opts.BoldBonus = v.GetFloat64("outline.bold_bonus")
	}
	if v.IsSet("outline.numbered_bonus") {
		opts.NumberedBonus = v.GetFloat64("outline.numbered_bonus")
	}
	if v.IsSet("outline.max_levels") {
		opts.MaxLevels = v.GetInt("outline.max_levels")
	}
	if v.IsSet("outline.title_policy") {
		opts.TitlePolicy = outline.TitlePolicy(v.GetString("outline.title_policy"))
	}
	if v.IsSet("outline.min_text_length") {
		opts.MinTextLength = v.GetInt("outline.min_text_length")
	}
	if v.IsSet("outline.denylist") {
		opts.Denylist = v.GetStringSlice("outline.denylist")
	}
	if v.IsSet("outline.min_score_gap") {
		opts.MinScoreGap = v.GetFloat64("outline.min_score_gap")
	}
	if v.IsSet("outline.min_body_font_size") {
		opts.MinBodyFontSize = v.GetInt("outline.min_body_font_size")
	}
	if v.IsSet("outline.default_body_font_size") {
		opts.DefaultBodyFontSize = v.GetInt("outline.default_body_font_size")
	}
	return opts, nil
}

// Load reads configuration from defaults, the optional config file and the
// environment, in increasing precedence.
func Load(cfgFile string) (Config, error) {
	v, err := newViper(cfgFile)
	if err != nil {
		return Config{}, err
	}
	return decode(v)
}

func (c Config) Validate() error {
	if c.WorkerCount <= 0 {
		return fmt.Errorf("worker_count must be positive, got %d", c.WorkerCount)
	}
	if c.MaxQueueSize <= 0 {
		return fmt.Errorf("max_queue_size must be positive, got %d", c.MaxQueueSize)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.DocumentTimeout <= 0 {
		return fmt.Errorf("document_timeout must be positive, got %s", c.DocumentTimeout)
	}
	switch c.Sink {
	case SinkDir:
		if c.OutputDir == "" {
			return fmt.Errorf("output_dir is required for sink %q", c.Sink)
		}
	case SinkPathstore:
		if c.PathstoreURL == "" {
			return fmt.Errorf("pathstore_url is required for sink %q", c.Sink)
		}
	case SinkNone:
	default:
		return fmt.Errorf("unknown sink %q (want dir, pathstore or none)", c.Sink)
	}
	if _, err := output.ParseFormat(c.OutputFormat); err != nil {
		return err
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("log_format must be json or text, got %q", c.LogFormat)
	}
	if err := c.Outline.Validate(); err != nil {
		return fmt.Errorf("outline: %w", err)
	}
	return nil
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("invalid log_level %q", s)
	}
	return l, nil
}

// NewLogger builds the process logger from log_level and log_format.
func (c Config) NewLogger() *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	v *viper.Viper

	mu        sync.RWMutex
	config    Config
	callbacks []func(Config)
}

// NewManager creates a config manager and loads the initial config.
func NewManager(cfgFile string) (*Manager, error) {
	v, err := newViper(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	return &Manager{v: v, config: cfg}, nil
}

// Get returns the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// OnChange registers a callback for config changes.
func (m *Manager) OnChange(fn func(Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// WatchConfig reloads the config file when it changes. Reloads that fail to
// decode or validate are logged and ignored.
func (m *Manager) WatchConfig(log *slog.Logger) {
	m.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := decode(m.v)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			log.Warn("ignoring config reload", "file", e.Name, "error", err)
			return
		}

		m.mu.Lock()
		m.config = cfg
		callbacks := make([]func(Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.Unlock()

		log.Info("config reloaded", "file", e.Name)
		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	m.v.WatchConfig()
}
