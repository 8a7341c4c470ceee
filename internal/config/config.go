package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "CONTENTQA_CONFIG"
	databaseDSNEnv    = "DATABASE_DSN"
	chatGPTAPIKeyEnv  = "CHATGPT_API_KEY"
	chatGPTModelEnv   = "CHATGPT_MODEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	redisAddrEnv      = "REDIS_ADDR"
	gcsBucketEnv      = "GCS_BUCKET"
	logLevelEnv       = "LOG_LEVEL"
)

// Storage and ledger backends.
const (
	BackendFile     = "file"
	BackendJSON     = "json"
	BackendPostgres = "postgres"
	BackendGCS      = "gcs"
	BackendRedis    = "redis"
)

// ErrUnknownBackend is returned by Validate for unsupported backend names.
var ErrUnknownBackend = errors.New("unknown backend")

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Quality       QualityConfig      `yaml:"quality"`
	Sampling      SamplingConfig     `yaml:"sampling"`
	Pipeline      PipelineConfig     `yaml:"pipeline"`
	Paths         PathsConfig        `yaml:"paths"`
	Database      DatabaseConfig     `yaml:"database"`
	Storage       StorageConfig      `yaml:"storage"`
	Ledger        LedgerConfig       `yaml:"ledger"`
	ChatGPT       ChatGPTConfig      `yaml:"chatgpt"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// LoggingConfig sets the slog level (debug, info, warn, error).
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// QualityConfig tunes the repetition and readability checks.
type QualityConfig struct {
	MinPhraseLength     int     `yaml:"minPhraseLength"`
	MaxPhraseLength     int     `yaml:"maxPhraseLength"`
	RepetitionThreshold int     `yaml:"repetitionThreshold"`
	ReadabilityMin      float64 `yaml:"readabilityMin"`
	ReadabilityMax      float64 `yaml:"readabilityMax"`
	PerSection          bool    `yaml:"perSection"`
	MaxWords            int     `yaml:"maxWords"`
}

// SamplingConfig controls the human review queue.
type SamplingConfig struct {
	Percent float64 `yaml:"percent"`
}

// PipelineConfig drives the orchestrator.
type PipelineConfig struct {
	Generator  string        `yaml:"generator"`
	MaxRetries int           `yaml:"maxRetries"`
	RetryDelay time.Duration `yaml:"retryDelay"`
	StepDelay  time.Duration `yaml:"stepDelay"`
	FastMode   bool          `yaml:"fastMode"`
	Top        int           `yaml:"top"`
	Worker     string        `yaml:"worker"`
}

// PathsConfig lists the local files and directories the tools read and write.
type PathsConfig struct {
	ContentDir        string `yaml:"contentDir"`
	LedgerPath        string `yaml:"ledgerPath"`
	SearchVolumePath  string `yaml:"searchVolumePath"`
	ReviewResultsPath string `yaml:"reviewResultsPath"`
	ChecklistDir      string `yaml:"checklistDir"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// StorageConfig selects where generated modules are written.
type StorageConfig struct {
	Backend   string `yaml:"backend"`
	GCSBucket string `yaml:"gcsBucket"`
	GCSPrefix string `yaml:"gcsPrefix"`
}

// LedgerConfig selects where completion records are kept.
type LedgerConfig struct {
	Backend   string `yaml:"backend"`
	RedisAddr string `yaml:"redisAddr"`
	RedisKey  string `yaml:"redisKey"`
}

// ChatGPTConfig defines how to contact the ChatGPT API.
type ChatGPTConfig struct {
	Endpoint     string        `yaml:"endpoint"`
	Model        string        `yaml:"model"`
	APIKey       string        `yaml:"apiKey"`
	SystemPrompt string        `yaml:"systemPrompt"`
	Timeout      time.Duration `yaml:"timeout"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Enabled reports whether both token and chat are set.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// Load reads YAML configuration from path, or from $CONTENTQA_CONFIG when
// path is empty, and applies environment overrides. Without any file the
// defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		fileCfg, err := LoadFile(path, cfg)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile parses a YAML file on top of base. Keys missing from the file
// keep their base value; keys present replace it, explicit zeros included.
func LoadFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	fileCfg := base
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return fileCfg, nil
}

// Validate rejects negative pipeline limits and unknown backends, and checks
// the fields each backend needs.
func (c Config) Validate() error {
	if c.Pipeline.MaxRetries < 0 {
		return fmt.Errorf("config: pipeline.maxRetries must not be negative (got %d)", c.Pipeline.MaxRetries)
	}
	if c.Pipeline.RetryDelay < 0 || c.Pipeline.StepDelay < 0 {
		return fmt.Errorf("config: pipeline delays must not be negative")
	}
	switch c.Storage.Backend {
	case BackendFile:
	case BackendPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("config: storage backend %s needs database.dsn", BackendPostgres)
		}
	case BackendGCS:
		if c.Storage.GCSBucket == "" {
			return fmt.Errorf("config: storage backend %s needs storage.gcsBucket", BackendGCS)
		}
	default:
		return fmt.Errorf("config: storage %q: %w", c.Storage.Backend, ErrUnknownBackend)
	}

	switch c.Ledger.Backend {
	case BackendJSON:
	case BackendPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("config: ledger backend %s needs database.dsn", BackendPostgres)
		}
	case BackendRedis:
		if c.Ledger.RedisAddr == "" {
			return fmt.Errorf("config: ledger backend %s needs ledger.redisAddr", BackendRedis)
		}
	default:
		return fmt.Errorf("config: ledger %q: %w", c.Ledger.Backend, ErrUnknownBackend)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(chatGPTAPIKeyEnv); v != "" {
		c.ChatGPT.APIKey = v
	}

	if v := os.Getenv(chatGPTModelEnv); v != "" {
		c.ChatGPT.Model = v
	}

	if v := os.Getenv(redisAddrEnv); v != "" {
		c.Ledger.RedisAddr = v
	}

	if v := os.Getenv(gcsBucketEnv); v != "" {
		c.Storage.GCSBucket = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

// Default returns the built-in configuration: local files, template
// generator, three retries.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Quality: QualityConfig{
			MinPhraseLength:     3,
			MaxPhraseLength:     8,
			RepetitionThreshold: 3,
			ReadabilityMin:      50,
			ReadabilityMax:      80,
			MaxWords:            4000,
		},
		Sampling: SamplingConfig{Percent: 10},
		Pipeline: PipelineConfig{
			Generator:  "template",
			MaxRetries: 3,
			RetryDelay: 2 * time.Second,
			StepDelay:  time.Second,
			Top:        10,
		},
		Paths: PathsConfig{
			ContentDir:        "output",
			LedgerPath:        "data/generation-state.json",
			SearchVolumePath:  "data/search_volume.json",
			ReviewResultsPath: "data/review-results.json",
			ChecklistDir:      "output/checklists",
		},
		Storage: StorageConfig{Backend: BackendFile, GCSPrefix: "modules"},
		Ledger:  LedgerConfig{Backend: BackendJSON, RedisKey: "contentqa:completed"},
		ChatGPT: ChatGPTConfig{
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o-mini",
			Timeout:  90 * time.Second,
		},
	}
}
