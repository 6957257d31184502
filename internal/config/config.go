package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv       = "NEWS_CURATOR_CONFIG"
	ledgerPathEnv       = "LEDGER_PATH"
	openAIAPIKeyEnv     = "OPENAI_API_KEY"
	openAIModelEnv      = "OPENAI_MODEL"
	openAIImageModelEnv = "OPENAI_IMAGE_MODEL"
	telegramTokenEnv    = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv   = "TELEGRAM_CHAT_ID"
	approvalURLEnv      = "APPROVAL_API_URL"
	logLevelEnv         = "LOG_LEVEL"
)

// Config holds all settings the curation agent needs; it is passed
// explicitly into construction so pipeline runs carry no ambient state.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Telegram TelegramConfig `yaml:"telegram"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Approval ApprovalConfig `yaml:"approval"`
	Images   ImagesConfig   `yaml:"images"`
	Render   RenderConfig   `yaml:"render"`
}

// LoggingConfig controls slog construction.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LedgerConfig locates the processed-message database.
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// TelegramConfig wires the watched chat.
type TelegramConfig struct {
	BotToken           string `yaml:"botToken"`
	ChatID             string `yaml:"chatId"`
	PollTimeoutSeconds int    `yaml:"pollTimeoutSeconds"`
}

// OpenAIConfig defines the chat and image endpoints.
type OpenAIConfig struct {
	APIKey              string `yaml:"apiKey"`
	Endpoint            string `yaml:"endpoint"`
	Model               string `yaml:"model"`
	ImageEndpoint       string `yaml:"imageEndpoint"`
	ImageModel          string `yaml:"imageModel"`
	TimeoutSeconds      int    `yaml:"timeoutSeconds"`
	ImageTimeoutSeconds int    `yaml:"imageTimeoutSeconds"`
}

// ApprovalConfig locates the approval-queue API.
type ApprovalConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// ImagesConfig controls generated-image storage.
type ImagesConfig struct {
	Dir        string `yaml:"dir"`
	PublicPath string `yaml:"publicPath"`
}

// RenderConfig bounds page fetching.
type RenderConfig struct {
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	UserAgent      string `yaml:"userAgent"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides on top of defaults.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Validate checks required settings. Telegram credentials are only
// required for continuous monitoring.
func (c Config) Validate(continuous bool) error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("missing OpenAI API key (set %s)", openAIAPIKeyEnv)
	}
	if continuous {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("missing Telegram bot token (set %s)", telegramTokenEnv)
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("missing Telegram chat id (set %s)", telegramChatIDEnv)
		}
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(ledgerPathEnv); v != "" {
		c.Ledger.Path = v
	}
	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}
	if v := os.Getenv(openAIImageModelEnv); v != "" {
		c.OpenAI.ImageModel = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv(approvalURLEnv); v != "" {
		c.Approval.BaseURL = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Ledger.Path != "" {
		base.Ledger.Path = override.Ledger.Path
	}

	if override.Telegram.BotToken != "" {
		base.Telegram.BotToken = override.Telegram.BotToken
	}
	if override.Telegram.ChatID != "" {
		base.Telegram.ChatID = override.Telegram.ChatID
	}
	if override.Telegram.PollTimeoutSeconds > 0 {
		base.Telegram.PollTimeoutSeconds = override.Telegram.PollTimeoutSeconds
	}

	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}
	if override.OpenAI.Endpoint != "" {
		base.OpenAI.Endpoint = override.OpenAI.Endpoint
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.ImageEndpoint != "" {
		base.OpenAI.ImageEndpoint = override.OpenAI.ImageEndpoint
	}
	if override.OpenAI.ImageModel != "" {
		base.OpenAI.ImageModel = override.OpenAI.ImageModel
	}
	if override.OpenAI.TimeoutSeconds > 0 {
		base.OpenAI.TimeoutSeconds = override.OpenAI.TimeoutSeconds
	}
	if override.OpenAI.ImageTimeoutSeconds > 0 {
		base.OpenAI.ImageTimeoutSeconds = override.OpenAI.ImageTimeoutSeconds
	}

	if override.Approval.BaseURL != "" {
		base.Approval.BaseURL = override.Approval.BaseURL
	}

	if override.Images.Dir != "" {
		base.Images.Dir = override.Images.Dir
	}
	if override.Images.PublicPath != "" {
		base.Images.PublicPath = override.Images.PublicPath
	}

	if override.Render.TimeoutSeconds > 0 {
		base.Render.TimeoutSeconds = override.Render.TimeoutSeconds
	}
	if override.Render.UserAgent != "" {
		base.Render.UserAgent = override.Render.UserAgent
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Ledger:  LedgerConfig{Path: "curator_state.db"},
		Telegram: TelegramConfig{
			PollTimeoutSeconds: 30,
		},
		OpenAI: OpenAIConfig{
			Endpoint:            "https://api.openai.com/v1/chat/completions",
			Model:               "gpt-4o-mini",
			ImageEndpoint:       "https://api.openai.com/v1/images/generations",
			ImageModel:          "dall-e-3",
			TimeoutSeconds:      30,
			ImageTimeoutSeconds: 120,
		},
		Approval: ApprovalConfig{BaseURL: "http://localhost:5000"},
		Images: ImagesConfig{
			Dir:        "static/images/generated",
			PublicPath: "/images/generated",
		},
		Render: RenderConfig{TimeoutSeconds: 30},
	}
}
