package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Ledger.Path != "curator_state.db" {
		t.Fatalf("unexpected ledger path: %q", cfg.Ledger.Path)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %q", cfg.OpenAI.Model)
	}
	if cfg.Telegram.PollTimeoutSeconds != 30 {
		t.Fatalf("unexpected poll timeout: %d", cfg.Telegram.PollTimeoutSeconds)
	}
	if cfg.Images.PublicPath != "/images/generated" {
		t.Fatalf("unexpected image public path: %q", cfg.Images.PublicPath)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: debug
ledger:
  path: /var/lib/curator/state.db
openai:
  model: gpt-4o
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.Logging.Level != "debug" {
		t.Fatalf("file level not applied: %q", cfg.Logging.Level)
	}
	if cfg.Ledger.Path != "/var/lib/curator/state.db" {
		t.Fatalf("file ledger path not applied: %q", cfg.Ledger.Path)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("file model not applied: %q", cfg.OpenAI.Model)
	}
	// Untouched fields keep defaults.
	if cfg.OpenAI.ImageModel != "dall-e-3" {
		t.Fatalf("default image model lost: %q", cfg.OpenAI.ImageModel)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("openai:\n  model: from-file\n"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv(openAIModelEnv, "from-env")
	t.Setenv(openAIAPIKeyEnv, "secret")

	cfg := Load()

	if cfg.OpenAI.Model != "from-env" {
		t.Fatalf("env override lost: %q", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.APIKey != "secret" {
		t.Fatalf("env api key lost: %q", cfg.OpenAI.APIKey)
	}
}

func TestLoadSurvivesMissingFile(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg := Load()
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("defaults lost on missing file: %q", cfg.OpenAI.Model)
	}
}

func TestValidate(t *testing.T) {
	base := defaultConfig()

	if err := base.Validate(false); err == nil {
		t.Fatal("expected error without api key")
	}

	base.OpenAI.APIKey = "k"
	if err := base.Validate(false); err != nil {
		t.Fatalf("historical mode should not require telegram: %v", err)
	}
	if err := base.Validate(true); err == nil {
		t.Fatal("continuous mode should require telegram credentials")
	}

	base.Telegram.BotToken = "t"
	base.Telegram.ChatID = "c"
	if err := base.Validate(true); err != nil {
		t.Fatalf("fully configured Validate failed: %v", err)
	}
}
