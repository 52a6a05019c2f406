// Package config handles application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName        = "openmumble"
	configFileName = "config.json"
)

// WhisperConfig configures the local speech-to-text engine.
type WhisperConfig struct {
	ModelSize string `json:"model_size"` // "tiny", "base", "small", "medium", "large"
	Device    string `json:"device"`     // "auto", "cpu", "cuda"
	ModelDir  string `json:"model_dir,omitempty"`
	Language  string `json:"language,omitempty"` // empty = auto-detect
}

// AudioConfig configures microphone capture.
type AudioConfig struct {
	SampleRate int `json:"sample_rate"`
	Channels   int `json:"channels"`
}

// InsertConfig configures the text insertion engine.
type InsertConfig struct {
	// TypingDelayMS is the per-character delay for synthetic typing
	// strategies. Zero means the built-in default.
	TypingDelayMS int `json:"typing_delay_ms,omitempty"`

	// Profiles maps bundle-identifier prefixes to profile names
	// ("accessibility", "typing", "browser"), overriding the built-in
	// prefix rules for matching applications.
	Profiles map[string]string `json:"profiles,omitempty"`
}

// Config represents the application configuration.
type Config struct {
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty"`
	OpenAIAPIKey    string `json:"openai_api_key,omitempty"`
	ClaudeModel     string `json:"claude_model"`

	// STTEngine selects the transcription provider: "whisper-local" or
	// "whisper-api".
	STTEngine string `json:"stt_engine"`

	Whisper WhisperConfig `json:"whisper"`
	Audio   AudioConfig   `json:"audio"`
	Insert  InsertConfig  `json:"insert"`

	// Hotkey is the push-to-talk key: ctrl, alt, shift, cmd, fn, or a
	// single character.
	Hotkey string `json:"hotkey"`

	EnableCleanup bool `json:"enable_cleanup"`
	Notifications bool `json:"notifications"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ClaudeModel: "claude-sonnet-4-20250514",
		STTEngine:   "whisper-local",
		Whisper: WhisperConfig{
			ModelSize: "small",
			Device:    "auto",
			Language:  "en",
		},
		Audio: AudioConfig{
			SampleRate: 16000,
			Channels:   1,
		},
		Hotkey:        "ctrl",
		EnableCleanup: true,
		Notifications: true,
	}
}

// Load loads configuration from path, or from the default location when
// path is empty. A missing file yields the default config. Environment
// variables override file values where applicable:
//
//	ANTHROPIC_API_KEY overrides anthropic_api_key
//	OPENMUMBLE_MODEL  overrides whisper.model_size
//	OPENMUMBLE_HOTKEY overrides hotkey
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := configPath()
		if err != nil {
			return nil, fmt.Errorf("get config path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults plus env overrides.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	applyEnv(cfg)
	normalize(cfg)
	return cfg, nil
}

// Save persists the configuration to the default location.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

func applyEnv(cfg *Config) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		cfg.AnthropicAPIKey = key
	}
	if model := os.Getenv("OPENMUMBLE_MODEL"); model != "" {
		cfg.Whisper.ModelSize = model
	}
	if hotkey := os.Getenv("OPENMUMBLE_HOTKEY"); hotkey != "" {
		cfg.Hotkey = hotkey
	}
}

func normalize(cfg *Config) {
	if cfg.ClaudeModel == "" {
		cfg.ClaudeModel = Default().ClaudeModel
	}
	if cfg.STTEngine == "" {
		cfg.STTEngine = "whisper-local"
	}
	if cfg.Whisper.ModelSize == "" {
		cfg.Whisper.ModelSize = "small"
	}
	if cfg.Whisper.Device == "" {
		cfg.Whisper.Device = "auto"
	}
	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = 16000
	}
	if cfg.Audio.Channels <= 0 {
		cfg.Audio.Channels = 1
	}
	if cfg.Hotkey == "" {
		cfg.Hotkey = "ctrl"
	}
}
