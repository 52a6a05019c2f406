package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Hotkey != "ctrl" {
		t.Errorf("Hotkey = %q, want %q", cfg.Hotkey, "ctrl")
	}
	if cfg.Whisper.ModelSize != "small" {
		t.Errorf("Whisper.ModelSize = %q, want %q", cfg.Whisper.ModelSize, "small")
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("Audio.SampleRate = %d, want 16000", cfg.Audio.SampleRate)
	}
	if !cfg.EnableCleanup {
		t.Error("EnableCleanup = false, want true")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := map[string]any{
		"hotkey":         "fn",
		"enable_cleanup": false,
		"whisper": map[string]any{
			"model_size": "medium",
		},
		"insert": map[string]any{
			"typing_delay_ms": 4,
			"profiles":        map[string]string{"com.example.app": "typing"},
		},
	}
	data, _ := json.Marshal(raw)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Hotkey != "fn" {
		t.Errorf("Hotkey = %q, want %q", cfg.Hotkey, "fn")
	}
	if cfg.EnableCleanup {
		t.Error("EnableCleanup = true, want false")
	}
	if cfg.Whisper.ModelSize != "medium" {
		t.Errorf("Whisper.ModelSize = %q, want %q", cfg.Whisper.ModelSize, "medium")
	}
	if cfg.Insert.TypingDelayMS != 4 {
		t.Errorf("Insert.TypingDelayMS = %d, want 4", cfg.Insert.TypingDelayMS)
	}
	if got := cfg.Insert.Profiles["com.example.app"]; got != "typing" {
		t.Errorf("Insert.Profiles[com.example.app] = %q, want %q", got, "typing")
	}
	// Untouched fields keep defaults.
	if cfg.Audio.Channels != 1 {
		t.Errorf("Audio.Channels = %d, want 1", cfg.Audio.Channels)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-env")
	t.Setenv("OPENMUMBLE_MODEL", "tiny")
	t.Setenv("OPENMUMBLE_HOTKEY", "alt")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AnthropicAPIKey != "sk-ant-env" {
		t.Errorf("AnthropicAPIKey = %q, want env value", cfg.AnthropicAPIKey)
	}
	if cfg.Whisper.ModelSize != "tiny" {
		t.Errorf("Whisper.ModelSize = %q, want %q", cfg.Whisper.ModelSize, "tiny")
	}
	if cfg.Hotkey != "alt" {
		t.Errorf("Hotkey = %q, want %q", cfg.Hotkey, "alt")
	}
}

func TestNormalizeFillsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"audio":{"sample_rate":0,"channels":0}}`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Audio.SampleRate != 16000 || cfg.Audio.Channels != 1 {
		t.Errorf("audio = %+v, want 16000/1", cfg.Audio)
	}
	if cfg.STTEngine != "whisper-local" {
		t.Errorf("STTEngine = %q, want whisper-local", cfg.STTEngine)
	}
}
