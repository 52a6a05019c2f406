package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jxucoder/openmumble/audiocapture"
)

// WhisperLocal implements Provider using the whisper.cpp CLI.
type WhisperLocal struct {
	modelSize string
	modelPath string
	binPath   string

	mu    sync.RWMutex
	ready bool
}

// WhisperLocalConfig holds configuration for WhisperLocal.
type WhisperLocalConfig struct {
	ModelSize string // "tiny", "base", "small", "medium", "large", or a ".en" variant
	ModelDir  string // directory for model files, default ~/.openmumble/models
	BinPath   string // explicit whisper.cpp binary path
}

var validModelSizes = map[string]bool{
	"tiny": true, "tiny.en": true,
	"base": true, "base.en": true,
	"small": true, "small.en": true,
	"medium": true, "medium.en": true,
	"large": true, "large-v3": true,
}

// NewWhisperLocal creates a local whisper.cpp provider.
func NewWhisperLocal(cfg WhisperLocalConfig) (*WhisperLocal, error) {
	if cfg.ModelSize == "" {
		cfg.ModelSize = "small"
	}
	if !validModelSizes[cfg.ModelSize] {
		return nil, fmt.Errorf("invalid model size: %s", cfg.ModelSize)
	}

	if cfg.ModelDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		cfg.ModelDir = filepath.Join(homeDir, ".openmumble", "models")
	}

	w := &WhisperLocal{
		modelSize: cfg.ModelSize,
		modelPath: filepath.Join(cfg.ModelDir, modelFileName(cfg.ModelSize)),
		binPath:   cfg.BinPath,
	}

	if w.binPath == "" {
		w.binPath = findWhisperBinary()
	}

	if _, err := os.Stat(w.modelPath); err == nil && w.binPath != "" {
		w.ready = true
	}

	return w, nil
}

func modelFileName(size string) string {
	if size == "large" {
		size = "large-v3"
	}
	return fmt.Sprintf("ggml-%s.bin", size)
}

func (w *WhisperLocal) Name() string { return "whisper-local" }

func (w *WhisperLocal) IsReady() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ready
}

func (w *WhisperLocal) Close() error { return nil }

// EnsureModel downloads the model file if it is missing. Safe to call
// at startup; progress is logged, not surfaced.
func (w *WhisperLocal) EnsureModel(ctx context.Context) error {
	if w.binPath == "" {
		return fmt.Errorf("whisper.cpp binary not found, install with: brew install whisper-cpp")
	}

	if _, err := os.Stat(w.modelPath); err == nil {
		w.mu.Lock()
		w.ready = true
		w.mu.Unlock()
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(w.modelPath), 0755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	url := fmt.Sprintf(
		"https://huggingface.co/ggerganov/whisper.cpp/resolve/main/%s",
		modelFileName(w.modelSize))
	slog.Info("downloading whisper model", "size", w.modelSize, "url", url)

	if err := w.download(ctx, url); err != nil {
		return fmt.Errorf("download model: %w", err)
	}

	w.mu.Lock()
	w.ready = true
	w.mu.Unlock()
	slog.Info("whisper model ready", "path", w.modelPath)
	return nil
}

func (w *WhisperLocal) download(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http status: %d", resp.StatusCode)
	}

	tmpPath := w.modelPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpPath, w.modelPath)
}

// Transcribe converts audio samples to text via whisper.cpp. Silence
// and no-speech both come back as an empty string.
func (w *WhisperLocal) Transcribe(ctx context.Context, audio []float32, language string) (string, error) {
	if !audiocapture.HasSpeech(audio) {
		return "", nil
	}
	if !w.IsReady() {
		return "", fmt.Errorf("whisper-local not ready: model not downloaded")
	}

	audioPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("openmumble_audio_%d.wav", time.Now().UnixNano()))
	if err := writeWAV(audioPath, audio, 16000); err != nil {
		return "", fmt.Errorf("encode audio: %w", err)
	}
	defer os.Remove(audioPath)

	args := []string{
		"-m", w.modelPath,
		"-f", audioPath,
		"-oj",
		"--no-prints",
	}
	if language != "" {
		args = append(args, "-l", language)
	}

	cmd := exec.CommandContext(ctx, w.binPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("whisper.cpp failed: %w, stderr: %s", err, stderr.String())
	}

	text, err := parseWhisperOutput(stdout.Bytes())
	if err != nil {
		// Older builds print plain text despite -oj.
		return strings.TrimSpace(stdout.String()), nil
	}
	return text, nil
}

// whisperCppOutput is the JSON shape whisper.cpp emits with -oj.
type whisperCppOutput struct {
	Transcription []struct {
		Text string `json:"text"`
	} `json:"transcription"`
}

func parseWhisperOutput(data []byte) (string, error) {
	var out whisperCppOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return "", err
	}

	parts := make([]string, 0, len(out.Transcription))
	for _, seg := range out.Transcription {
		if t := strings.TrimSpace(seg.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " "), nil
}

func findWhisperBinary() string {
	// whisper-cli is the Homebrew name.
	names := []string{"whisper-cli", "whisper-cpp", "whisper", "main"}

	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	homeDir, _ := os.UserHomeDir()
	locations := []string{
		"/opt/homebrew/bin",
		"/usr/local/bin",
		filepath.Join(homeDir, ".local", "bin"),
		filepath.Join(homeDir, "whisper.cpp"),
	}
	for _, loc := range locations {
		for _, name := range names {
			path := filepath.Join(loc, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}
