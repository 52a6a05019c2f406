// OpenMumble is a push-to-talk dictation tool: hold a hotkey, speak,
// release, and the transcribed text is typed into whatever application
// had focus when you started.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jxucoder/openmumble/audiocapture"
	"github.com/jxucoder/openmumble/cleanup"
	"github.com/jxucoder/openmumble/config"
	"github.com/jxucoder/openmumble/frontapp"
	"github.com/jxucoder/openmumble/hotkey"
	"github.com/jxucoder/openmumble/insert"
	"github.com/jxucoder/openmumble/internal/app"
	"github.com/jxucoder/openmumble/llm"
	"github.com/jxucoder/openmumble/notify"
	"github.com/jxucoder/openmumble/stt"
)

var version = "dev"

var (
	flagConfig    string
	flagModel     string
	flagHotkey    string
	flagNoCleanup bool
	flagVerbose   bool
)

func main() {
	root := &cobra.Command{
		Use:          "openmumble",
		Short:        "Hold-to-talk dictation with local Whisper transcription",
		Version:      version,
		RunE:         run,
		SilenceUsage: true,
	}

	root.Flags().StringVar(&flagConfig, "config", "", "path to config file")
	root.Flags().StringVar(&flagModel, "model", "", "whisper model size (tiny, base, small, medium, large)")
	root.Flags().StringVar(&flagHotkey, "hotkey", "", "push-to-talk key (ctrl, alt, shift, cmd, fn, f1..f12, or a character)")
	root.Flags().BoolVar(&flagNoCleanup, "no-cleanup", false, "insert the raw transcript without LLM cleanup")
	root.Flags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagModel != "" {
		cfg.Whisper.ModelSize = flagModel
	}
	if flagHotkey != "" {
		cfg.Hotkey = flagHotkey
	}
	if flagNoCleanup {
		cfg.EnableCleanup = false
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rec, err := audiocapture.New(audiocapture.Config{
		SampleRate: cfg.Audio.SampleRate,
		Channels:   cfg.Audio.Channels,
	})
	if err != nil {
		return fmt.Errorf("open microphone: %w", err)
	}
	defer rec.Close()

	provider, err := buildTranscriber(ctx, cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	cleaner, closeCache := buildCleaner(cfg)
	if closeCache != nil {
		defer closeCache()
	}

	eng := insert.New(insert.NewFocusProvider(), insert.NewSyntheticInput(), insert.NewClipboard(), insert.Options{
		Frontmost: func() (int, string) {
			a, err := frontapp.Frontmost()
			if err != nil {
				return 0, ""
			}
			return a.PID, a.BundleID
		},
		SecureInput:      insert.SecureInputActive,
		ProfileOverrides: cfg.Insert.Profiles,
		TypeDelay:        time.Duration(cfg.Insert.TypingDelayMS) * time.Millisecond,
	})

	notes := notify.New(cfg.Notifications)
	ctrl := app.New(rec, provider, cleaner, eng, app.SystemApps{}, notes, app.Config{
		Language:       cfg.Whisper.Language,
		CleanupEnabled: cleaner != nil,
	})
	ctrl.Start()
	defer ctrl.Close()

	watch, err := hotkey.New(cfg.Hotkey)
	if err != nil {
		return fmt.Errorf("resolve hotkey %q: %w", cfg.Hotkey, err)
	}
	watch.Start()
	defer watch.Stop()

	go func() {
		for ev := range watch.Events() {
			switch ev.Type {
			case hotkey.Press:
				ctrl.Press()
			case hotkey.Release:
				ctrl.Release()
			}
		}
	}()

	slog.Info("ready", "hotkey", cfg.Hotkey, "stt", provider.Name(), "cleanup", cleaner != nil)
	notes.Info(fmt.Sprintf("Ready. Hold %s to dictate.", cfg.Hotkey))

	<-ctx.Done()
	slog.Info("shutting down")
	return nil
}

// buildTranscriber registers the configured providers and pre-warms the
// local model so the first dictation does not block on a download.
func buildTranscriber(ctx context.Context, cfg *config.Config) (stt.Provider, error) {
	registry := stt.NewRegistry()

	local, err := stt.NewWhisperLocal(stt.WhisperLocalConfig{
		ModelSize: cfg.Whisper.ModelSize,
		ModelDir:  cfg.Whisper.ModelDir,
	})
	if err != nil {
		return nil, fmt.Errorf("init whisper: %w", err)
	}
	registry.Register(local)

	if cfg.OpenAIAPIKey != "" {
		registry.Register(stt.NewWhisperAPI(stt.WhisperAPIConfig{APIKey: cfg.OpenAIAPIKey}))
	}

	provider := registry.Get(cfg.STTEngine)
	if provider == nil {
		return nil, fmt.Errorf("unknown stt engine: %s", cfg.STTEngine)
	}

	if wl, ok := provider.(*stt.WhisperLocal); ok {
		slog.Info("preparing whisper model", "size", cfg.Whisper.ModelSize)
		if err := wl.EnsureModel(ctx); err != nil {
			return nil, fmt.Errorf("prepare whisper model: %w", err)
		}
	}
	if !provider.IsReady() {
		return nil, fmt.Errorf("stt engine %s is not ready", provider.Name())
	}
	return provider, nil
}

// buildCleaner wires the LLM cleanup processor when it is enabled and
// an API key is present. Returns nil when dictation should insert raw
// transcripts.
func buildCleaner(cfg *config.Config) (app.Cleaner, func()) {
	if !cfg.EnableCleanup {
		return nil, nil
	}
	if cfg.AnthropicAPIKey == "" {
		slog.Warn("cleanup enabled but ANTHROPIC_API_KEY is not set, inserting raw transcripts")
		return nil, nil
	}

	var cache *cleanup.Cache
	var closeCache func()
	if dir, err := os.UserConfigDir(); err == nil {
		c, err := cleanup.OpenCache(filepath.Join(dir, "openmumble", "cache"))
		if err != nil {
			slog.Warn("cleanup cache unavailable", "error", err)
		} else {
			cache = c
			closeCache = func() {
				if err := c.Close(); err != nil {
					slog.Error("close cache", "error", err)
				}
			}
		}
	}

	completer := llm.NewCompleter("claude", cfg.AnthropicAPIKey, "", cfg.ClaudeModel, llm.Options{MaxTokens: 1024})
	return cleanup.New(completer, cfg.ClaudeModel, cache), closeCache
}
