package cleanup

import (
	"context"
	"errors"
	"testing"

	"github.com/jxucoder/openmumble/llm"
)

type fakeCompleter struct {
	reply string
	err   error
	calls int
	last  []llm.Message
}

func (f *fakeCompleter) Complete(_ context.Context, messages []llm.Message) (string, llm.Usage, error) {
	f.calls++
	f.last = messages
	if f.err != nil {
		return "", llm.Usage{}, f.err
	}
	return f.reply, llm.Usage{}, nil
}

func TestProcessEmptyInputSkipsAPI(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"newlines", "\n\t "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCompleter{reply: "should not be used"}
			p := New(fc, "test-model", nil)
			got, err := p.Process(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if got != tt.in {
				t.Errorf("got %q, want input unchanged", got)
			}
			if fc.calls != 0 {
				t.Errorf("completer called %d times, want 0", fc.calls)
			}
		})
	}
}

func TestProcessSendsSystemAndUserMessages(t *testing.T) {
	fc := &fakeCompleter{reply: "  Wednesday works for me.  "}
	p := New(fc, "test-model", nil)

	got, err := p.Process(context.Background(), "um Tuesday no Wednesday works for me")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got != "Wednesday works for me." {
		t.Errorf("got %q, want trimmed reply", got)
	}
	if len(fc.last) != 2 {
		t.Fatalf("got %d messages, want 2", len(fc.last))
	}
	if fc.last[0].Role != "system" || fc.last[1].Role != "user" {
		t.Errorf("roles = %s, %s; want system, user", fc.last[0].Role, fc.last[1].Role)
	}
	if fc.last[1].Content != "um Tuesday no Wednesday works for me" {
		t.Errorf("user content = %q", fc.last[1].Content)
	}
}

func TestProcessPropagatesError(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("api down")}
	p := New(fc, "test-model", nil)
	if _, err := p.Process(context.Background(), "hello"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestProcessUsesCache(t *testing.T) {
	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	defer cache.Close()

	fc := &fakeCompleter{reply: "Cleaned text."}
	p := New(fc, "test-model", cache)

	first, err := p.Process(context.Background(), "cleaned text")
	if err != nil {
		t.Fatalf("first Process: %v", err)
	}
	second, err := p.Process(context.Background(), "cleaned text")
	if err != nil {
		t.Fatalf("second Process: %v", err)
	}
	if first != second {
		t.Errorf("cache returned %q, want %q", second, first)
	}
	if fc.calls != 1 {
		t.Errorf("completer called %d times, want 1", fc.calls)
	}
}

func TestCacheKeysByModel(t *testing.T) {
	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	defer cache.Close()

	if err := cache.Put("model-a", "p", "text", "result-a"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok := cache.Get("model-b", "p", "text"); ok {
		t.Error("different model should miss")
	}
	got, ok := cache.Get("model-a", "p", "text")
	if !ok || got != "result-a" {
		t.Errorf("Get = %q, %v; want result-a, true", got, ok)
	}
}
