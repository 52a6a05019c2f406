// Package cleanup rewrites raw dictation transcripts into polished text
// using an LLM, with a local cache of prior results.
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jxucoder/openmumble/llm"
)

const systemPrompt = `You clean up dictated speech transcripts. Apply these rules:
- Remove filler words (um, uh, like, you know) unless they carry meaning.
- Fix grammar, punctuation, and capitalization.
- Resolve self-corrections: "Tuesday no Wednesday" becomes "Wednesday".
- Preserve the speaker's tone, word choice, and intent.
- Never add content the speaker did not say.
Return only the cleaned text with no commentary.`

// Processor cleans up transcripts through a Completer.
type Processor struct {
	completer llm.Completer
	model     string
	cache     *Cache
}

// New creates a Processor. cache may be nil to disable caching.
func New(completer llm.Completer, model string, cache *Cache) *Processor {
	return &Processor{completer: completer, model: model, cache: cache}
}

// Process returns the cleaned form of text. Empty or whitespace-only
// input is returned unchanged without an API call.
func (p *Processor) Process(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	if p.cache != nil {
		if cleaned, ok := p.cache.Get(p.model, systemPrompt, text); ok {
			slog.Debug("cleanup cache hit")
			return cleaned, nil
		}
	}

	cleaned, usage, err := p.completer.Complete(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: text},
	})
	if err != nil {
		return "", fmt.Errorf("complete cleanup: %w", err)
	}
	cleaned = strings.TrimSpace(cleaned)
	slog.Debug("cleanup done",
		"input_len", len(text),
		"output_len", len(cleaned),
		"tokens", usage.TotalTokens)

	if p.cache != nil {
		if err := p.cache.Put(p.model, systemPrompt, text, cleaned); err != nil {
			slog.Error("cleanup cache write", "error", err)
		}
	}
	return cleaned, nil
}
