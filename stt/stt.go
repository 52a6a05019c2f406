// Package stt provides speech-to-text provider interface and
// implementations.
package stt

import "context"

// Provider converts audio to text. Both local (whisper.cpp) and remote
// (OpenAI API) implementations satisfy this interface.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// IsReady returns true if the provider can transcribe right now.
	IsReady() bool

	// Transcribe converts PCM float32 samples at 16000 Hz to text.
	// Both "no audio" and "no speech detected" return an empty string,
	// not an error.
	Transcribe(ctx context.Context, audio []float32, language string) (string, error)

	// Close releases resources held by the provider.
	Close() error
}

// Registry holds registered STT providers.
type Registry struct {
	providers map[string]Provider
	order     []string
}

// NewRegistry creates a new provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider to the registry.
func (r *Registry) Register(p Provider) {
	if _, exists := r.providers[p.Name()]; !exists {
		r.order = append(r.order, p.Name())
	}
	r.providers[p.Name()] = p
}

// Get returns a provider by name, or nil.
func (r *Registry) Get(name string) Provider {
	return r.providers[name]
}

// List returns all registered providers in registration order.
func (r *Registry) List() []Provider {
	result := make([]Provider, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.providers[name])
	}
	return result
}

// Close releases all providers.
func (r *Registry) Close() error {
	for _, p := range r.providers {
		if err := p.Close(); err != nil {
			return err
		}
	}
	return nil
}
