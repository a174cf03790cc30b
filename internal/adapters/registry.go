package adapters

import (
	"fmt"
	"sync"

	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
	"github.com/jpp0ca/MusicRecognition-API/internal/ports"
)

// Artwork sizes used by the result view and the recent searches list.
const (
	ResultArtworkSize = 300
	RecentArtworkSize = 120
)

// PlaceholderArtworkURL returns the image shown when no provider has artwork.
func PlaceholderArtworkURL(size int) string {
	return fmt.Sprintf("https://placehold.co/%dx%d/8B5CF6/FFFFFF?text=No+Image", size, size)
}

// ProviderRegistry keeps MetadataProvider implementations in registration
// order, which is also the order extractors are tried in.
// It is safe for concurrent use.
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers map[string]ports.MetadataProvider
	order     []string
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ports.MetadataProvider),
	}
}

// Register adds a provider to the registry, keyed by its Name(). Registering
// a name again replaces the provider but keeps its original position.
func (r *ProviderRegistry) Register(provider ports.MetadataProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[provider.Name()]; !exists {
		r.order = append(r.order, provider.Name())
	}
	r.providers[provider.Name()] = provider
}

// Get returns the provider for the given name, or an error if not found.
func (r *ProviderRegistry) Get(name string) (ports.MetadataProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
	return provider, nil
}

// Available returns the names of all registered providers in priority order.
func (r *ProviderRegistry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

func (r *ProviderRegistry) ordered() []ports.MetadataProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ports.MetadataProvider, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.providers[name])
	}
	return out
}

// ArtworkURL returns the first artwork any provider has for the result, or
// the placeholder image.
func (r *ProviderRegistry) ArtworkURL(result domain.Result, size int) string {
	for _, p := range r.ordered() {
		if url, ok := p.ArtworkURL(result, size); ok {
			return url
		}
	}
	return PlaceholderArtworkURL(size)
}

// PreviewURL returns the first audio preview any provider has for the result.
func (r *ProviderRegistry) PreviewURL(result domain.Result) (string, bool) {
	for _, p := range r.ordered() {
		if url, ok := p.PreviewURL(result); ok {
			return url, true
		}
	}
	return "", false
}

// Links returns the song link followed by every provider's listen link.
func (r *ProviderRegistry) Links(result domain.Result) []domain.Link {
	var links []domain.Link
	if result.SongLink != "" {
		links = append(links, domain.Link{Provider: "song_link", URL: result.SongLink})
	}
	for _, p := range r.ordered() {
		if url, ok := p.ListenURL(result); ok {
			links = append(links, domain.Link{Provider: p.Name(), URL: url})
		}
	}
	return links
}
