package ports

import (
	"context"

	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
)

// Recognizer defines the contract of a music recognition backend. This is the
// primary driven port of the hexagonal architecture.
type Recognizer interface {
	// RecognizeByURL asks the backend to fetch and identify the audio at a URL.
	// URLs failing the local pre-filter yield an error response without a
	// network call.
	RecognizeByURL(ctx context.Context, req domain.URLRequest) (*domain.RecognitionResponse, error)

	// RecognizeByFile uploads an audio payload for identification.
	RecognizeByFile(ctx context.Context, req domain.FileRequest) (*domain.RecognitionResponse, error)
}

// KeyValueStore is a minimal durable string store.
type KeyValueStore interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// AudioDevice is an exclusively owned audio input. Start acquires the device
// and begins delivering chunks in arrival order; Stop releases every
// underlying track and must be safe to call on a device that never started.
type AudioDevice interface {
	Start(onChunk func([]byte), onError func(error)) error
	Stop() error
	Format() domain.AudioFormat
}

// MetadataProvider extracts presentation data from one provider enrichment
// block. Every method is total: a missing block yields ("", false).
type MetadataProvider interface {
	// Name returns the provider identifier sent in the "return" field
	// (e.g., "apple_music", "spotify").
	Name() string

	ArtworkURL(r domain.Result, size int) (string, bool)
	PreviewURL(r domain.Result) (string, bool)
	ListenURL(r domain.Result) (string, bool)
}

// RecognitionService defines the driving port for the recognition use case.
type RecognitionService interface {
	// Recognize identifies a track and folds matches into the recent searches.
	Recognize(ctx context.Context, req domain.RecognitionRequest) (*domain.Recognition, error)

	// RecentSearches returns the most recent matches, newest first.
	RecentSearches(ctx context.Context) []domain.RecentSearch

	// ClearRecentSearches forgets every recent match.
	ClearRecentSearches(ctx context.Context) error
}
