package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Laky-64/gologging"

	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/storage/memory"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/storage/mongo"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/storage/sqlite"
	"github.com/jpp0ca/MusicRecognition-API/internal/config"
	"github.com/jpp0ca/MusicRecognition-API/internal/ports"
)

// Store is a key-value store that holds resources until closed.
type Store interface {
	ports.KeyValueStore
	Close() error
}

type memoryStore struct{ *memory.Store }

func (memoryStore) Close() error { return nil }

type mongoStore struct{ *mongo.Store }

func (s mongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Store.Close(ctx)
}

// Open returns the store selected by cfg.CacheBackend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.CacheBackend {
	case config.BackendMemory:
		gologging.WarnF("[storage] using in-memory cache, recent searches will not survive a restart")
		return memoryStore{memory.NewStore()}, nil
	case config.BackendMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("storage: MONGO_URI is required for the %s backend", config.BackendMongo)
		}
		s, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		gologging.InfoF("[storage] using mongo database %s", cfg.MongoDB)
		return mongoStore{s}, nil
	case config.BackendSQLite, "":
		s, err := sqlite.Open(cfg.CacheDBPath)
		if err != nil {
			return nil, err
		}
		gologging.InfoF("[storage] using sqlite file %s", cfg.CacheDBPath)
		return s, nil
	default:
		return nil, fmt.Errorf("storage: unknown cache backend %q", cfg.CacheBackend)
	}
}
