package snapshot

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryRepository хранилище снимков в памяти процесса (go-cache без истечения)
type MemoryRepository struct {
	cache *cache.Cache
}

// NewMemoryRepository создает пустое in-memory хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Get возвращает копию сохраненного снимка
func (r *MemoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := r.cache.Get(key)
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	payload := value.([]byte)
	return append([]byte(nil), payload...), nil
}

// Put сохраняет копию снимка
func (r *MemoryRepository) Put(_ context.Context, key string, payload []byte) error {
	r.cache.Set(key, append([]byte(nil), payload...), cache.NoExpiration)
	return nil
}
