package txmanager

import (
	"context"
	"sync"
)

type lockKey struct{}

// LockingManager сериализует операции над хранилищем в памяти одним мьютексом
type LockingManager struct {
	mu sync.Mutex
}

// NewLockingManager создает менеджер для in-memory хранилища
func NewLockingManager() *LockingManager {
	return &LockingManager{}
}

func (m *LockingManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *LockingManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *LockingManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *LockingManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if held, _ := ctx.Value(lockKey{}).(*LockingManager); held == m {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(context.WithValue(ctx, lockKey{}, m))
}
