package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DartsBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DartsBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-DartsBookingService/pkg/txmanager"
)

const tableSnapshots = "snapshots"

// Repository хранилище снимков в PostgreSQL (таблица snapshots)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория снимков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает снимок по ключу.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы чтение и запись
// одного снимка в usecase были атомарными.
func (r *Repository) Get(ctx context.Context, key string) ([]byte, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("payload").
		From(tableSnapshots).
		Where(squirrel.Eq{"key": key})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var payload []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan payload key=%s: %w", ErrScanRow, key, classify(err))
	}

	return payload, nil
}

// Put сохраняет снимок целиком (upsert по ключу)
func (r *Repository) Put(ctx context.Context, key string, payload []byte) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableSnapshots).
		Columns("key", "payload", "updated_at").
		Values(key, payload, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Put - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Put - execute upsert key=%s: %w", ErrExecQuery, key, classify(err))
	}

	return nil
}

// classify отмечает конфликты сериализуемых транзакций отдельной ошибкой
func classify(err error) error {
	if txmanager.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	}
	return err
}
