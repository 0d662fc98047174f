package snapshot

import (
	"errors"

	"github.com/m04kA/SMC-DartsBookingService/pkg/txmanager"
)

var (
	// ErrSnapshotNotFound возвращается, когда снимок с ключом еще не сохранялся
	ErrSnapshotNotFound = errors.New("snapshot.repository: snapshot not found")

	// ErrConcurrentUpdate возвращается, когда сериализуемая транзакция конфликтует с параллельной.
	// Совпадает с ошибкой txmanager, чтобы конфликт при записи и при фиксации проверялся одинаково.
	ErrConcurrentUpdate = txmanager.ErrSerializationFailure

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("snapshot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("snapshot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("snapshot.repository: failed to scan row")

	// ErrDecode возвращается, когда сохраненный снимок не разбирается
	ErrDecode = errors.New("snapshot.store: failed to decode snapshot")

	// ErrEncode возвращается, когда снимок не сериализуется
	ErrEncode = errors.New("snapshot.store: failed to encode snapshot")
)
