package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-DartsBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
)

// UserIDHeader заголовок с ID пользователя, выданным при входе
const UserIDHeader = "X-User-ID"

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgUnknownUser   = "пользователь не найден"
	msgUserBlocked   = "пользователь заблокирован"
	msgAdminOnly     = "доступно только администратору"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	userRoleKey
)

// UserStore источник зарегистрированных пользователей
type UserStore interface {
	User(ctx context.Context, id string) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет X-User-ID по хранилищу пользователей и кладет пользователя в контекст
type Auth struct {
	users  UserStore
	logger Logger
}

func NewAuth(users UserStore, logger Logger) *Auth {
	return &Auth{
		users:  users,
		logger: logger,
	}
}

// Required пропускает только известных незаблокированных пользователей
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		user, err := a.users.User(r.Context(), userID)
		if err != nil {
			a.logger.Error("Auth: failed to load user: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
			return
		}
		if user == nil {
			a.logger.Warn("Auth: unknown user: user_id=%s", userID)
			handlers.RespondUnauthorized(w, msgUnknownUser)
			return
		}
		if user.Blocked {
			a.logger.Warn("Auth: blocked user: user_id=%s", userID)
			handlers.RespondForbidden(w, msgUserBlocked)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Optional кладет пользователя в контекст, если заголовок передан, иначе запрос анонимный
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.users.User(r.Context(), userID)
		if err != nil {
			a.logger.Error("Auth: failed to load user: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
			return
		}
		if user == nil || user.Blocked {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireAdmin пропускает только администраторов. Ставится после Required.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(userRoleKey).(domain.Role)
		if role != domain.RoleAdmin {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser кладет ID и роль пользователя в контекст
func WithUser(ctx context.Context, user *domain.User) context.Context {
	ctx = context.WithValue(ctx, userIDKey, user.ID)
	return context.WithValue(ctx, userRoleKey, user.Role)
}

// GetUserID возвращает ID пользователя, проверенного Auth
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
