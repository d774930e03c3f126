package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/RiverRun-BookingService/internal/api/handlers"
	"github.com/m04kA/RiverRun-BookingService/internal/domain"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"

	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidRole   = "некорректная роль пользователя"
	msgForbidden     = "доступ запрещен"
)

// Auth извлекает пользователя из заголовков X-User-ID и X-User-Role.
// Аутентификацию выполняет шлюз, сервис доверяет заголовкам. Роль по умолчанию CUSTOMER.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, ok, msg := withCaller(r)
		if !ok {
			handlers.RespondUnauthorized(w, msg)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth как Auth, но пропускает анонимные запросы
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimSpace(r.Header.Get(HeaderUserID)) == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx, ok, msg := withCaller(r)
		if !ok {
			handlers.RespondUnauthorized(w, msg)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole пропускает только пользователей с одной из ролей. Ставится после Auth.
func RequireRole(roles ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRole(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserRole возвращает роль пользователя из контекста
func GetUserRole(ctx context.Context) (domain.UserRole, bool) {
	role, ok := ctx.Value(userRoleKey).(domain.UserRole)
	return role, ok
}

// WithUser кладет пользователя в контекст (используется в тестах обработчиков)
func WithUser(ctx context.Context, userID string, role domain.UserRole) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}

func withCaller(r *http.Request) (context.Context, bool, string) {
	userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if userID == "" {
		return nil, false, msgMissingUserID
	}

	role := domain.RoleCustomer
	if raw := strings.TrimSpace(r.Header.Get(HeaderUserRole)); raw != "" {
		role = domain.UserRole(strings.ToUpper(raw))
		if !role.IsValid() {
			return nil, false, msgInvalidRole
		}
	}

	return WithUser(r.Context(), userID, role), true, ""
}
