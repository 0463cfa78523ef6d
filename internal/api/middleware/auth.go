package middleware

import (
	"context"
	"net/http"

	"github.com/smartdoc/docqa-backend/internal/entity"
	"github.com/smartdoc/docqa-backend/internal/pkg/response"
)

type userIDContextKey struct{}

// UserIDHeader carries the authenticated user id, set by the identity
// gateway in front of this service. The service performs no authentication
// itself; it only enforces tenant isolation on the id it is handed.
const UserIDHeader = "X-User-ID"

// Auth rejects requests without an authenticated user id and stores the id
// in the request context for handlers.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			response.Error(w, http.StatusUnauthorized,
				entity.ErrorCode(entity.ErrUnauthenticated),
				entity.ErrUnauthenticated.Error(),
			)
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID extracts the authenticated user id from the request context.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDContextKey{}).(string)
	return id
}
