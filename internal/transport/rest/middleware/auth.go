package middleware

import (
	"context"
	"net/http"
	"strings"

	"selstudy/internal/service"
)

type contextKey string

const TeacherIDKey contextKey = "teacherId"

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireTeacher validates the teacher JWT from the Authorization header
func (m *AuthMiddleware) RequireTeacher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header","code":"UNAUTHORIZED"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateTeacherToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token","code":"UNAUTHORIZED"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), TeacherIDKey, claims.TeacherID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTeacherID extracts the teacher ID from the request context
func GetTeacherID(ctx context.Context) string {
	if v := ctx.Value(TeacherIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
