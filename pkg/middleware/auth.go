package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"property-booking/internal/data/entity"
	"property-booking/internal/data/repository"
	"property-booking/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession resolves the bearer session token to a user id and role.
func AuthSession(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := strings.TrimSpace(parts[1])

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil || !session.Active(time.Now()) {
				logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			user, err := userRepo.FindByID(r.Context(), session.UserID)
			if err != nil {
				logger.Error("Failed to load session user",
					zap.Error(err), zap.String("user_id", session.UserID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil || !user.IsActive {
				utils.ResponseUnauthorized(w, "Account is not active")
				return
			}

			ctx := utils.SetIdentity(r.Context(), utils.Identity{
				UserID: user.ID,
				Role:   string(user.Role),
				Token:  token,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects callers whose session role is not one of roles.
// Must run after AuthSession.
func RequireRole(logger *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !slices.Contains(roles, entity.UserRole(role)) {
				userID, _ := utils.GetUserIDFromContext(r.Context())
				logger.Warn("Role check: access denied",
					zap.String("user_id", userID.String()),
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Access denied for role "+role)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
