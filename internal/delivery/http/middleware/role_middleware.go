package middleware

import (
	"net/http"

	"github.com/pawbook/pawbook/internal/domain/entity"
	"github.com/pawbook/pawbook/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(allowedRoleIDs ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRoleID := range allowedRoleIDs {
				if roleID == allowedRoleID {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin)(next)
}

// RequireTrainer is a convenience middleware for trainer-only endpoints
func RequireTrainer(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDTrainer)(next)
}

// RequireOwner is a convenience middleware for dog-owner-only endpoints
func RequireOwner(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDOwner)(next)
}

// RequireOwnerOrTrainer allows endpoints shared by both booking parties
func RequireOwnerOrTrainer(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDOwner, entity.RoleIDTrainer)(next)
}
