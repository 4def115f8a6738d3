package middleware

import (
	"context"
	"net/http"
	"strings"

	"codedojo/internal/common"
	"codedojo/internal/common/security"
	"codedojo/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey   contextKey = "userID"
	UserRoleCtxKey contextKey = "userRole"
)

func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

		if err != nil {
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}

		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}
		userRole, err := security.GetUserRoleFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		ctx = context.WithValue(ctx, UserRoleCtxKey, userRole)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(UserRoleCtxKey).(string)
		if !ok || role != model.RoleAdmin {
			common.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserIDFromContext returns the authenticated user id set by Authenticator.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	userRole, ok := ctx.Value(UserRoleCtxKey).(string)
	return userRole, ok
}

// OptionalUserID extracts the user id from a verified token when one is
// present. Routes that serve both anonymous and logged-in users (submit,
// problem list) use this instead of Authenticator.
func OptionalUserID(r *http.Request) *string {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		return nil
	}
	userID, err := security.GetUserIDFromClaims(claims)
	if err != nil {
		return nil
	}
	return &userID
}

// OptionalUserRole is OptionalUserID's counterpart for the role claim.
func OptionalUserRole(r *http.Request) string {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		return ""
	}
	role, err := security.GetUserRoleFromClaims(claims)
	if err != nil {
		return ""
	}
	return role
}
