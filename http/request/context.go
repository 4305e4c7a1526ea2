package request

import (
	"net/http"

	"github.com/seowoojae/shelfd/model"
)

type ContextKey int

const (
	ClientIPContextKey ContextKey = iota
	UserIDContextKey
	UserNameContextKey
	UserRolesContextKey
)

func getContextStringValue(r *http.Request, key ContextKey) string {
	if v := r.Context().Value(key); v != nil {
		if value, valid := v.(string); valid {
			return value
		}
	}
	return ""
}

// ClientIP returns the client IP address stored in the context.
func ClientIP(r *http.Request) string {
	return getContextStringValue(r, ClientIPContextKey)
}

// GetUserID returns the authenticated user ID stored in the context, or 0
// when the request is unauthenticated.
func GetUserID(r *http.Request) int32 {
	if v := r.Context().Value(UserIDContextKey); v != nil {
		if id, valid := v.(int32); valid {
			return id
		}
	}
	return 0
}

// GetUserName returns the authenticated username stored in the context.
func GetUserName(r *http.Request) string {
	return getContextStringValue(r, UserNameContextKey)
}

// GetUserRole returns the authenticated user's role stored in the context.
func GetUserRole(r *http.Request) model.Role {
	if v := r.Context().Value(UserRolesContextKey); v != nil {
		if role, valid := v.(model.Role); valid {
			return role
		}
	}
	return model.RoleUser
}
