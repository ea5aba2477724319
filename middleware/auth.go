package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bloggapi/blogg/authz"
	"github.com/bloggapi/blogg/utils"
)

const (
	// ContextUsernameKey stores the authenticated username in Gin context.
	ContextUsernameKey = "username"
	// ContextRolesKey stores the authenticated caller's role claims.
	ContextRolesKey = "roles"
)

// AuthRequired verifies the bearer token and stores the validated
// identity in the request context. Handlers behind it trust that
// identity and never re-derive it.
func AuthRequired(issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, "empty bearer token")
			ctx.Abort()
			return
		}

		claims, err := issuer.Parse(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUsernameKey, claims.Username)
		ctx.Set(ContextRolesKey, claims.Roles)
		ctx.Next()
	}
}

// IdentityFrom rebuilds the validated identity placed in the context by
// AuthRequired. The zero Identity means the request was not
// authenticated.
func IdentityFrom(ctx *gin.Context) authz.Identity {
	id := authz.Identity{}
	if v, ok := ctx.Get(ContextUsernameKey); ok {
		id.Username, _ = v.(string)
	}
	if v, ok := ctx.Get(ContextRolesKey); ok {
		id.Roles, _ = v.([]string)
	}
	return id
}
