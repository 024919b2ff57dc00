package v1

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/evsys/event-scheduling-api/internal/api/handler/v1/response"
	"github.com/evsys/event-scheduling-api/internal/api/middleware"
	"github.com/evsys/event-scheduling-api/internal/domain"
)

var errNotAuthenticated = errors.New("user is not authenticated")

type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID uint) (domain.Principal, error)
}

// getPrincipalFromContext resolves the authenticated user ID set by the JWT
// middleware into a role-tagged principal.
func getPrincipalFromContext(ctx *gin.Context, resolver PrincipalResolver) (domain.Principal, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.Principal{}, response.ErrUnauthorized(errNotAuthenticated)
	}

	userID, ok := value.(uint)
	if !ok {
		return domain.Principal{}, response.ErrUnauthorized(errNotAuthenticated)
	}

	principal, err := resolver.ResolvePrincipal(ctx.Request.Context(), userID)
	if err != nil {
		return domain.Principal{}, response.ErrUnauthorized(err)
	}

	return principal, nil
}
