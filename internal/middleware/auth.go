package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/Renishchandera/gameforge-ai/internal/modules/serializer"
	"github.com/Renishchandera/gameforge-ai/internal/modules/service"
	"github.com/Renishchandera/gameforge-ai/internal/pkg/utils/tokens"
)

// UserKey is the gin context key holding the authenticated *model.User.
const UserKey = "user"

// UserAuth authenticates the bearer access token and sets the caller in the context.
// It also sets the user_id attribute on the current span for telemetry filtering.
func UserAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, authSpan := otel.Tracer("middleware").Start(c.Request.Context(), "user_auth",
			trace.WithAttributes(attribute.String("middleware", "user_auth")))

		raw, _ := tokens.ParseToken(c.GetHeader("Authorization"), "Bearer ")
		user, err := auth.Authenticate(ctx, raw)
		if err != nil {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			if service.IsUnauthorized(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr(err.Error()))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("Authentication failed", err))
			return
		}

		rootSpan := trace.SpanFromContext(c.Request.Context())
		if rootSpan.SpanContext().IsValid() {
			rootSpan.SetAttributes(attribute.String("user_id", user.ID.String()))
		}
		authSpan.SetAttributes(
			attribute.String("user_id", user.ID.String()),
			attribute.Bool("authenticated", true),
		)
		authSpan.End()

		c.Set(UserKey, user)
		c.Next()
	}
}

var errNoUser = errors.New("no authenticated user in context")

// CurrentUser returns the caller set by UserAuth.
func CurrentUser(c *gin.Context) (*model.User, error) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, errNoUser
	}
	u, ok := v.(*model.User)
	if !ok || u == nil {
		return nil, errNoUser
	}
	return u, nil
}
