package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/allisson/modelgate/internal/httputil"
	"github.com/allisson/modelgate/internal/metrics"
	recordsUseCase "github.com/allisson/modelgate/internal/records/usecase"
)

// ResourceParam is the path parameter holding the resource name.
const ResourceParam = "resource"

// ResourceMiddleware resolves the :resource path parameter to its record store and
// attaches the store to the request context.
//
// It runs before authentication, so an unknown resource answers 404 invalid_model
// without credentials being checked.
func ResourceMiddleware(resolver recordsUseCase.StoreResolver, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param(ResourceParam)

		store, err := resolver.Resolve(name)
		if err != nil {
			logger.Debug("resource resolution failed", slog.String("resource", name))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Set(metrics.ResourceLabelKey, name)
		c.Request = c.Request.WithContext(WithStore(c.Request.Context(), store))
		c.Next()
	}
}
