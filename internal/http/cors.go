package http

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const corsMaxAge = 12 * time.Hour

// createCORSMiddleware returns the CORS middleware for the configured origins, or nil
// when CORS is disabled or no usable origin remains. allowOrigins is a comma-separated
// list; "*" allows every origin.
//
// Credentials travel in the Authorization header, never in cookies, so
// Access-Control-Allow-Credentials is not sent.
func createCORSMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins, rejected := parseOrigins(allowOrigins)
	for _, origin := range rejected {
		logger.Warn("ignoring CORS origin without http or https scheme", slog.String("origin", origin))
	}
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no valid origins configured, CORS will not be applied")
		return nil
	}

	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"X-Request-Id", "Retry-After"},
		MaxAge:        corsMaxAge,
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))
	return cors.New(cfg)
}

// parseOrigins splits a comma-separated origin list. Blank entries are dropped and
// entries without an http(s) scheme are returned separately. A "*" entry wins over
// every other origin.
func parseOrigins(raw string) (origins, rejected []string) {
	for _, part := range strings.Split(raw, ",") {
		origin := strings.TrimSpace(part)
		switch {
		case origin == "":
		case origin == "*":
			return []string{"*"}, rejected
		case strings.HasPrefix(origin, "http://"), strings.HasPrefix(origin, "https://"):
			origins = append(origins, strings.TrimSuffix(origin, "/"))
		default:
			rejected = append(rejected, origin)
		}
	}
	return origins, rejected
}
