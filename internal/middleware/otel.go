package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Renishchandera/gameforge-ai/internal/telemetry"
)

// OtelTracing traces every request except health checks.
func OtelTracing(serviceName string) gin.HandlerFunc {
	return telemetry.GinMiddleware(serviceName, "/api", "/ai")
}

func TraceID() gin.HandlerFunc {
	return telemetry.TraceIDMiddleware()
}
