package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/ewm-backend/internal/auditlog"
)

const clientIPKey = "client_ip"

// proxy headers checked in order; X-Forwarded-For may carry a chain
var clientIPHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// AuditMiddleware resolves the caller address once per request and makes it
// available to handlers and to the audit trail via the request context.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := resolveClientIP(c.Request.Header.Get, c.Request.RemoteAddr)
		c.Set(clientIPKey, ip)
		c.Request = c.Request.WithContext(auditlog.WithIP(c.Request.Context(), ip))
		c.Next()
	}
}

func resolveClientIP(header func(string) string, remoteAddr string) string {
	for _, name := range clientIPHeaders {
		first, _, _ := strings.Cut(header(name), ",")
		if candidate := strings.TrimSpace(first); net.ParseIP(candidate) != nil {
			return candidate
		}
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// GetIPFromContext returns the address stored by AuditMiddleware, resolving
// it on the fly when the middleware did not run.
func GetIPFromContext(c *gin.Context) string {
	if ip := c.GetString(clientIPKey); ip != "" {
		return ip
	}
	return resolveClientIP(c.Request.Header.Get, c.Request.RemoteAddr)
}
