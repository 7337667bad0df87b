package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request and tags it with the request id
// and client IP. RequestID must run first.
func Tracing(service string, tp trace.TracerProvider) gin.HandlersChain {
	return gin.HandlersChain{
		otelgin.Middleware(service, otelgin.WithTracerProvider(tp)),
		func(c *gin.Context) {
			if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
				span.SetAttributes(
					attribute.String("request.id", GetRequestID(c)),
					attribute.String("http.client_ip", c.ClientIP()),
				)
			}
			c.Next()
		},
	}
}

func traceID(c *gin.Context) string {
	sc := trace.SpanContextFromContext(c.Request.Context())
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}
