package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newAdminRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", AdminAuth(secret), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuth(t *testing.T) {
	valid, err := IssueAdminToken(testSecret, "ops", time.Hour)
	require.NoError(t, err)

	expired, err := IssueAdminToken(testSecret, "ops", -time.Minute)
	require.NoError(t, err)

	wrongKey, err := IssueAdminToken("other-secret", "ops", time.Hour)
	require.NoError(t, err)

	userToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "42",
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid admin token", "Bearer " + valid, http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer token", "Basic abc", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"signed with another key", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"non-admin role", "Bearer " + userToken, http.StatusForbidden},
	}

	r := newAdminRouter(testSecret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			w := get(r, "/admin/ping", headers)
			require.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAdminAuthOpenWithoutSecret(t *testing.T) {
	w := get(newAdminRouter(""), "/admin/ping", nil)

	require.Equal(t, http.StatusNoContent, w.Code)

	_, err := IssueAdminToken("", "ops", time.Hour)
	require.Error(t, err)
}

func TestRequestIDKeepsValidIncomingID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	incoming := "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	w := get(r, "/", map[string]string{RequestIDHeader: incoming})
	require.Equal(t, incoming, w.Header().Get(RequestIDHeader))
	require.Equal(t, incoming, seen)

	w = get(r, "/", map[string]string{RequestIDHeader: "not-a-uuid"})
	require.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
	require.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestAuditMiddlewarePrefersForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuditMiddleware())
	var ip string
	r.GET("/", func(c *gin.Context) {
		ip = GetIPFromContext(c)
		c.Status(http.StatusOK)
	})

	get(r, "/", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"})
	require.Equal(t, "203.0.113.7", ip)

	get(r, "/", map[string]string{"X-Forwarded-For": "garbage", "X-Real-Ip": "198.51.100.2"})
	require.Equal(t, "198.51.100.2", ip)

	get(r, "/", nil)
	require.Equal(t, "192.0.2.1", ip)
}

func TestRecoveryRendersInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		panic("boom")
	})

	w := get(r, "/", nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "internal server error")
}

func TestRateLimiterRejectsOverBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(2, nil, zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, http.StatusOK, get(r, "/", nil).Code)
	require.Equal(t, http.StatusOK, get(r, "/", nil).Code)
	require.Equal(t, http.StatusTooManyRequests, get(r, "/", nil).Code)
}

func TestTracingRecordsServerSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	r := gin.New()
	r.Use(RequestID())
	r.Use(Tracing("ewm-main-service", tp)...)
	var id string
	r.GET("/events/:id", func(c *gin.Context) {
		id = traceID(c)
		c.Status(http.StatusOK)
	})

	requestID := "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	get(r, "/events/7", map[string]string{RequestIDHeader: requestID})

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.NotEmpty(t, id)
	require.Equal(t, id, spans[0].SpanContext().TraceID().String())

	var tagged bool
	for _, kv := range spans[0].Attributes() {
		if string(kv.Key) == "request.id" && kv.Value.AsString() == requestID {
			tagged = true
		}
	}
	require.True(t, tagged)
}
