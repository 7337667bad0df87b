package event

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/ewm-backend/middleware"
)

func TestPublicReadsRecordAuditedClientIP(t *testing.T) {
	f := newFixture()
	ev := f.submit(t)
	_, err := f.svc.Publish(context.Background(), ev.ID)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	// ClientIP falls back to RemoteAddr; the audit trail reads proxy headers
	require.NoError(t, r.SetTrustedProxies(nil))
	r.Use(middleware.AuditMiddleware())
	h := NewHandler(f.svc)
	r.GET("/events", h.SearchPublicEvents)
	r.GET("/events/:id", h.GetPublicEvent)

	for _, target := range []string{"/events/1", "/events"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	require.Equal(t, []string{"/events/1", "/events"}, f.stats.hits)
	require.Equal(t, []string{"203.0.113.9", "203.0.113.9"}, f.stats.ips)
}
