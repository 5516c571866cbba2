package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func runSecured(t *testing.T, opt SecurityOptions, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeaders(opt))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	w := runSecured(t, SecurityOptions{}, nil)
	h := w.Header()
	if h.Get("X-Content-Type-Options") != "nosniff" ||
		h.Get("X-Frame-Options") != "DENY" ||
		h.Get("Referrer-Policy") != "no-referrer" {
		t.Fatalf("baseline headers missing: %+v", h)
	}
	if h.Get("Strict-Transport-Security") != "" {
		t.Fatal("HSTS must be off by default")
	}
}

func TestSecurityHeaders_Policy_And_NoStore(t *testing.T) {
	w := runSecured(t, SecurityOptions{EnablePolicy: true, NoStore: true}, nil)
	h := w.Header()
	if h.Get("Permissions-Policy") == "" || h.Get("X-Permitted-Cross-Domain-Policies") != "none" {
		t.Fatalf("policy headers missing: %+v", h)
	}
	if h.Get("Cache-Control") != "no-store" {
		t.Fatalf("no-store missing: %+v", h)
	}
}

func TestSecurityHeaders_HSTS_OnlyOverHTTPS(t *testing.T) {
	opt := SecurityOptions{EnableHSTS: true, HSTSMaxAge: 24 * time.Hour}

	plain := runSecured(t, opt, nil)
	if plain.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("HSTS must not be sent for plain HTTP")
	}

	proxied := runSecured(t, opt, func(r *http.Request) {
		r.Header.Set("X-Forwarded-Proto", "https")
	})
	got := proxied.Header().Get("Strict-Transport-Security")
	if !strings.Contains(got, "max-age=86400") {
		t.Fatalf("HSTS = %q", got)
	}
}
