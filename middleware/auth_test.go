package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dinu12141/CMMS-MADAMPE/config"
	"github.com/dinu12141/CMMS-MADAMPE/utils"
)

func authProbe(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seenUser string
	h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser, _ = r.Context().Value("userID").(string)
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seenUser
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	config.LoadConfig()
	h, _ := authProbe(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/auth/me", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("no header: got %d, want 401", rr.Code)
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("non-bearer scheme: got %d, want 401", rr.Code)
	}
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	config.LoadConfig()
	h, _ := authProbe(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rr.Code)
	}
}

func TestAuthMiddlewarePassesClaimsThrough(t *testing.T) {
	config.LoadConfig()
	h, seenUser := authProbe(t)

	token, err := utils.GenerateJWT("abc123", "tester", "Technician")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rr.Code)
	}
	if *seenUser != "abc123" {
		t.Errorf("userID on context = %q, want abc123", *seenUser)
	}
}
