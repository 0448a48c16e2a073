package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestAdminKeyMiddleware(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	call := func(secret, header string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/rc", nil)
		if header != "" {
			req.Header.Set("X-ADMIN-KEY", header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := AdminKey(secret)(next)(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec.Code
	}

	if code := call("secret", "secret"); code != http.StatusOK {
		t.Fatalf("matching key must pass, got %d", code)
	}
	if code := call("secret", "wrong"); code != http.StatusUnauthorized {
		t.Fatalf("wrong key must be rejected, got %d", code)
	}
	if code := call("secret", ""); code != http.StatusUnauthorized {
		t.Fatalf("missing header must be rejected, got %d", code)
	}
	// An empty configured secret locks writes instead of opening them.
	if code := call("", ""); code != http.StatusUnauthorized {
		t.Fatalf("blank secret must reject all writes, got %d", code)
	}
}
