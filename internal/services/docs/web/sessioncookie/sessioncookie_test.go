package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/john129er/cms-project/internal/services/docs/web/requestmeta"
)

func TestReadTrimsAndRejectsEmpty(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := Read(req); ok {
		t.Fatal("expected no cookie")
	}
	req.AddCookie(&http.Cookie{Name: Name, Value: " token "})
	value, ok := Read(req)
	if !ok || value != "token" {
		t.Fatalf("Read = (%q, %v), want (token, true)", value, ok)
	}
	if _, ok := Read(nil); ok {
		t.Fatal("nil request must not have a cookie")
	}
}

func TestWriteWithPolicy(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	WriteWithPolicy(rr, req, "abc", time.Hour, requestmeta.SchemePolicy{TrustForwardedProto: true})

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != Name || cookie.Value != "abc" {
		t.Fatalf("cookie = %s=%s", cookie.Name, cookie.Value)
	}
	if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie flags = httponly:%v secure:%v samesite:%v", cookie.HttpOnly, cookie.Secure, cookie.SameSite)
	}
	if cookie.MaxAge != 3600 {
		t.Fatalf("MaxAge = %d, want 3600", cookie.MaxAge)
	}
}

func TestClearWithPolicy(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	ClearWithPolicy(rr, httptest.NewRequest(http.MethodGet, "/", nil), requestmeta.SchemePolicy{})
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookies = %+v, want one expired cookie", cookies)
	}
}
