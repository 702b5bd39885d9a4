package web_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-booking/internal/logger"
	"ms-booking/internal/web"
)

func newRenderer(t *testing.T, secret string) *web.Renderer {
	t.Helper()
	rn, err := web.NewRenderer(&logger.Logger{}, secret)
	require.NoError(t, err)
	return rn
}

func setCookie(t *testing.T, rn *web.Renderer, message string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	rn.SetFlash(rec, message)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestFlashRoundTrip(t *testing.T) {
	rn := newRenderer(t, "secret")

	cookie := setCookie(t, rn, "Venue Jazz House was successfully listed!")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	assert.Equal(t, "Venue Jazz House was successfully listed!", rn.PopFlash(rec, req))

	// Popping clears the cookie.
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestFlashTamperedSignatureIsDiscarded(t *testing.T) {
	rn := newRenderer(t, "secret")

	cookie := setCookie(t, rn, "original")
	payload, _, ok := strings.Cut(cookie.Value, ".")
	require.True(t, ok)
	cookie.Value = payload + "." + strings.Repeat("0", 64)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	assert.Empty(t, rn.PopFlash(httptest.NewRecorder(), req))
}

func TestFlashFromAnotherSecretIsDiscarded(t *testing.T) {
	cookie := setCookie(t, newRenderer(t, "old secret"), "stale message")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	assert.Empty(t, newRenderer(t, "new secret").PopFlash(httptest.NewRecorder(), req))
}

func TestNoFlashCookie(t *testing.T) {
	rn := newRenderer(t, "secret")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	assert.Empty(t, rn.PopFlash(rec, req))
	// No clearing cookie is written when there was nothing to pop.
	assert.Empty(t, rec.Result().Cookies())
}
