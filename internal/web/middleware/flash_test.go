package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/pairings-web/internal/web/templates/layout"
)

func TestFlashRoundTrip(t *testing.T) {
	rr := httptest.NewRecorder()
	SetFlash(rr, FlashError, "Rounds must be at least 2; got 1")
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)

	var seen *layout.FlashMessage
	handler := Flash()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetFlash(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	out := httptest.NewRecorder()
	handler.ServeHTTP(out, req)

	require.NotNil(t, seen)
	assert.Equal(t, FlashError, seen.Type)
	assert.Equal(t, "Rounds must be at least 2; got 1", seen.Message)

	cleared := out.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestParseFlash(t *testing.T) {
	assert.Equal(t, &layout.FlashMessage{Type: FlashInfo, Message: "plain"}, parseFlash("plain"))
	assert.Equal(t, &layout.FlashMessage{Type: FlashInfo, Message: "odd"}, parseFlash("danger:odd"))
	assert.Equal(t, &layout.FlashMessage{Type: FlashSuccess, Message: "a:b"}, parseFlash("success%3Aa%3Ab"))
	assert.Nil(t, parseFlash("%zz"))
}

func TestNoFlash(t *testing.T) {
	var seen *layout.FlashMessage
	handler := Flash()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetFlash(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, seen)
}
