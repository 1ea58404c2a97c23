package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/ageverif/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONSetsNoCache(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteJSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"id":"abc"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Token string `json:"token"`
	}

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"token":"x","extra":1}`))
		require.NoError(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &v))
		require.Equal(t, "x", v.Token)
	})

	t.Run("empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		require.Error(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &v))
	})

	t.Run("too large", func(t *testing.T) {
		body := `{"token":"` + strings.Repeat("a", httpx.MaxBodyBytes) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		require.Error(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &v))
	})
}
