package agesdk

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateSession(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/sessions", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateSessionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "#1001", req.OrderNumber)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sessionId":"abc","expiresAt":"2026-01-02T00:00:00Z"}`))
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL+"/").CreateSession(t.Context(), CreateSessionRequest{OrderNumber: "#1001"})
	require.NoError(t, err)
	require.Equal(t, "abc", out.SessionID)
	require.Equal(t, 2026, out.ExpiresAt.Year())
}

func TestAPIErrorsCompareByStatusAndCode(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrNotFound.WithDescription("order not found").WriteError(w)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Admin("secret").FindOrderByName(t.Context(), "#1001", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNotFound)
	require.False(t, errors.Is(err, ErrNotConfigured))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "order not found", apiErr.Description)
}

func TestAdminRequestsCarryBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth, gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"gid://shopify/Order/1","name":"#1001"}`))
	}))
	defer srv.Close()

	order, err := NewClient(srv.URL).Admin("secret").FindOrderByName(t.Context(), "#1001", "ULETWJUNV")
	require.NoError(t, err)
	require.Equal(t, "#1001", order.Name)
	require.Equal(t, "Bearer secret", gotAuth)
	require.Equal(t, "/v1/orders/%231001", gotPath)
	require.Equal(t, "confirmation_code=ULETWJUNV", gotQuery)
}

func TestUnstructuredErrorFallsBackToServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetLiveness(t.Context())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
}

func TestListAttemptsLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/customers/7/attempts", r.URL.Path)
		require.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"attempts":[{"id":"a1","outcome":"created","source":"persist"}]}`))
	}))
	defer srv.Close()

	attempts, err := NewClient(srv.URL).Admin("secret").ListAttempts(t.Context(), "7", 5)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	require.Equal(t, "a1", attempts[0].ID)
}

func TestRevealAttemptToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/customers/7/attempts/01J00000000000000000000001/token", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"attemptId":"01J00000000000000000000001","token":"raw"}`))
	}))
	defer srv.Close()

	token, err := NewClient(srv.URL).Admin("secret").RevealAttemptToken(t.Context(), "7", "01J00000000000000000000001")
	require.NoError(t, err)
	require.Equal(t, "raw", token)
}

func TestSendWebhookSignatureHeader(t *testing.T) {
	t.Parallel()

	var gotSig string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/webhooks/ageverif", r.URL.Path)
		gotSig = r.Header.Get("X-Ageverif-Signature")
		if gotSig == "" {
			ErrWebhookMissingSignature.WriteError(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"eventId":"evt_1","type":"verification.completed","signed":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.SendWebhook(t.Context(), []byte(`{}`), "")
	require.ErrorIs(t, err, ErrWebhookMissingSignature)
	require.Empty(t, gotSig)

	out, err := c.SendWebhook(t.Context(), []byte(`{"id":"evt_1"}`), "abcd")
	require.NoError(t, err)
	require.Equal(t, "abcd", gotSig)
	require.True(t, out.Signed)
	require.Equal(t, "evt_1", out.EventID)
}
