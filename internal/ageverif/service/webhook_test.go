package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/domain"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store/drivers/memory"
	"github.com/aussiebroadwan/ageverif/pkg/cryptox"
)

var webhookSecret = []byte("whsec_test")

func signedHeaders(body []byte) http.Header {
	h := http.Header{}
	h.Set(SignatureHeader, cryptox.SignHMACSHA256Hex(webhookSecret, body))
	return h
}

func TestWebhookValidSignature(t *testing.T) {
	st := memory.NewStore(10)
	s := &WebhookService{Secret: webhookSecret, Store: st}
	body := []byte(`{"id":"evt_1","type":"verification.completed","uid":"uid-1","customerGid":"gid://shopify/Customer/7"}`)

	event, err := s.Validate(context.Background(), body, signedHeaders(body))
	require.NoError(t, err)
	require.True(t, event.Signed)
	require.Equal(t, "evt_1", event.ID)
	require.Equal(t, "verification.completed", event.Type)

	rows, err := st.Attempts().ListAttemptsByCustomer(context.Background(), "gid://shopify/Customer/7", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, domain.SourceWebhook, rows[0].Source)
	require.Equal(t, "uid-1", rows[0].UID)
}

func TestWebhookSingleByteMutations(t *testing.T) {
	s := &WebhookService{Secret: webhookSecret}
	body := []byte(`{"event":"verification.completed","uid":"abc"}`)
	sig := cryptox.SignHMACSHA256Hex(webhookSecret, body)

	for i := range body {
		mutated := append([]byte(nil), body...)
		mutated[i] ^= 0x01

		h := http.Header{}
		h.Set(SignatureHeader, sig)
		_, err := s.Validate(context.Background(), mutated, h)
		require.Error(t, err, "body byte %d", i)
	}

	for i := range sig {
		mutated := []byte(sig)
		mutated[i] ^= 0x01

		h := http.Header{}
		h.Set(SignatureHeader, string(mutated))
		_, err := s.Validate(context.Background(), body, h)
		require.ErrorIs(t, err, ErrWebhookSignatureInvalid, "signature byte %d", i)
	}
}

func TestWebhookHeaderSpellings(t *testing.T) {
	s := &WebhookService{Secret: webhookSecret}
	body := []byte(`{"ok":true}`)
	sig := cryptox.SignHMACSHA256Hex(webhookSecret, body)

	for _, name := range []string{"X-AgeVerif-Signature", "x-ageverif-signature"} {
		// Raw map assignment keeps the non-canonical spelling.
		h := http.Header{name: []string{sig}}
		_, err := s.Validate(context.Background(), body, h)
		require.NoError(t, err, name)
	}
}

func TestWebhookRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid json fails before signature", func(t *testing.T) {
		s := &WebhookService{Secret: webhookSecret}
		body := []byte(`not json`)
		_, err := s.Validate(ctx, body, signedHeaders(body))
		require.ErrorIs(t, err, ErrWebhookInvalidJSON)
	})

	t.Run("json that is not an object", func(t *testing.T) {
		s := &WebhookService{}
		for _, body := range []string{`[]`, `"x"`, `null`, `3`} {
			_, err := s.Validate(ctx, []byte(body), http.Header{})
			require.ErrorIs(t, err, ErrWebhookInvalidJSON, body)
		}
	})

	t.Run("missing signature", func(t *testing.T) {
		s := &WebhookService{Secret: webhookSecret}
		_, err := s.Validate(ctx, []byte(`{}`), http.Header{})
		require.ErrorIs(t, err, ErrWebhookSignatureMissing)
	})

	t.Run("uppercase hex is rejected", func(t *testing.T) {
		s := &WebhookService{Secret: webhookSecret}
		body := []byte(`{"a":1}`)
		h := http.Header{}
		h.Set(SignatureHeader, "ABCDEF")
		_, err := s.Validate(ctx, body, h)
		require.ErrorIs(t, err, ErrWebhookSignatureInvalid)
	})
}

func TestWebhookWithoutSecret(t *testing.T) {
	ctx := context.Background()
	body := []byte(`{"type":"ping"}`)

	dev := &WebhookService{}
	event, err := dev.Validate(ctx, body, http.Header{})
	require.NoError(t, err)
	require.False(t, event.Signed)
	require.Equal(t, "ping", event.Type)

	prod := &WebhookService{Production: true}
	_, err = prod.Validate(ctx, body, http.Header{})
	require.ErrorIs(t, err, ErrWebhookNotConfigured)
}
