package jwtx_test

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/aussiebroadwan/ageverif/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func segment(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(b)
}

func TestDecodeRoundTrip(t *testing.T) {
	header := map[string]any{"alg": "RS256", "typ": "JWT"}
	payloads := []map[string]any{
		{"jti": "abc", "ass": "high", "age": float64(18)},
		{"uid": "u-1", "country": "GB", "countrySubdivision": "ENG", "expiresIn": float64(3600)},
		{"nested": map[string]any{"k": "v"}, "list": []any{"a", float64(1)}},
		{},
	}

	for _, payload := range payloads {
		token := segment(t, header) + "." + segment(t, payload) + ".c2ln"

		d, err := jwtx.Decode(token)
		require.NoError(t, err)
		require.Equal(t, header, d.Header)
		require.Equal(t, payload, d.Payload)
		require.Equal(t, "RS256", d.Alg())
		require.Equal(t, "c2ln", d.Signature)
	}
}

func TestDecodeUnknownAlgStillDecodes(t *testing.T) {
	token := segment(t, map[string]any{"alg": "XX999"}) + "." + segment(t, map[string]any{"uid": "1"}) + "."

	d, err := jwtx.Decode(token)
	require.NoError(t, err)
	require.Equal(t, "XX999", d.Alg())
	require.Equal(t, "1", d.Payload["uid"])
}

func TestDecodeRejectsMalformed(t *testing.T) {
	header := segment(t, map[string]any{"alg": "HS256"})
	payload := segment(t, map[string]any{"uid": "1"})

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"one segment", header},
		{"two segments", header + "." + payload},
		{"four segments", header + "." + payload + ".sig.extra"},
		{"header not base64", "!!!." + payload + ".sig"},
		{"payload not base64", header + ".***.sig"},
		{"header not json", base64.RawURLEncoding.EncodeToString([]byte("nope")) + "." + payload + ".sig"},
		{"payload not json", header + "." + base64.RawURLEncoding.EncodeToString([]byte("{")) + ".sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := jwtx.Decode(tt.token)
			require.Nil(t, d)
			require.ErrorIs(t, err, jwtx.ErrMalformed)

			var de *jwtx.DecodeError
			require.ErrorAs(t, err, &de)
		})
	}
}
