package jwtx_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/aussiebroadwan/ageverif/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func rsaKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	pub := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return priv, string(pub)
}

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestNewVerifierEmptyKey(t *testing.T) {
	require.Nil(t, jwtx.NewVerifier(""))
}

func TestRS256Verify(t *testing.T) {
	priv, pub := rsaKeyPair(t)
	_, otherPub := rsaKeyPair(t)

	token := sign(t, jwt.SigningMethodRS256, priv, jwt.MapClaims{"jti": "user-1", "age": 18})

	t.Run("matching key", func(t *testing.T) {
		d, err := jwtx.NewVerifier(pub).Verify(token)
		require.NoError(t, err)
		require.Equal(t, "user-1", d.Payload["jti"])
	})

	t.Run("other key", func(t *testing.T) {
		_, err := jwtx.NewVerifier(otherPub).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		forged := sign(t, jwt.SigningMethodHS256, []byte("x"), jwt.MapClaims{"jti": "user-2", "age": 18})
		parts[1] = strings.Split(forged, ".")[1]

		_, err := jwtx.NewVerifier(pub).Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("pkcs1 public key", func(t *testing.T) {
		pkcs1 := pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PUBLIC KEY",
			Bytes: x509.MarshalPKCS1PublicKey(&priv.PublicKey),
		})
		_, err := jwtx.NewVerifier(string(pkcs1)).Verify(token)
		require.NoError(t, err)
	})

	t.Run("garbage key", func(t *testing.T) {
		_, err := jwtx.NewVerifier("not a pem").Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidKey)
	})
}

func TestHS256Verify(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte("shared-secret"), jwt.MapClaims{"uid": "u"})

	_, err := jwtx.NewVerifier("shared-secret").Verify(token)
	require.NoError(t, err)

	_, err = jwtx.NewVerifier("wrong-secret").Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestUnsupportedAlgorithmsFailClosed(t *testing.T) {
	hs384 := sign(t, jwt.SigningMethodHS384, []byte("shared-secret"), jwt.MapClaims{"uid": "u"})
	none := sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"uid": "u"})

	for _, token := range []string{hs384, none} {
		_, err := jwtx.NewVerifier("shared-secret").Verify(token)
		require.ErrorIs(t, err, jwtx.ErrAlgUnsupported)
	}
}

func TestVerifyMalformed(t *testing.T) {
	_, err := jwtx.NewVerifier("k").Verify("a.b")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}
