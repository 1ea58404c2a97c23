package jwtx

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Supported algorithms.
const (
	AlgRS256 = "RS256"
	AlgHS256 = "HS256"
)

var (
	ErrMalformed      = errors.New("jwtx: malformed token")
	ErrAlgUnsupported = errors.New("jwtx: unsupported algorithm")
	ErrInvalidSig     = errors.New("jwtx: invalid signature")
	ErrInvalidKey     = errors.New("jwtx: invalid verification key")
)

// Verifier checks RS256 or HS256 signatures against one configured key. The
// same key material serves both: a PEM public key for RS256, or the raw
// UTF-8 bytes as the HMAC secret for HS256.
type Verifier struct {
	key []byte

	rsaOnce sync.Once
	rsaKey  *rsa.PublicKey
	rsaErr  error
}

// NewVerifier returns a Verifier for key. It returns nil when key is empty so
// callers can use a nil Verifier as "verification not configured".
func NewVerifier(key string) *Verifier {
	if key == "" {
		return nil
	}
	return &Verifier{key: []byte(key)}
}

// Verify decodes token and checks its signature.
func (v *Verifier) Verify(token string) (*Decoded, error) {
	d, err := Decode(token)
	if err != nil {
		return nil, err
	}
	if err := v.VerifyDecoded(d); err != nil {
		return nil, err
	}
	return d, nil
}

// VerifyDecoded checks the signature of an already decoded token. Any
// algorithm other than RS256 and HS256 fails closed.
func (v *Verifier) VerifyDecoded(d *Decoded) error {
	sig, err := jwt.NewParser().DecodeSegment(d.Signature)
	if err != nil {
		return fmt.Errorf("%w: signature segment: %v", ErrInvalidSig, err)
	}

	switch alg := d.Alg(); alg {
	case AlgRS256:
		pub, err := v.rsaPublicKey()
		if err != nil {
			return err
		}
		if err := jwt.SigningMethodRS256.Verify(d.SigningInput, sig, pub); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSig, err)
		}
	case AlgHS256:
		if err := jwt.SigningMethodHS256.Verify(d.SigningInput, sig, v.key); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSig, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrAlgUnsupported, alg)
	}

	return nil
}

// rsaPublicKey parses the PEM once. PKIX, PKCS1 and certificates are accepted.
func (v *Verifier) rsaPublicKey() (*rsa.PublicKey, error) {
	v.rsaOnce.Do(func() {
		v.rsaKey, v.rsaErr = jwt.ParseRSAPublicKeyFromPEM(v.key)
	})
	if v.rsaErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, v.rsaErr)
	}
	return v.rsaKey, nil
}
