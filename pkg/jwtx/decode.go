package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Decoded is a compact JWS split into its parts. Nothing in it has been
// verified yet.
type Decoded struct {
	Header  map[string]any
	Payload map[string]any

	// SigningInput is the original "header.payload" text the signature covers.
	SigningInput string

	// Signature is the raw base64url third segment.
	Signature string
}

// DecodeError reports why a token could not be decoded.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jwtx: decode: %s: %v", e.Reason, e.Err)
	}
	return "jwtx: decode: " + e.Reason
}

func (e *DecodeError) Unwrap() []error { return []error{ErrMalformed, e.Err} }

// Decode splits a token into header and payload without checking the
// signature. It fails when the token does not have exactly three segments or
// when the header or payload is not base64url encoded JSON.
func Decode(token string) (*Decoded, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}

	tok, parts, err := parser.ParseUnverified(token, claims)
	if err != nil {
		// An unknown or missing alg only matters once we try to verify.
		if tok == nil || !errors.Is(err, jwt.ErrTokenUnverifiable) {
			return nil, &DecodeError{Reason: "malformed token", Err: err}
		}
	}

	return &Decoded{
		Header:       tok.Header,
		Payload:      claims,
		SigningInput: parts[0] + "." + parts[1],
		Signature:    parts[2],
	}, nil
}

// Alg returns the header "alg" value or "".
func (d *Decoded) Alg() string {
	alg, _ := d.Header["alg"].(string)
	return alg
}
