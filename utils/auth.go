// utils/auth.go
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/nacl/secretbox"
)

var ErrSealedTokenInvalid = errors.New("sealed token is corrupt or was sealed with another secret")

func deviceKey(secret string) *[32]byte {
	key := sha256.Sum256([]byte(secret))
	return &key
}

// SealToken encrypts an auth token for device storage. The nonce is
// prepended to the box.
func SealToken(token, secret string) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	sealed := secretbox.Seal(nonce[:], []byte(token), &nonce, deviceKey(secret))
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenToken reverses SealToken.
func OpenToken(sealed, secret string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < 24 {
		return "", ErrSealedTokenInvalid
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	token, ok := secretbox.Open(nil, raw[24:], &nonce, deviceKey(secret))
	if !ok {
		return "", ErrSealedTokenInvalid
	}
	return string(token), nil
}

// TokenExpired reports whether a JWT-shaped auth token carries an exp claim
// in the past. Opaque tokens and tokens without exp are never expired here;
// the backend stays the authority.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
