package utils // package utils provides helper functions for hashing and token handling

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken represents a signed JWT access token along with its expiry.
// Access tokens are short-lived and sent in the Authorization header when
// calling the bearer-token variants of the API.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the expiration time
}

// AccessClaims is what the service cares about from a verified token:
// which user it was issued for and whether that user was an admin at
// issue time. The admin flag is re-checked against the user store on
// every request, the claim alone never grants access.
type AccessClaims struct {
	UsuarioID uint64
	EsAdmin   bool
}

var errInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user. Standard
// claims are sub (user id), es_admin, exp and iat.
func NewAccessToken(secret string, usuarioID uint64, esAdmin bool, ttlMin int) (AccessToken, error) {
	exp := time.Now().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":      usuarioID,
		"es_admin": esAdmin,
		"exp":      exp.Unix(),
		"iat":      time.Now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a raw token and
// extracts its claims. Only HMAC-signed tokens are accepted.
func ParseAccessToken(secret, raw string) (AccessClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return AccessClaims{}, errInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return AccessClaims{}, errInvalidToken
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return AccessClaims{}, errInvalidToken
	}
	esAdmin, _ := claims["es_admin"].(bool)
	return AccessClaims{UsuarioID: uint64(sub), EsAdmin: esAdmin}, nil
}

// RandomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data. It is used to produce session
// identifiers.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
