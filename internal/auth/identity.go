// Package auth defines the request-scoped identity value object. Both
// credential adapters (cookie session and bearer token) resolve the
// caller into an Identity and attach it to the request context; service
// operations receive it explicitly instead of reading ambient state.
package auth

import "github.com/labstack/echo/v4"

// contextKey is the echo context key under which middleware stores the
// resolved Identity.
const contextKey = "identidad"

// Identity describes the authenticated caller of a request. The zero
// value is an anonymous caller with no privileges.
type Identity struct {
	UsuarioID uint64 `json:"usuario_id"`
	Nombre    string `json:"nombre"`
	EsAdmin   bool   `json:"es_admin"`
}

// Anonymous reports whether the identity belongs to no logged-in user.
func (i Identity) Anonymous() bool { return i.UsuarioID == 0 }

// Store attaches the identity to the echo context.
func Store(c echo.Context, ident Identity) { c.Set(contextKey, ident) }

// FromContext retrieves the identity placed by an auth adapter. The
// second return value is false when no adapter ran for this request.
func FromContext(c echo.Context) (Identity, bool) {
	ident, ok := c.Get(contextKey).(Identity)
	return ident, ok
}
