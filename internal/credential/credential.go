// Package credential extracts the caller's bearer credential from inbound requests.
package credential

import (
	"context"
	"net/http"
	"strings"
)

// HeaderAuthorization is the header carrying the bearer credential.
const HeaderAuthorization = "Authorization"

const bearerPrefix = "bearer "

// Credential is the opaque bearer token issued upstream at login.
// It is owned by the client session and never stored by the console.
type Credential struct {
	Token string
}

// Header returns the Authorization header value for the credential.
func (c Credential) Header() string {
	if c.Token == "" {
		return ""
	}
	return "Bearer " + c.Token
}

// BearerToken returns the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

// FromRequest extracts the bearer credential of an inbound request.
func FromRequest(r *http.Request) (Credential, bool) {
	if r == nil {
		return Credential{}, false
	}
	token, ok := BearerToken(r.Header.Get(HeaderAuthorization))
	if !ok {
		return Credential{}, false
	}
	return Credential{Token: token}, true
}

type contextKey struct{}

// ContextWith stores the credential in context.
func ContextWith(ctx context.Context, c Credential) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext extracts the credential from context.
func FromContext(ctx context.Context) (Credential, bool) {
	c, ok := ctx.Value(contextKey{}).(Credential)
	return c, ok && c.Token != ""
}
