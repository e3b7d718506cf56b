package oauth2

import (
	"golang.org/x/oauth2"
)

// TokenKind discriminates the two token variants produced by the
// authorization code exchange. OIDC tokens are handled by a sibling flow and
// never resolved through the UserInfo endpoint here.
type TokenKind uint8

const (
	TokenKindOAuth2 TokenKind = iota
	TokenKindOIDC
)

// ClientRegistration is the provider registration a token was issued
// against. UserInfoEndpoint is the stable URI string used as registry lookup
// key.
type ClientRegistration struct {
	Name             string
	UserInfoEndpoint string
}

// Token is the authenticated client token handed over after the
// authorization code exchange.
type Token struct {
	Kind         TokenKind
	Registration ClientRegistration
	Token        *oauth2.Token
}
