package config

import "errors"

var (
	ErrRequired              = errors.New("required")
	ErrNoProviders           = errors.New("oauth2.providers requires at least one provider")
	ErrDuplicateProvider     = errors.New("oauth2.providers contains duplicate provider name")
	ErrNameAttributeRequired = errors.New("username-attribute is required")
	ErrEndpointOrIssuer      = errors.New("either userinfo-endpoint or issuer is required")
	ErrInvalidLogFormat      = errors.New("log.format must be json or console")
	ErrTLSKeyPairRequired    = errors.New("http.tls requires http.cert and http.key")
	ErrInvalidEndpointScheme = errors.New("only http and https scheme are supported")
)
