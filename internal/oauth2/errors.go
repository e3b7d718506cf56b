package oauth2

import "errors"

var (
	ErrEmptyRegistry        = errors.New("at least one userinfo endpoint mapping is required")
	ErrMissingNameAttribute = errors.New("missing name attribute mapping for userinfo endpoint")
	ErrMissingRetriever     = errors.New("userinfo retriever is required")
	ErrAuthentication       = errors.New("authentication failed")
	ErrEndpointRequired     = errors.New("either an userinfo endpoint or an issuer is required")
	ErrDuplicateEndpoint    = errors.New("userinfo endpoint already registered by another provider")
)
