package types

import (
	"fmt"
	"maps"
)

// AuthorityOAuth2User is the authority granted to every principal that
// completed an OAuth2 login. Providers do not return roles on the UserInfo
// response, so this is the only authority a resolved identity carries.
const AuthorityOAuth2User = "OAUTH2_USER"

// RawAttributes holds the UserInfo response of a single retrieval, verbatim.
// Values are whatever the provider returned: scalars, arrays or nested
// objects. Attribute names are not standardized between providers.
type RawAttributes map[string]any

// Authority is a tag stating that the user authenticated via OAuth2. It
// carries the full raw attribute set as payload so downstream authorization
// code can inspect provider specific claims.
type Authority struct {
	Authority  string        `json:"authority"`
	Attributes RawAttributes `json:"-"`
}

// NewAuthority returns the authority synthesized for a successful OAuth2
// login.
func NewAuthority(attributes RawAttributes) Authority {
	return Authority{
		Authority:  AuthorityOAuth2User,
		Attributes: attributes,
	}
}

// UserIdentity is the provider-agnostic identity record built from a
// UserInfo response.
type UserIdentity struct {
	Authorities      []Authority   `json:"authorities"`
	Attributes       RawAttributes `json:"attributes"`
	NameAttributeKey string        `json:"nameAttributeKey"`
}

// NewUserIdentity assembles a UserIdentity. It performs no validation beyond
// copying the attribute map; the caller is responsible for passing a
// meaningful name attribute key.
func NewUserIdentity(authorities []Authority, attributes RawAttributes, nameAttributeKey string) UserIdentity {
	return UserIdentity{
		Authorities:      authorities,
		Attributes:       maps.Clone(attributes),
		NameAttributeKey: nameAttributeKey,
	}
}

// Name returns the value of the name attribute as string. It returns an
// empty string if the provider did not include the attribute in its
// response.
func (u UserIdentity) Name() string {
	value, ok := u.Attributes[u.NameAttributeKey]
	if !ok || value == nil {
		return ""
	}

	if name, ok := value.(string); ok {
		return name
	}

	return fmt.Sprint(value)
}
