package oauth2

import (
	"maps"
)

// Registry maps an UserInfo endpoint URI to the attribute name that holds
// the user's name on that provider's UserInfo response. It is built once at
// startup and read-only afterwards, so lookups are safe for unrestricted
// concurrent use.
type Registry struct {
	nameAttributes map[string]string
}

// NewRegistry returns a Registry for the given endpoint to name attribute
// mapping. It fails with [ErrEmptyRegistry] if no mapping is supplied.
func NewRegistry(nameAttributes map[string]string) (Registry, error) {
	if len(nameAttributes) == 0 {
		return Registry{}, ErrEmptyRegistry
	}

	return Registry{nameAttributes: maps.Clone(nameAttributes)}, nil
}

// Lookup returns the name attribute registered for the given UserInfo
// endpoint URI. Lookups are exact-match on the URI string.
func (r Registry) Lookup(userInfoEndpoint string) (string, bool) {
	nameAttribute, ok := r.nameAttributes[userInfoEndpoint]

	return nameAttribute, ok
}
