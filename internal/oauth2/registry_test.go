package oauth2_test

import (
	"testing"

	"github.com/authsrv/oauth2-userinfo/internal/oauth2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name           string
		nameAttributes map[string]string
		err            error
	}{
		{
			"single mapping",
			map[string]string{"https://idp.example/userinfo": "login"},
			nil,
		},
		{
			"multiple mappings",
			map[string]string{
				"https://idp.example/userinfo":   "login",
				"https://other.example/userinfo": "name",
			},
			nil,
		},
		{
			"empty mapping",
			map[string]string{},
			oauth2.ErrEmptyRegistry,
		},
		{
			"nil mapping",
			nil,
			oauth2.ErrEmptyRegistry,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			registry, err := oauth2.NewRegistry(tc.nameAttributes)

			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)

			for endpoint, nameAttribute := range tc.nameAttributes {
				got, ok := registry.Lookup(endpoint)
				require.True(t, ok)
				assert.Equal(t, nameAttribute, got)
			}
		})
	}
}

func TestRegistryLookupAbsent(t *testing.T) {
	t.Parallel()

	registry, err := oauth2.NewRegistry(map[string]string{"https://idp.example/userinfo": "login"})
	require.NoError(t, err)

	nameAttribute, ok := registry.Lookup("https://unknown.example/userinfo")
	assert.False(t, ok)
	assert.Empty(t, nameAttribute)
}

func TestRegistryImmutable(t *testing.T) {
	t.Parallel()

	nameAttributes := map[string]string{"https://idp.example/userinfo": "login"}

	registry, err := oauth2.NewRegistry(nameAttributes)
	require.NoError(t, err)

	nameAttributes["https://idp.example/userinfo"] = "changed"
	nameAttributes["https://late.example/userinfo"] = "late"

	got, ok := registry.Lookup("https://idp.example/userinfo")
	require.True(t, ok)
	assert.Equal(t, "login", got)

	_, ok = registry.Lookup("https://late.example/userinfo")
	assert.False(t, ok)
}
