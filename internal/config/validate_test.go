package config_test

import (
	"testing"

	"github.com/authsrv/oauth2-userinfo/internal/config"
	"github.com/authsrv/oauth2-userinfo/internal/config/types"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) config.Config {
	t.Helper()

	conf := config.Defaults
	conf.OAuth2.Providers = []config.Provider{
		{
			Name:              "corp",
			UserInfoEndpoint:  mustURL(t, "https://idp.example/userinfo"),
			UsernameAttribute: "login",
		},
	}

	return conf
}

func mustURL(t *testing.T, u string) types.URL {
	t.Helper()

	parsed, err := types.NewURL(u)
	require.NoError(t, err)

	return parsed
}

func TestValidate(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		conf func(t *testing.T) config.Config
		err  error
	}{
		{
			"valid",
			validConfig,
			nil,
		},
		{
			"valid with issuer only",
			func(t *testing.T) config.Config {
				t.Helper()

				conf := validConfig(t)
				conf.OAuth2.Providers[0].UserInfoEndpoint = types.URL{}
				conf.OAuth2.Providers[0].Issuer = mustURL(t, "https://idp.example")

				return conf
			},
			nil,
		},
		{
			"no providers",
			func(t *testing.T) config.Config {
				t.Helper()

				return config.Defaults
			},
			config.ErrNoProviders,
		},
		{
			"duplicate provider name",
			func(t *testing.T) config.Config {
				t.Helper()

				conf := validConfig(t)
				conf.OAuth2.Providers = append(conf.OAuth2.Providers, conf.OAuth2.Providers[0])

				return conf
			},
			config.ErrDuplicateProvider,
		},
		{
			"provider without name",
			func(t *testing.T) config.Config {
				t.Helper()

				conf := validConfig(t)
				conf.OAuth2.Providers[0].Name = ""

				return conf
			},
			config.ErrRequired,
		},
		{
			"provider without endpoint and issuer",
			func(t *testing.T) config.Config {
				t.Helper()

				conf := validConfig(t)
				conf.OAuth2.Providers[0].UserInfoEndpoint = types.URL{}

				return conf
			},
			config.ErrEndpointOrIssuer,
		},
		{
			"provider without username attribute",
			func(t *testing.T) config.Config {
				t.Helper()

				conf := validConfig(t)
				conf.OAuth2.Providers[0].UsernameAttribute = ""

				return conf
			},
			config.ErrNameAttributeRequired,
		},
		{
			"provider with invalid endpoint scheme",
			func(t *testing.T) config.Config {
				t.Helper()

				conf := validConfig(t)
				conf.OAuth2.Providers[0].UserInfoEndpoint = mustURL(t, "ftp://idp.example/userinfo")

				return conf
			},
			config.ErrInvalidEndpointScheme,
		},
		{
			"tls without keypair",
			func(t *testing.T) config.Config {
				t.Helper()

				conf := validConfig(t)
				conf.HTTP.TLS = true

				return conf
			},
			config.ErrTLSKeyPairRequired,
		},
		{
			"missing http listen",
			func(t *testing.T) config.Config {
				t.Helper()

				conf := validConfig(t)
				conf.HTTP.Listen = ""

				return conf
			},
			config.ErrRequired,
		},
		{
			"invalid log format",
			func(t *testing.T) config.Config {
				t.Helper()

				conf := validConfig(t)
				conf.Log.Format = "text"

				return conf
			},
			config.ErrInvalidLogFormat,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := config.Validate(tc.conf(t))

			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
		})
	}
}
