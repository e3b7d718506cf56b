package config

import (
	"fmt"
	"slices"

	"github.com/authsrv/oauth2-userinfo/internal/config/types"
)

// Validate validates the config.
func Validate(conf Config) error {
	if err := validateLogConfig(conf); err != nil {
		return err
	}

	if err := validateHTTPConfig(conf); err != nil {
		return err
	}

	return validateOAuth2Config(conf)
}

func validateLogConfig(conf Config) error {
	if !slices.Contains([]string{"json", "console"}, conf.Log.Format) {
		return fmt.Errorf("%w: %s", ErrInvalidLogFormat, conf.Log.Format)
	}

	return nil
}

// validateHTTPConfig validates the HTTP configuration.
func validateHTTPConfig(conf Config) error {
	if conf.HTTP.Listen == "" {
		return fmt.Errorf("http.listen is %w", ErrRequired)
	}

	if conf.HTTP.BaseURL.IsEmpty() {
		return fmt.Errorf("http.baseurl is %w", ErrRequired)
	}

	if err := validateURL(conf.HTTP.BaseURL); err != nil {
		return fmt.Errorf("http.baseurl: %w", err)
	}

	if conf.HTTP.TLS && (conf.HTTP.CertFile == "" || conf.HTTP.KeyFile == "") {
		return ErrTLSKeyPairRequired
	}

	return nil
}

// validateOAuth2Config validates the provider configuration. The userinfo
// endpoint itself may stay empty here; it is discovered from the issuer at
// startup.
func validateOAuth2Config(conf Config) error {
	if len(conf.OAuth2.Providers) == 0 {
		return ErrNoProviders
	}

	seen := make(map[string]struct{}, len(conf.OAuth2.Providers))

	for _, provider := range conf.OAuth2.Providers {
		if provider.Name == "" {
			return fmt.Errorf("oauth2.providers[].name is %w", ErrRequired)
		}

		if _, ok := seen[provider.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateProvider, provider.Name)
		}

		seen[provider.Name] = struct{}{}

		if provider.UserInfoEndpoint.IsEmpty() && provider.Issuer.IsEmpty() {
			return fmt.Errorf("oauth2.providers[%s]: %w", provider.Name, ErrEndpointOrIssuer)
		}

		if !provider.UserInfoEndpoint.IsEmpty() {
			if err := validateURL(provider.UserInfoEndpoint); err != nil {
				return fmt.Errorf("oauth2.providers[%s].userinfo-endpoint: %w", provider.Name, err)
			}
		}

		if provider.UsernameAttribute == "" {
			return fmt.Errorf("oauth2.providers[%s]: %w", provider.Name, ErrNameAttributeRequired)
		}
	}

	return nil
}

func validateURL(u types.URL) error {
	if !slices.Contains([]string{"http", "https"}, u.Scheme) {
		return fmt.Errorf("%w: %s", ErrInvalidEndpointScheme, u.String())
	}

	return nil
}
