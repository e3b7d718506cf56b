package oauth2

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/authsrv/oauth2-userinfo/internal/config"
	"github.com/zitadel/logging"
	"github.com/zitadel/oidc/v3/pkg/client"
)

// DiscoverRegistrations resolves the UserInfo endpoint of every configured
// provider and returns the endpoint to name attribute mapping for the
// [Registry] together with the client registrations keyed by provider name.
//
// Providers without an explicit userinfo endpoint get it resolved from the
// issuer's OIDC discovery document. Discovery happens once at startup; a
// provider whose discovery document cannot be fetched is a startup error, as
// are two providers resolving to the same endpoint.
func DiscoverRegistrations(
	ctx context.Context, logger *slog.Logger, conf config.Config, httpClient *http.Client,
) (map[string]string, map[string]ClientRegistration, error) {
	ctx = logging.ToContext(ctx, logger)

	nameAttributes := make(map[string]string, len(conf.OAuth2.Providers))
	registrations := make(map[string]ClientRegistration, len(conf.OAuth2.Providers))

	for _, provider := range conf.OAuth2.Providers {
		endpoint := provider.UserInfoEndpoint.String()

		if endpoint == "" {
			if provider.Issuer.IsEmpty() {
				return nil, nil, fmt.Errorf("provider %s: %w", provider.Name, ErrEndpointRequired)
			}

			logger.LogAttrs(ctx, slog.LevelInfo, "discover userinfo endpoint from issuer",
				slog.String("provider", provider.Name),
				slog.String("issuer", provider.Issuer.String()),
			)

			discoveryConfig, err := client.Discover(ctx, provider.Issuer.String(), httpClient)
			if err != nil {
				return nil, nil, fmt.Errorf("provider %s: error discovering issuer %s: %w",
					provider.Name, provider.Issuer.String(), err)
			}

			endpoint = discoveryConfig.UserinfoEndpoint
			if endpoint == "" {
				return nil, nil, fmt.Errorf("provider %s: issuer %s does not advertise an userinfo endpoint: %w",
					provider.Name, provider.Issuer.String(), ErrEndpointRequired)
			}
		}

		// The registry is keyed by endpoint; a second provider on the same
		// endpoint would silently take over the name attribute.
		if _, ok := nameAttributes[endpoint]; ok {
			return nil, nil, fmt.Errorf("provider %s: %w: %s", provider.Name, ErrDuplicateEndpoint, endpoint)
		}

		nameAttributes[endpoint] = provider.UsernameAttribute
		registrations[provider.Name] = ClientRegistration{
			Name:             provider.Name,
			UserInfoEndpoint: endpoint,
		}
	}

	return nameAttributes, registrations, nil
}
