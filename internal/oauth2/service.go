package oauth2

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/authsrv/oauth2-userinfo/internal/oauth2/types"
)

// Retriever fetches the raw user attributes from the provider's UserInfo
// endpoint. Implementations own the wire exchange including cancellation and
// timeouts; any implementation honoring this contract can be injected into
// [UserService].
type Retriever interface {
	Retrieve(ctx context.Context, token Token) (types.RawAttributes, error)
}

// UserService resolves the identity of an authenticated end-user from the
// provider's UserInfo endpoint. It is stateless across calls; the registry
// is immutable and the retriever is fixed at construction.
type UserService struct {
	logger    *slog.Logger
	registry  Registry
	retriever Retriever
}

// NewUserService returns a UserService using the given registry and
// retriever.
func NewUserService(logger *slog.Logger, registry Registry, retriever Retriever) (*UserService, error) {
	if retriever == nil {
		return nil, ErrMissingRetriever
	}

	return &UserService{
		logger:    logger,
		registry:  registry,
		retriever: retriever,
	}, nil
}

// LoadUser resolves the end-user identity behind the given token.
//
// OIDC flavored tokens are not processed here; LoadUser returns (nil, nil)
// and the caller must route them to the OIDC flow. For plain OAuth2 tokens
// the UserInfo endpoint of the token's client registration must have a name
// attribute registered, otherwise LoadUser fails with
// [ErrMissingNameAttribute] naming the endpoint. Retrieval failures are
// wrapped into [ErrAuthentication]; the login attempt fails and no identity
// is produced.
//
// LoadUser does not verify that the registered name attribute is present in
// the retrieved attributes. A provider response without it yields an
// identity whose Name() is empty.
func (s *UserService) LoadUser(ctx context.Context, token Token) (*types.UserIdentity, error) {
	if token.Kind == TokenKindOIDC {
		return nil, nil //nolint:nilnil // delegation to the OIDC flow, not an error
	}

	userInfoEndpoint := token.Registration.UserInfoEndpoint

	nameAttribute, ok := s.registry.Lookup(userInfoEndpoint)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingNameAttribute, userInfoEndpoint)
	}

	attributes, err := s.retriever.Retrieve(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	s.logger.LogAttrs(ctx, slog.LevelDebug, "resolved userinfo attributes",
		slog.String("endpoint", userInfoEndpoint),
		slog.String("name_attribute", nameAttribute),
		slog.Int("attributes", len(attributes)),
	)

	authorities := []types.Authority{types.NewAuthority(attributes)}

	identity := types.NewUserIdentity(authorities, attributes, nameAttribute)

	return &identity, nil
}
