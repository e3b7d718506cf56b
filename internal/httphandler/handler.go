package httphandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/authsrv/oauth2-userinfo/internal/config"
	"github.com/authsrv/oauth2-userinfo/internal/oauth2"
	"github.com/authsrv/oauth2-userinfo/internal/oauth2/types"
	xoauth2 "golang.org/x/oauth2"
)

// Handler bundles the resolver endpoints with their collaborators.
type Handler struct {
	logger        *slog.Logger
	userService   *oauth2.UserService
	registrations map[string]oauth2.ClientRegistration
	nameResolvers map[string]*oauth2.NameResolver
}

type identityResponse struct {
	Name string `json:"name"`
	types.UserIdentity
}

// New returns a ServeMux with all HTTP endpoints of the resolver listener.
//
// The handlers are mounted under the base path from conf.HTTP.BaseURL:
//   - GET  <basePath>/ready    readiness probe responding with "OK".
//   - POST <basePath>/resolve  resolves the identity behind a bearer token.
//
// All other paths respond with 404 via http.NotFoundHandler.
func New(
	logger *slog.Logger,
	conf config.Config,
	userService *oauth2.UserService,
	registrations map[string]oauth2.ClientRegistration,
	nameResolvers map[string]*oauth2.NameResolver,
) *http.ServeMux {
	handler := &Handler{
		logger:        logger,
		userService:   userService,
		registrations: registrations,
		nameResolvers: nameResolvers,
	}

	basePath := strings.TrimSuffix(conf.HTTP.BaseURL.Path, "/")

	mux := http.NewServeMux()
	if basePath != "" {
		mux.Handle("/", http.NotFoundHandler())
	}

	mux.Handle(fmt.Sprintf("GET %s/ready", basePath), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}))
	mux.Handle(fmt.Sprintf("POST %s/resolve", basePath), noCacheHeaders(http.HandlerFunc(handler.resolve)))

	return mux
}

// resolve loads the identity behind the bearer token of the request against
// the provider given in the "provider" query parameter.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := bearerToken(r)
	if !ok {
		http.Error(w, "missing bearer token", http.StatusBadRequest)

		return
	}

	providerName := r.URL.Query().Get("provider")

	registration, ok := h.registrations[providerName]
	if !ok {
		http.Error(w, "unknown provider: "+providerName, http.StatusNotFound)

		return
	}

	token := oauth2.Token{
		Kind:         oauth2.TokenKindOAuth2,
		Registration: registration,
		Token:        &xoauth2.Token{AccessToken: accessToken},
	}

	identity, err := h.userService.LoadUser(r.Context(), token)
	if err != nil {
		h.logger.LogAttrs(r.Context(), slog.LevelWarn, "unable to resolve identity",
			slog.String("provider", providerName),
			slog.Any("err", err),
		)

		if errors.Is(err, oauth2.ErrAuthentication) {
			http.Error(w, "authentication failed", http.StatusUnauthorized)
		} else {
			http.Error(w, "unable to resolve identity", http.StatusInternalServerError)
		}

		return
	}

	name := identity.Name()

	if resolver, ok := h.nameResolvers[providerName]; ok {
		name, err = resolver.Resolve(identity.Attributes)
		if err != nil {
			h.logger.LogAttrs(r.Context(), slog.LevelError, "unable to derive display name",
				slog.String("provider", providerName),
				slog.Any("err", err),
			)
			http.Error(w, "unable to derive display name", http.StatusInternalServerError)

			return
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err = json.NewEncoder(w).Encode(identityResponse{Name: name, UserIdentity: *identity}); err != nil {
		h.logger.LogAttrs(r.Context(), slog.LevelError, "error encoding response",
			slog.Any("err", err),
		)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authorization := r.Header.Get("Authorization")

	token, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || token == "" {
		return "", false
	}

	return token, true
}

func noCacheHeaders(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		h.ServeHTTP(w, r)
	})
}
