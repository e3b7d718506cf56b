package userinfo_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/authsrv/oauth2-userinfo/internal/oauth2"
	"github.com/authsrv/oauth2-userinfo/internal/oauth2/types"
	"github.com/authsrv/oauth2-userinfo/internal/oauth2/userinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xoauth2 "golang.org/x/oauth2"
)

func newToken(userInfoEndpoint, accessToken string) oauth2.Token {
	token := oauth2.Token{
		Kind: oauth2.TokenKindOAuth2,
		Registration: oauth2.ClientRegistration{
			Name:             "test",
			UserInfoEndpoint: userInfoEndpoint,
		},
	}

	if accessToken != "" {
		token.Token = &xoauth2.Token{AccessToken: accessToken}
	}

	return token
}

func TestRetrieve(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sub":"u1","name":"Alice","groups":["admin"],"address":{"country":"DE"}}`))
	}))
	t.Cleanup(server.Close)

	retriever := userinfo.NewRetriever(server.Client())

	attributes, err := retriever.Retrieve(t.Context(), newToken(server.URL, "access-token"))
	require.NoError(t, err)

	assert.Equal(t, types.RawAttributes{
		"sub":     "u1",
		"name":    "Alice",
		"groups":  []any{"admin"},
		"address": map[string]any{"country": "DE"},
	}, attributes)
}

func TestRetrieveNonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid_token", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	retriever := userinfo.NewRetriever(server.Client())

	_, err := retriever.Retrieve(t.Context(), newToken(server.URL, "access-token"))
	require.ErrorContains(t, err, "http status code: 401")
	require.ErrorContains(t, err, "invalid_token")
}

func TestRetrieveMalformedPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not-json`))
	}))
	t.Cleanup(server.Close)

	retriever := userinfo.NewRetriever(server.Client())

	_, err := retriever.Retrieve(t.Context(), newToken(server.URL, "access-token"))
	require.ErrorContains(t, err, "unable to decode JSON")
}

type failingBody struct {
	closed bool
}

func (b *failingBody) Read([]byte) (int, error) {
	return 0, errors.New("read failure")
}

func (b *failingBody) Close() error {
	b.closed = true

	return nil
}

type staticResponseTransport struct {
	body io.ReadCloser
}

func (t *staticResponseTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return &http.Response{StatusCode: http.StatusOK, Body: t.body}, nil
}

func TestRetrieveClosesBodyOnReadError(t *testing.T) {
	t.Parallel()

	body := &failingBody{}
	retriever := userinfo.NewRetriever(&http.Client{Transport: &staticResponseTransport{body: body}})

	_, err := retriever.Retrieve(t.Context(), newToken("https://idp.example/userinfo", "access-token"))
	require.ErrorContains(t, err, "unable to read body")
	assert.True(t, body.closed)
}

func TestRetrieveNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	retriever := userinfo.NewRetriever(http.DefaultClient)

	_, err := retriever.Retrieve(t.Context(), newToken(server.URL, "access-token"))
	require.ErrorContains(t, err, "error calling userinfo endpoint")
}

func TestRetrieveWithoutAccessToken(t *testing.T) {
	t.Parallel()

	retriever := userinfo.NewRetriever(nil)

	_, err := retriever.Retrieve(t.Context(), newToken("https://idp.example/userinfo", ""))
	require.ErrorIs(t, err, userinfo.ErrNoAccessToken)
}
