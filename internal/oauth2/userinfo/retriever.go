// Package userinfo contains the default HTTP backed retriever for the
// provider's UserInfo endpoint.
package userinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/authsrv/oauth2-userinfo/internal/oauth2"
	"github.com/authsrv/oauth2-userinfo/internal/oauth2/types"
	"github.com/authsrv/oauth2-userinfo/internal/utils"
)

var ErrNoAccessToken = errors.New("token contains no access token")

// Retriever fetches userinfo attributes via HTTP GET with a bearer token.
// Timeouts are controlled by the supplied http.Client and the request
// context.
type Retriever struct {
	httpClient *http.Client
}

// NewRetriever returns a Retriever using the given http.Client. If
// httpClient is nil, http.DefaultClient is used.
func NewRetriever(httpClient *http.Client) *Retriever {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Retriever{httpClient: httpClient}
}

// Retrieve calls the UserInfo endpoint of the token's client registration
// and decodes the JSON response verbatim. It fails on network errors,
// non-200 responses and malformed payloads.
func (r *Retriever) Retrieve(ctx context.Context, token oauth2.Token) (types.RawAttributes, error) {
	if token.Token == nil || token.Token.AccessToken == "" {
		return nil, ErrNoAccessToken
	}

	endpoint := token.Registration.UserInfoEndpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request context with URL %s: %w", endpoint, err)
	}

	req.Header.Add("Authorization", utils.StringConcat("Bearer ", token.Token.AccessToken))
	req.Header.Add("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling userinfo endpoint %s: %w", endpoint, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read body from userinfo endpoint %s: http status code: %d; error: %w",
			endpoint, resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from userinfo endpoint %s: http status code: %d; message: %s",
			endpoint, resp.StatusCode, respBody)
	}

	var attributes types.RawAttributes

	if err = json.Unmarshal(respBody, &attributes); err != nil {
		return nil, fmt.Errorf("unable to decode JSON from userinfo endpoint %s: '%s': %w", endpoint, respBody, err)
	}

	return attributes, nil
}
