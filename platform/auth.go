package platform

import (
	"context"
	"net/url"
)

type authAPI struct {
	client *Client
}

// NewAuthAPI creates the auth endpoint binding.
func NewAuthAPI(client *Client) AuthAPI {
	return &authAPI{client: client}
}

// Login posts form-encoded credentials. It runs unauthorized: there is no
// session yet, and a 401 here means bad credentials, not a stale token.
func (a *authAPI) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var result LoginResult
	if err := a.client.postForm(ctx, "/auth/login", form, false, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *authAPI) Logout(ctx context.Context) error {
	return a.client.postJSON(ctx, "/auth/logout", struct{}{}, nil)
}
