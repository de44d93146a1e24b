package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

var ErrInvalidGoogleToken = errors.New("invalid google id token")

// GoogleIdentity is the verified part of a Google ID token.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

// TokenInfoVerifier checks ID tokens against Google's tokeninfo endpoint.
type TokenInfoVerifier struct {
	clientID string
	endpoint string
	client   *http.Client
}

func NewTokenInfoVerifier(clientID string) *TokenInfoVerifier {
	return &TokenInfoVerifier{
		clientID: clientID,
		endpoint: googleTokenInfoURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// WithEndpoint points the verifier at another tokeninfo URL.
func (v *TokenInfoVerifier) WithEndpoint(endpoint string) *TokenInfoVerifier {
	v.endpoint = endpoint
	return v
}

type tokenInfo struct {
	Iss           string `json:"iss"`
	Aud           string `json:"aud"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
}

func (v *TokenInfoVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	if v.clientID == "" {
		return nil, fmt.Errorf("%w: google sign-in is not configured", ErrInvalidGoogleToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint+"?id_token="+url.QueryEscape(idToken), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tokeninfo status %d", ErrInvalidGoogleToken, resp.StatusCode)
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoogleToken, err)
	}

	switch {
	case info.Aud != v.clientID:
		return nil, fmt.Errorf("%w: audience mismatch", ErrInvalidGoogleToken)
	case info.Iss != "accounts.google.com" && info.Iss != "https://accounts.google.com":
		return nil, fmt.Errorf("%w: issuer %q", ErrInvalidGoogleToken, info.Iss)
	case info.Email == "" || info.EmailVerified != "true":
		return nil, fmt.Errorf("%w: email not verified", ErrInvalidGoogleToken)
	}

	name := info.Name
	if name == "" {
		name = info.Email
	}
	return &GoogleIdentity{Subject: info.Sub, Email: info.Email, Name: name}, nil
}
