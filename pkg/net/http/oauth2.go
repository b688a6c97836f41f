package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/byxorna/doclib/pkg/config"
	"github.com/byxorna/doclib/pkg/runtime"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	// TokenURLTemplate is the Microsoft identity platform v2 token endpoint for a tenant
	TokenURLTemplate = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"

	ErrNoBearerToken = errors.New("auth.token or auth.tokenFile is required for bearer auth")
)

// NewClient builds an http client that authorizes requests to site the way
// auth asks. A nil error with mode none returns a plain client.
// A client in ctx under oauth2.HTTPClient is used as the base transport.
func NewClient(ctx context.Context, auth config.Auth, site string) (*http.Client, error) {
	switch auth.Mode {
	case "", config.AuthNone:
		if c, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok && c != nil {
			return c, nil
		}
		return &http.Client{}, nil
	case config.AuthBearer:
		tok, err := bearerToken(auth)
		if err != nil {
			return nil, err
		}
		return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"})), nil
	case config.AuthClientCredentials:
		cfg, err := ClientCredentialsConfig(auth, site)
		if err != nil {
			return nil, err
		}
		ts := cfg.TokenSource(ctx)
		if cacheFile, err := runtime.CacheFile(fmt.Sprintf("%s_token.json", auth.ClientID)); err != nil {
			log.Printf("not caching oauth token: %v", err)
		} else {
			ts = NewCachingTokenSource(cacheFile, ts)
		}
		return oauth2.NewClient(ctx, ts), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", auth.Mode)
	}
}

// ClientCredentialsConfig is the app-only grant for auth. Scopes default to
// the site's origin + "/.default".
func ClientCredentialsConfig(auth config.Auth, site string) (*clientcredentials.Config, error) {
	tokenURL := auth.TokenURL
	if tokenURL == "" {
		if auth.TenantID == "" {
			return nil, config.ErrMissingCredentials
		}
		tokenURL = fmt.Sprintf(TokenURLTemplate, url.PathEscape(auth.TenantID))
	}
	scopes := auth.Scopes
	if len(scopes) == 0 {
		u, err := url.Parse(site)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("unable to derive token scope from site %q", site)
		}
		scopes = []string{fmt.Sprintf("%s://%s/.default", u.Scheme, u.Host)}
	}
	return &clientcredentials.Config{
		ClientID:     auth.ClientID,
		ClientSecret: auth.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       scopes,
	}, nil
}

func bearerToken(auth config.Auth) (string, error) {
	if auth.Token != "" {
		return auth.Token, nil
	}
	if auth.TokenFile == "" {
		return "", ErrNoBearerToken
	}
	path, err := homedir.Expand(auth.TokenFile)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read token file: %w", err)
	}
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return "", fmt.Errorf("%s: %w", path, ErrNoBearerToken)
	}
	return tok, nil
}

// NewCachingTokenSource reuses the token stored in path while it is valid and
// stores every fresh token src hands out.
func NewCachingTokenSource(path string, src oauth2.TokenSource) oauth2.TokenSource {
	tok, err := TokenFromFile(path)
	if err != nil {
		tok = nil
	}
	return oauth2.ReuseTokenSource(tok, &savingTokenSource{path: path, src: src})
}

type savingTokenSource struct {
	path string
	src  oauth2.TokenSource
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if err := SaveToken(s.path, tok); err != nil {
		log.Printf("%v", err)
	}
	return tok, nil
}

// Retrieves a token from a local file.
func TokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// Saves a token to a file path.
func SaveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()
	log.Printf("caching token in %s\n", path)
	return json.NewEncoder(f).Encode(token)
}
