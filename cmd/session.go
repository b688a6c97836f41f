package cmd

import (
	"context"
	"fmt"

	"github.com/byxorna/doclib/pkg/app"
	"github.com/byxorna/doclib/pkg/config"
	"github.com/byxorna/doclib/pkg/db"
	"github.com/byxorna/doclib/pkg/db/fs"
	dhttp "github.com/byxorna/doclib/pkg/net/http"
	"github.com/byxorna/doclib/pkg/plugins"
	"github.com/byxorna/doclib/pkg/plugins/sharepoint"
)

// session is the backend and URL resolution for one configured site.
type session struct {
	backend db.Backend
	siteURL string
	resolve func(string) (string, error)

	// exactly one of these is set
	remote *sharepoint.Client
	local  *fs.Loader
}

func newSession(ctx context.Context, cfg *config.Config) (*session, error) {
	kind, err := plugins.TypeFor(cfg.Site)
	if err != nil {
		return nil, err
	}
	if kind == plugins.TypeLocal {
		loader, err := fs.New(cfg.LocalDirectory())
		if err != nil {
			return nil, fmt.Errorf("unable to open %s: %w", cfg.Site, err)
		}
		return &session{backend: loader, siteURL: cfg.Site, local: loader}, nil
	}

	httpClient, err := dhttp.NewClient(ctx, cfg.Auth, cfg.Site)
	if err != nil {
		return nil, fmt.Errorf("unable to set up %s auth: %w", cfg.Auth.Mode, err)
	}
	client, err := sharepoint.New(cfg.Site, httpClient)
	if err != nil {
		return nil, err
	}
	return &session{
		backend: client,
		siteURL: client.SiteURL(),
		resolve: client.ResolveURL,
		remote:  client,
	}, nil
}

func (s *session) dispatcher(cfg *config.Config) (*app.Dispatcher, error) {
	normalizer, err := cfg.Normalizer()
	if err != nil {
		return nil, err
	}
	action, err := app.NewAction(cfg.CustomAction, s.resolve, s.siteURL)
	if err != nil {
		return nil, err
	}
	return &app.Dispatcher{
		Backend:    s.backend,
		Normalizer: normalizer,
		Opener:     &app.BrowserOpener{Resolve: s.resolve},
		Action:     action,
		Timeout:    cfg.Timeout,
	}, nil
}
