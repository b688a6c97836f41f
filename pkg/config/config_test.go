package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	v1 "github.com/byxorna/doclib/pkg/types/v1"
	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromReaderDefaults(t *testing.T) {
	c, err := NewFromReader(strings.NewReader("site: https://contoso.sharepoint.com/sites/Team\n"))
	require.NoError(t, err)

	want := Default
	want.Site = "https://contoso.sharepoint.com/sites/Team"
	if diff := pretty.Compare(want, *c); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
	assert.Equal(t, v1.DefaultCollection, c.Collection())
}

func TestNewFromReader(t *testing.T) {
	c, err := NewFromReader(strings.NewReader(`
site: https://contoso.sharepoint.com/sites/Team
title: Team Docs
library: Shared Documents
timeout: 5s
dateFormat: "2006-01-02"
timezone: UTC
auth:
  mode: bearer
  token: abc
customAction:
  kind: command
  label: Print
  command: [lpr]
`))
	require.NoError(t, err)
	assert.Equal(t, "Team Docs", c.Title)
	assert.Equal(t, v1.CollectionTarget("Shared Documents"), c.Collection())
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, []string{"lpr"}, c.CustomAction.Command)

	n, err := c.Normalizer()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, n.Location)
	assert.Equal(t, "2006-01-02", n.DateLayout)
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		mutate func(*Config)
		want   error
		fails  bool
	}{
		"default":         {mutate: func(*Config) {}},
		"missing site":    {mutate: func(c *Config) { c.Site = "" }, fails: true},
		"bad auth mode":   {mutate: func(c *Config) { c.Auth.Mode = "kerberos" }, fails: true},
		"bad action kind": {mutate: func(c *Config) { c.CustomAction.Kind = "launch" }, fails: true},
		"blank label":     {mutate: func(c *Config) { c.CustomAction.Label = "" }, fails: true},
		"negative timeout": {mutate: func(c *Config) { c.Timeout = -time.Second }, fails: true},
		"bad timezone":    {mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, fails: true},
		"command without argv": {
			mutate: func(c *Config) { c.CustomAction.Kind = ActionCommand },
			want:   ErrMissingActionCommand,
		},
		"client credentials without secret": {
			mutate: func(c *Config) { c.Auth = Auth{Mode: AuthClientCredentials, ClientID: "id", TenantID: "t"} },
			want:   ErrMissingCredentials,
		},
		"client credentials": {
			mutate: func(c *Config) {
				c.Auth = Auth{Mode: AuthClientCredentials, ClientID: "id", ClientSecret: "s", TenantID: "t"}
			},
		},
		"local site": {mutate: func(c *Config) { c.Site = "file:///tmp/dumps" }},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := Default
			tc.mutate(&c)
			err := c.Validate()
			switch {
			case tc.want != nil:
				assert.ErrorIs(t, err, tc.want)
			case tc.fails:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocalDirectory(t *testing.T) {
	c := Default
	c.Site = "file:///var/lib/doclib"
	assert.Equal(t, "/var/lib/doclib", c.LocalDirectory())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := NewSource(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.False(t, s.Exists())
	c, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Default.Library, c.Library)
	assert.Equal(t, Default.Timeout, c.Timeout)
	assert.Equal(t, Default.CustomAction.Kind, c.CustomAction.Kind)
	assert.Equal(t, Default.CustomAction.Label, c.CustomAction.Label)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doclib.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
site: https://contoso.sharepoint.com/sites/Team
library: Contracts
timeout: 10s
customAction:
  kind: clipboard
  label: Copy link
`), 0600))
	t.Setenv("DOCLIB_LIBRARY", "Invoices")

	s, err := NewSource(path)
	require.NoError(t, err)
	assert.True(t, s.Exists())
	c, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://contoso.sharepoint.com/sites/Team", c.Site)
	assert.Equal(t, "Invoices", c.Library)
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.Equal(t, ActionClipboard, c.CustomAction.Kind)
	assert.Equal(t, "Copy link", c.CustomAction.Label)
	assert.Equal(t, Default.DateFormat, c.DateFormat)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doclib.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth:\n  mode: kerberos\n"), 0600))
	s, err := NewSource(path)
	require.NoError(t, err)
	_, err = s.Load()
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doclib.yaml")
	c := Default
	c.Site = "https://contoso.sharepoint.com/sites/Team"
	c.Library = "Contracts"

	require.NoError(t, Save(&c, path, false))
	err := Save(&c, path, false)
	assert.ErrorIs(t, err, fs.ErrExist)
	require.NoError(t, Save(&c, path, true))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := NewFromReader(f)
	require.NoError(t, err)
	if diff := pretty.Compare(c, *got); diff != "" {
		t.Errorf("saved config differs (-want +got):\n%s", diff)
	}
}
