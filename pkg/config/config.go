package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/byxorna/doclib/pkg/db"
	v1 "github.com/byxorna/doclib/pkg/types/v1"
	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. DOCLIB_LIBRARY
	EnvPrefix = "DOCLIB"

	DefaultPath = "~/.doclib.yaml"

	AuthNone              = "none"
	AuthBearer            = "bearer"
	AuthClientCredentials = "clientcredentials"

	ActionNotice    = "notice"
	ActionClipboard = "clipboard"
	ActionCommand   = "command"
)

var (
	// Default is the configuration used for anything ~/.doclib.yaml leaves out
	Default = Config{
		Site:       "https://localhost/",
		Title:      "Document Library",
		Library:    v1.DefaultCollection.String(),
		Timeout:    30 * time.Second,
		DateFormat: db.DefaultDateLayout,
		Auth:       Auth{Mode: AuthNone},
		CustomAction: CustomAction{
			Kind:  ActionNotice,
			Label: "Custom Action",
		},
	}

	ErrMissingActionCommand = fmt.Errorf("customAction.command is required when customAction.kind is %q", ActionCommand)
	ErrMissingCredentials   = fmt.Errorf("auth.clientID, auth.clientSecret and auth.tenantID (or auth.tokenURL) are required for %q", AuthClientCredentials)
)

type Config struct {
	Site         string        `yaml:"site" mapstructure:"site" validate:"required,url"`
	Title        string        `yaml:"title" mapstructure:"title" validate:""`
	Description  string        `yaml:"description,omitempty" mapstructure:"description" validate:""`
	Library      string        `yaml:"library" mapstructure:"library" validate:""`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	DateFormat   string        `yaml:"dateFormat" mapstructure:"dateFormat" validate:"required"`
	Timezone     string        `yaml:"timezone,omitempty" mapstructure:"timezone" validate:""`
	Debug        bool          `yaml:"debug,omitempty" mapstructure:"debug" validate:""`
	Auth         Auth          `yaml:"auth" mapstructure:"auth" validate:""`
	CustomAction CustomAction  `yaml:"customAction" mapstructure:"customAction" validate:""`
}

// Auth configures how requests to the site are authorized
type Auth struct {
	Mode         string   `yaml:"mode" mapstructure:"mode" validate:"oneof=none bearer clientcredentials"`
	Token        string   `yaml:"token,omitempty" mapstructure:"token" validate:""`
	TokenFile    string   `yaml:"tokenFile,omitempty" mapstructure:"tokenFile" validate:""`
	TenantID     string   `yaml:"tenantID,omitempty" mapstructure:"tenantID" validate:""`
	ClientID     string   `yaml:"clientID,omitempty" mapstructure:"clientID" validate:""`
	ClientSecret string   `yaml:"clientSecret,omitempty" mapstructure:"clientSecret" validate:""`
	TokenURL     string   `yaml:"tokenURL,omitempty" mapstructure:"tokenURL" validate:"omitempty,url"`
	Scopes       []string `yaml:"scopes,omitempty,flow" mapstructure:"scopes" validate:"unique"`
}

// CustomAction configures the host supplied action offered in the toolbar
// and in every row's menu
type CustomAction struct {
	Kind    string   `yaml:"kind" mapstructure:"kind" validate:"oneof=notice clipboard command"`
	Label   string   `yaml:"label" mapstructure:"label" validate:"required"`
	Command []string `yaml:"command,omitempty,flow" mapstructure:"command" validate:""`
}

// Collection is the configured collection, defaulted.
func (c *Config) Collection() v1.CollectionTarget {
	return v1.CollectionTarget(c.Library).OrDefault()
}

// Location is the time zone dates are displayed in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Normalizer formats documents the way this configuration asks for.
func (c *Config) Normalizer() (db.Normalizer, error) {
	loc, err := c.Location()
	if err != nil {
		return db.Normalizer{}, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return db.Normalizer{Location: loc, DateLayout: c.DateFormat}, nil
}

// LocalDirectory is the directory a file:// site points at.
func (c *Config) LocalDirectory() string {
	return strings.TrimPrefix(c.Site, "file://")
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(*c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	if c.CustomAction.Kind == ActionCommand && len(c.CustomAction.Command) == 0 {
		return ErrMissingActionCommand
	}
	if c.Auth.Mode == AuthClientCredentials {
		if c.Auth.ClientID == "" || c.Auth.ClientSecret == "" || (c.Auth.TenantID == "" && c.Auth.TokenURL == "") {
			return ErrMissingCredentials
		}
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config validation error: invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// NewFromReader reads a YAML configuration on top of Default.
func NewFromReader(r io.Reader) (*Config, error) {
	c := Default

	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read Config: %w", err)
	}
	err = yaml.Unmarshal(bytes, &c)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal Config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Source layers defaults < config file < environment. The file is optional.
type Source struct {
	v    *viper.Viper
	path string
}

func NewSource(path string) (*Source, error) {
	if path == "" {
		path = DefaultPath
	}
	expandedPath, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default)

	v.SetConfigFile(expandedPath)
	v.SetConfigType("yaml")
	return &Source{v: v, path: expandedPath}, nil
}

// setDefaults registers every key so environment overrides are seen even
// when the file does not mention them.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("site", d.Site)
	v.SetDefault("title", d.Title)
	v.SetDefault("description", d.Description)
	v.SetDefault("library", d.Library)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("dateFormat", d.DateFormat)
	v.SetDefault("timezone", d.Timezone)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("auth.mode", d.Auth.Mode)
	v.SetDefault("auth.token", d.Auth.Token)
	v.SetDefault("auth.tokenFile", d.Auth.TokenFile)
	v.SetDefault("auth.tenantID", d.Auth.TenantID)
	v.SetDefault("auth.clientID", d.Auth.ClientID)
	v.SetDefault("auth.clientSecret", d.Auth.ClientSecret)
	v.SetDefault("auth.tokenURL", d.Auth.TokenURL)
	v.SetDefault("auth.scopes", d.Auth.Scopes)
	v.SetDefault("customAction.kind", d.CustomAction.Kind)
	v.SetDefault("customAction.label", d.CustomAction.Label)
	v.SetDefault("customAction.command", d.CustomAction.Command)
}

// Path is the expanded configuration file path.
func (s *Source) Path() string { return s.path }

// Exists reports whether the configuration file is present.
func (s *Source) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads and validates the configuration.
func (s *Source) Load() (*Config, error) {
	if s.Exists() {
		if err := s.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read %s: %w", s.path, err)
		}
	}

	var c Config
	if err := s.v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal Config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Watch calls onChange with the reloaded configuration every time the file
// is written. It is a no-op when the file does not exist.
func (s *Source) Watch(onChange func(*Config, error)) {
	if !s.Exists() {
		return
	}
	s.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(s.Load())
	})
	s.v.WatchConfig()
}

// Save writes c as YAML to path, refusing to clobber an existing file unless
// force is set.
func Save(c *Config, path string, force bool) error {
	expandedPath, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	if !force {
		if _, err := os.Stat(expandedPath); err == nil {
			return fmt.Errorf("%s: %w", expandedPath, fs.ErrExist)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(expandedPath), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(expandedPath, b, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
