package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/byxorna/doclib/pkg/config"
	"github.com/byxorna/doclib/pkg/model"
	"github.com/byxorna/doclib/pkg/runtime"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flags = struct {
		ConfigFile string
		Library    string
		Site       string
		Debug      bool
	}{}

	root = &cobra.Command{
		Use:          "doclib",
		Short:        "doclib is a terminal viewer for SharePoint document libraries",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, cfg, err := loadConfig()
			if err != nil {
				return err
			}
			closeLog, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			s, err := newSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			d, err := s.dispatcher(cfg)
			if err != nil {
				return err
			}

			p := tea.NewProgram(model.New(cfg, d), tea.WithAltScreen())
			src.Watch(func(c *config.Config, err error) {
				if err != nil {
					log.Printf("ignoring config change: %v", err)
					return
				}
				if err := applyFlags(c); err != nil {
					log.Printf("ignoring config change: %v", err)
					return
				}
				p.Send(model.ReconfigureMsg{Config: c})
			})

			_, err = p.Run()
			return err
		},
	}
)

func init() {
	root.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", config.DefaultPath, "configuration file")
	root.PersistentFlags().StringVarP(&flags.Library, "library", "l", "", "document library to show (overrides config)")
	root.PersistentFlags().StringVarP(&flags.Site, "site", "s", "", "site URL, or file:// directory of JSON dumps (overrides config)")
	root.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "log to "+runtime.XDGName+"/debug.log in the XDG runtime dir")
}

// loadConfig layers flags over the configuration source.
func loadConfig() (*config.Source, *config.Config, error) {
	src, err := config.NewSource(flags.ConfigFile)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := src.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := applyFlags(cfg); err != nil {
		return nil, nil, err
	}
	return src, cfg, nil
}

func applyFlags(cfg *config.Config) error {
	if flags.Library != "" {
		cfg.Library = flags.Library
	}
	if flags.Site != "" {
		cfg.Site = flags.Site
	}
	if flags.Debug {
		cfg.Debug = true
	}
	return cfg.Validate()
}

// setupLogging silences log unless debugging, in which case it goes to a
// file so it does not fight with the terminal UI.
func setupLogging(cfg *config.Config) (func(), error) {
	if !cfg.Debug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	path, err := runtime.File("debug.log")
	if err != nil {
		return nil, fmt.Errorf("unable to determine debug log location: %w", err)
	}
	f, err := tea.LogToFile(path, "doclib")
	if err != nil {
		return nil, fmt.Errorf("unable to open debug log: %w", err)
	}
	return func() { f.Close() }, nil
}

func Execute() {
	err := root.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
