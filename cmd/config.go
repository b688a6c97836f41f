package cmd

import (
	"fmt"
	"strings"

	"github.com/byxorna/doclib/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or create the doclib configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := config.Default
		if flags.Site != "" {
			c.Site = flags.Site
		}
		if flags.Library != "" {
			c.Library = flags.Library
		}
		if err := config.Save(&c, flags.ConfigFile, configForce); err != nil {
			return fmt.Errorf("unable to write config (use --force to overwrite): %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", flags.ConfigFile)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		shown := *cfg
		shown.Auth.Token = mask(shown.Auth.Token)
		shown.Auth.ClientSecret = mask(shown.Auth.ClientSecret)
		b, err := yaml.Marshal(&shown)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing configuration file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	root.AddCommand(configCmd)
}
