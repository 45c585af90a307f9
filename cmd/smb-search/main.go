// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the smb-search CLI and web server.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/smb-search/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the smb-search CLI.
var rootCmd = &cobra.Command{
	Use:   "smb-search",
	Short: "Find small and medium-sized businesses by industry and location",
	Long: `smb-search builds lead lists of small and medium-sized businesses. Give it an
industry and a "City, ST" location and it asks a business-data provider for up
to 100 matching businesses with their website and phone number.

Run "smb-search serve" for the web form with CSV download, or
"smb-search search" to query from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./smb-search.yaml or ~/.config/smb-search/config.yaml)")
	flags.String("secrets-dir", ".secrets", "directory of provider key files")
	flags.String("provider", "", "business data provider: aggregator or places")
	flags.String("provider-url", "", "override the provider endpoint")
	flags.Duration("timeout", 0, "provider request timeout (default 20s)")

	viper.BindPFlag("provider.name", flags.Lookup("provider"))
	viper.BindPFlag("provider.base_url", flags.Lookup("provider-url"))
	viper.BindPFlag("provider.timeout", flags.Lookup("timeout"))

	setDefaults(viper.GetViper())
}

func initConfig() {
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment from .env")
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("smb-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "smb-search"))
		}
	}

	configureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
