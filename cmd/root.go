package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cloudlane/idmclient/idm"
	"github.com/cloudlane/idmclient/rest"
)

// Config holds the CLI configuration
type Config struct {
	ManagementURL string
	Token         string
	ClientID      string
	ClientSecret  string
	TokenEndpoint string
	LogLevel      string
}

var (
	config  *Config
	rootCmd = &cobra.Command{
		Use:           "idmctl",
		Short:         "Identity management CLI",
		Long:          "Command line client for the identity management API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(config.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to parse log level: %w", err)
			}
			log.SetLevel(level)
			return nil
		},
	}
)

func init() {
	config = &Config{}

	rootCmd.PersistentFlags().StringVarP(&config.ManagementURL, "management-url", "m", "", "base URL of the identity management API (required)")
	rootCmd.PersistentFlags().StringVarP(&config.Token, "token", "t", "", "pre-issued API token")
	rootCmd.PersistentFlags().StringVar(&config.ClientID, "client-id", "", "OAuth2 client id for the client credentials flow")
	rootCmd.PersistentFlags().StringVar(&config.ClientSecret, "client-secret", "", "OAuth2 client secret for the client credentials flow")
	rootCmd.PersistentFlags().StringVar(&config.TokenEndpoint, "token-endpoint", "", "OAuth2 token endpoint for the client credentials flow")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(blockCmd)

	setFlagsFromEnvVars(rootCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// newAPIClient builds the manager facade from the CLI configuration.
func newAPIClient() (*idm.Client, error) {
	if config.ManagementURL == "" {
		return nil, fmt.Errorf("management-url is required")
	}

	clientConfig := &idm.Config{
		BaseURL: config.ManagementURL,
	}

	switch {
	case config.Token != "":
		clientConfig.Credentials = rest.StaticToken(config.Token)
	case config.ClientID != "":
		credentials, err := rest.NewClientCredentials(rest.ClientCredentialsConfig{
			ClientID:      config.ClientID,
			ClientSecret:  config.ClientSecret,
			TokenEndpoint: config.TokenEndpoint,
		}, nil, nil)
		if err != nil {
			return nil, err
		}
		clientConfig.Credentials = credentials
	}

	return idm.NewClient(clientConfig)
}
