// Command grammarctl is a command-line client for the grammar checking API.
//
// Server URL and token come from flags, GRAMMARCTL_SERVER / GRAMMARCTL_TOKEN,
// or ~/.grammarctl.yaml, in that order of precedence.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultServer = "http://localhost:8000"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "grammarctl",
		Short: "Check French text against a grammalecte-api server",
		Long: `grammarctl calls a running grammalecte-api server.

Examples:
  grammarctl check letter.txt          # Check a file
  echo "Il fait beaux." | grammarctl check
  grammarctl suggest bonjur            # Spelling suggestions
  grammarctl options -o yaml           # Engine options`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cfgFile); err != nil {
				return err
			}
			_, err := parseFormat(viper.GetString("output"))
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ~/.grammarctl.yaml)")
	flags.String("server", defaultServer, "server URL")
	flags.String("token", "", "API token")
	flags.StringP("output", "o", "text", "output format: text, json or yaml")
	flags.Duration("timeout", 0, "request timeout (default 30s)")

	for _, name := range []string{"server", "token", "output", "timeout"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newCheckCmd(),
		newSuggestCmd(),
		newHealthCmd(),
		newOptionsCmd(),
		newVersionCmd(),
	)
	return root
}

func loadConfig(cfgFile string) error {
	viper.SetEnvPrefix("GRAMMARCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		viper.SetConfigFile(filepath.Join(home, ".grammarctl.yaml"))
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || (cfgFile == "" && errors.Is(err, os.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func clientFromConfig() *apiClient {
	return newAPIClient(viper.GetString("server"), viper.GetString("token"), viper.GetDuration("timeout"))
}

func outputFormat() outputFmt {
	f, _ := parseFormat(viper.GetString("output"))
	return f
}
