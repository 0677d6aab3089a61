package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/hltcoe/turkle-client/cmd/turkle/commands"
	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/hltcoe/turkle-client/pkg/turkle"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "turkle",
	Short: "Turkle crowd-labeling API CLI",
	Long: `A command-line interface for the Turkle crowd-labeling REST API.

Collections are printed as jsonl, one object per line. Set the site and
token once with 'turkle config url' and 'turkle config token', or pass
--url/--token, or export TURKLE_URL/TURKLE_TOKEN.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default is <user config dir>/turkle-client/config.json)")
	rootCmd.PersistentFlags().StringP("url", "u", "", "base URL for the Turkle site")
	rootCmd.PersistentFlags().StringP("token", "t", "", "API token")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatJSONL, "output format (jsonl, json, yaml, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log requests and responses to stderr")

	// Bind flags to viper
	for _, key := range []string{
		constants.ConfigKeyConfig,
		constants.ConfigKeyURL,
		constants.ConfigKeyToken,
		constants.ConfigKeyOutput,
		constants.ConfigKeyVerbose,
	} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())

	for _, resource := range turkle.Resources() {
		rootCmd.AddCommand(commands.ResourceCommands[resource]())
	}
}

func initConfig() {
	cfgFile := viper.GetString(constants.ConfigKeyConfig)

	if cfgFile == "" {
		path, err := commands.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		cfgFile = path
	}

	viper.SetConfigFile(cfgFile)
	viper.SetConfigType("json")

	// Read in environment variables that match
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()

	err := viper.ReadInConfig()

	switch {
	case err == nil:
		if viper.GetBool(constants.ConfigKeyVerbose) {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	case errors.Is(err, fs.ErrNotExist):
		// No config file yet; flags and environment still apply.
	default:
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
