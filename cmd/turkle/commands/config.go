package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration.
type Config struct {
	URL   string `json:"url,omitempty"   yaml:"url,omitempty"`
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// DefaultConfigPath returns <user config dir>/turkle-client/config.json.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	return filepath.Join(dir, constants.ConfigDirName, constants.ConfigFileName), nil
}

// configPath returns the --config file if set, else the default location.
func configPath() (string, error) {
	if path := viper.GetString(constants.ConfigKeyConfig); path != "" {
		return path, nil
	}

	return DefaultConfigPath()
}

// loadConfig reads the config file at path. A missing file is an empty config.
func loadConfig(fsys afero.Fs, path string) (*Config, error) {
	config := &Config{}

	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return config, nil
	}

	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// saveConfig writes config to path, creating its directory.
func saveConfig(fsys afero.Fs, path string, config *Config) error {
	err := fsys.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = afero.WriteFile(fsys, path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setConfigValue updates one key of the config file at path.
func setConfigValue(fsys afero.Fs, path, key, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return constants.ErrEmptyConfigValue
	}

	config, err := loadConfig(fsys, path)
	if err != nil {
		return err
	}

	switch key {
	case constants.ConfigKeyURL:
		config.URL = value
	case constants.ConfigKeyToken:
		config.Token = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return saveConfig(fsys, path, config)
}

// maskToken hides all but the last four characters of a token.
func maskToken(token string) string {
	const visible = 4

	if token == "" {
		return ""
	}

	if len(token) <= visible {
		return constants.MaskedSecret
	}

	return constants.MaskedSecret + token[len(token)-visible:]
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Set the Turkle site URL and API token used by every other command",
	}

	cmd.AddCommand(newConfigURLCommand())
	cmd.AddCommand(newConfigTokenCommand())
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigURLCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "url URL",
		Short:   "Set the base URL for the Turkle site",
		Example: "  turkle config url http://localhost:8000/",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}

			err = setConfigValue(appFs, path, constants.ConfigKeyURL, args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "url set to %s\n", strings.TrimSpace(args[0]))

			return nil
		},
	}
}

func newConfigTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token [TOKEN]",
		Short: "Set the API token",
		Long:  "Set the API token. Without an argument the token is read from the terminal without echo.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				token string
				err   error
			)

			if len(args) == 1 {
				token = args[0]
			} else {
				token, err = promptToken(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			path, err := configPath()
			if err != nil {
				return err
			}

			err = setConfigValue(appFs, path, constants.ConfigKeyToken, token)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "token set to %s\n", maskToken(strings.TrimSpace(token)))

			return nil
		},
	}
}

// promptToken reads a token from the terminal on stdin without echo.
func promptToken(prompt io.Writer) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec

	if !term.IsTerminal(fd) {
		return "", constants.ErrNoTerminal
	}

	_, _ = fmt.Fprint(prompt, "Token: ")

	secret, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(prompt)

	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return string(secret), nil
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective url and token, with the token masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}

			config := &Config{
				URL:   viper.GetString(constants.ConfigKeyURL),
				Token: maskToken(viper.GetString(constants.ConfigKeyToken)),
			}

			return displayConfig(cmd.OutOrStdout(), config, path, viper.GetString(constants.ConfigKeyOutput))
		},
	}
}

func displayConfig(out io.Writer, config *Config, path, format string) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", defaultJSONIndent)

		return encoder.Encode(config)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)

		return encoder.Encode(config)
	default:
		table := tablewriter.NewWriter(out)
		table.Header("Property", "Value")
		_ = table.Append("Config File", path)
		_ = table.Append("URL", valueOrNA(config.URL))
		_ = table.Append("Token", valueOrNA(config.Token))

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

func valueOrNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
