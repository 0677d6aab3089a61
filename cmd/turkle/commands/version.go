package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// VersionInfo describes the running build.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit"  yaml:"commit"`
	Built   string `json:"built"   yaml:"built"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the Turkle CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Version: version,
				Commit:  commit,
				Built:   date,
			}

			return displayVersion(cmd.OutOrStdout(), info, viper.GetString(constants.ConfigKeyOutput))
		},
	}
}

func displayVersion(out io.Writer, info VersionInfo, format string) error {
	switch format {
	case constants.FormatJSON, constants.FormatJSONL:
		encoder := json.NewEncoder(out)
		if format == constants.FormatJSON {
			encoder.SetIndent("", defaultJSONIndent)
		}

		return encoder.Encode(info)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)

		return encoder.Encode(info)
	default:
		table := tablewriter.NewWriter(out)
		table.Header("Property", "Value")
		_ = table.Append("Version", info.Version)
		_ = table.Append("Commit", info.Commit)
		_ = table.Append("Built", info.Built)

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}
