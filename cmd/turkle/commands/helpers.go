package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/hltcoe/turkle-client/internal/logging"
	"github.com/hltcoe/turkle-client/pkg/turkle"
	"github.com/hltcoe/turkle-client/pkg/turkleclient"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// appFs backs every local file read and write done by the commands.
var appFs = afero.NewOsFs()

// SetFs replaces the filesystem used for config and payload files.
func SetFs(fs afero.Fs) {
	appFs = fs
	viper.SetFs(fs)
}

// runner carries what a resource command needs once flags are parsed.
type runner struct {
	client turkle.Client
	out    io.Writer
	errOut io.Writer
	format string
	fs     afero.Fs
}

// newRunner builds a runner from the viper settings bound to the root flags.
func newRunner(cmd *cobra.Command) (*runner, error) {
	client, err := CreateClient()
	if err != nil {
		return nil, err
	}

	return &runner{
		client: client,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		format: viper.GetString(constants.ConfigKeyOutput),
		fs:     appFs,
	}, nil
}

// CreateClient creates a Turkle client from the url and token settings.
// Flags win over TURKLE_* environment variables, which win over the config file.
func CreateClient() (turkle.Client, error) {
	baseURL := strings.TrimSpace(viper.GetString(constants.ConfigKeyURL))
	if baseURL == "" {
		return nil, constants.ErrURLNotSpecified
	}

	token := strings.TrimSpace(viper.GetString(constants.ConfigKeyToken))
	if token == "" {
		return nil, constants.ErrTokenNotSpecified
	}

	config := &turkle.Config{
		BaseURL: baseURL,
		Token:   token,
	}

	if viper.GetBool(constants.ConfigKeyVerbose) {
		config.Logger = logging.NewConsoleLogger(os.Stderr, zapcore.DebugLevel)
		config.Debug = true
	}

	client, err := turkleclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// contextOf returns the command context, falling back to Background.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// plural formats a count with the matching noun.
func plural(n int, single, multiple string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, single)
	}

	return fmt.Sprintf("%d %s", n, multiple)
}

// runWith wraps a runner method as a cobra RunE.
func runWith(fn func(ctx context.Context, r *runner) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		r, err := newRunner(cmd)
		if err != nil {
			return err
		}

		return fn(contextOf(cmd), r)
	}
}

// render writes JSON text returned by the client in the selected format.
func (r *runner) render(text string) error {
	return renderJSONText(r.out, text, r.format)
}

// report writes a one-line summary to stderr so stdout stays parseable.
func (r *runner) report(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errOut, format+constants.LineSeparator, args...)
}
