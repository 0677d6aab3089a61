package commands

import (
	"context"

	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/hltcoe/turkle-client/pkg/turkle"
	"github.com/spf13/cobra"
)

// permissionsOptions selects a project (--pid) or batch (--bid) and, for
// add and replace, the users and groups to grant.
type permissionsOptions struct {
	ProjectID int
	BatchID   int
	File      string
	Users     []int
	Groups    []int
}

// instance resolves the flags to exactly one instance.
func (o *permissionsOptions) instance() (turkle.InstanceType, int, error) {
	switch {
	case o.ProjectID != 0 && o.BatchID != 0:
		return "", 0, constants.ErrInstanceAmbiguous
	case o.ProjectID != 0:
		return turkle.InstanceProject, o.ProjectID, nil
	case o.BatchID != 0:
		return turkle.InstanceBatch, o.BatchID, nil
	default:
		return "", 0, constants.ErrInstanceRequired
	}
}

// request builds the users/groups body from --file, else from the list flags.
func (o *permissionsOptions) request(r *runner) (*turkle.PermissionsRequest, error) {
	if o.File != "" {
		request := &turkle.PermissionsRequest{}

		err := readJSONFile(r.fs, o.File, request)
		if err != nil {
			return nil, err
		}

		return request, nil
	}

	if o.Users == nil && o.Groups == nil {
		return nil, constants.ErrACLRequired
	}

	return &turkle.PermissionsRequest{Users: o.Users, Groups: o.Groups}, nil
}

// NewPermissionsCommand creates the permissions command group.
func NewPermissionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Retrieve, add, or replace permissions",
		Long:  "Manage the users and groups allowed to work on a project or batch",
	}

	cmd.AddCommand(newPermissionsRetrieveCommand())
	cmd.AddCommand(newPermissionsChangeCommand("add",
		"Add users or groups to a project's or batch's permissions", addPermissions))
	cmd.AddCommand(newPermissionsChangeCommand("replace",
		"Replace a project's or batch's permissions", replacePermissions))

	return cmd
}

func bindInstanceFlags(cmd *cobra.Command, opts *permissionsOptions) {
	cmd.Flags().IntVar(&opts.ProjectID, "pid", 0, "project id")
	cmd.Flags().IntVar(&opts.BatchID, "bid", 0, "batch id")
	cmd.MarkFlagsMutuallyExclusive("pid", "bid")
}

func newPermissionsRetrieveCommand() *cobra.Command {
	opts := &permissionsOptions{}

	cmd := &cobra.Command{
		Use:   "retrieve",
		Short: "Retrieve permissions for a project or batch",
		Args:  cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return retrievePermissions(ctx, r, opts)
		}),
	}

	bindInstanceFlags(cmd, opts)

	return cmd
}

func newPermissionsChangeCommand(
	use, short string,
	run func(ctx context.Context, r *runner, opts *permissionsOptions) error,
) *cobra.Command {
	opts := &permissionsOptions{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `. The users and groups come from --users/--groups or from a
JSON file of the form {"users": [1], "groups": [2]}.`,
		Args: cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return run(ctx, r, opts)
		}),
	}

	bindInstanceFlags(cmd, opts)
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "JSON file with users and groups lists")
	cmd.Flags().IntSliceVar(&opts.Users, "users", nil, "comma separated user ids")
	cmd.Flags().IntSliceVar(&opts.Groups, "groups", nil, "comma separated group ids")

	return cmd
}

func retrievePermissions(ctx context.Context, r *runner, opts *permissionsOptions) error {
	instanceType, instanceID, err := opts.instance()
	if err != nil {
		return err
	}

	text, err := r.client.Permissions().Retrieve(ctx, instanceType, instanceID)
	if err != nil {
		return err
	}

	return r.render(text)
}

func addPermissions(ctx context.Context, r *runner, opts *permissionsOptions) error {
	instanceType, instanceID, err := opts.instance()
	if err != nil {
		return err
	}

	request, err := opts.request(r)
	if err != nil {
		return err
	}

	text, err := r.client.Permissions().Add(ctx, instanceType, instanceID, request)
	if err != nil {
		return err
	}

	return r.render(text)
}

func replacePermissions(ctx context.Context, r *runner, opts *permissionsOptions) error {
	instanceType, instanceID, err := opts.instance()
	if err != nil {
		return err
	}

	request, err := opts.request(r)
	if err != nil {
		return err
	}

	text, err := r.client.Permissions().Replace(ctx, instanceType, instanceID, request)
	if err != nil {
		return err
	}

	return r.render(text)
}
