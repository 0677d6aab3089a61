package commands

import (
	"context"

	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/hltcoe/turkle-client/pkg/turkle"
	"github.com/spf13/cobra"
)

type groupsRetrieveOptions struct {
	ID   int
	Name string
}

type groupsAddUsersOptions struct {
	ID    int
	File  string
	Users []int
}

// NewGroupsCommand creates the groups command group.
func NewGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List, create groups or add users to a group",
		Long:  "List, retrieve and create Turkle groups and manage their membership",
	}

	cmd.AddCommand(newGroupsListCommand())
	cmd.AddCommand(newGroupsRetrieveCommand())
	cmd.AddCommand(newGroupsCreateCommand())
	cmd.AddCommand(newGroupsAddUsersCommand())

	return cmd
}

func newGroupsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all groups as jsonl",
		Args:  cobra.NoArgs,
		RunE:  runWith(listGroups),
	}
}

func newGroupsRetrieveCommand() *cobra.Command {
	opts := &groupsRetrieveOptions{}

	cmd := &cobra.Command{
		Use:   "retrieve",
		Short: "Retrieve a group selected by name or integer identifier",
		Long:  "Retrieve a group by id, or every group with the given name",
		Args:  cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return retrieveGroup(ctx, r, opts)
		}),
	}

	cmd.Flags().IntVar(&opts.ID, "id", 0, "group id")
	cmd.Flags().StringVar(&opts.Name, "name", "", "group name")

	return cmd
}

func newGroupsCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create new groups",
		Long:  "Create one group per line of a jsonl file",
		Args:  cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return createGroups(ctx, r, file)
		}),
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "jsonl file of groups")

	return cmd
}

func newGroupsAddUsersCommand() *cobra.Command {
	opts := &groupsAddUsersOptions{}

	cmd := &cobra.Command{
		Use:   "addusers",
		Short: "Add users to an existing group",
		Long: `Add users to an existing group. The user ids come from --users or from a
JSON file of the form {"users": [5, 6]}.`,
		Example: "  turkle groups addusers --id 2 --users 5,6\n  turkle groups addusers --id 2 --file users.json",
		Args:    cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return addGroupUsers(ctx, r, opts)
		}),
	}

	cmd.Flags().IntVar(&opts.ID, "id", 0, "group id")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", `JSON file with a "users" list`)
	cmd.Flags().IntSliceVar(&opts.Users, "users", nil, "comma separated user ids")

	return cmd
}

func listGroups(ctx context.Context, r *runner) error {
	text, err := r.client.Groups().List(ctx)
	if err != nil {
		return err
	}

	return r.render(text)
}

func retrieveGroup(ctx context.Context, r *runner, opts *groupsRetrieveOptions) error {
	if opts.ID == 0 && opts.Name == "" {
		return constants.ErrSelectorRequired
	}

	text, err := r.client.Groups().Retrieve(ctx, &turkle.GroupRetrieveParams{
		ID:   opts.ID,
		Name: opts.Name,
	})
	if err != nil {
		return err
	}

	return r.render(text)
}

func createGroups(ctx context.Context, r *runner, file string) error {
	if file == "" {
		return constants.ErrFileRequired
	}

	groups, err := readJSONLines[turkle.GroupCreateRequest](r.fs, file)
	if err != nil {
		return err
	}

	text, err := r.client.Groups().Create(ctx, groups)
	if err != nil {
		return err
	}

	r.report("%s created", plural(len(groups), "group", "groups"))

	return r.render(text)
}

func addGroupUsers(ctx context.Context, r *runner, opts *groupsAddUsersOptions) error {
	if opts.ID == 0 {
		return constants.ErrIDRequired
	}

	userIDs := opts.Users

	if opts.File != "" {
		var request turkle.GroupAddUsersRequest

		err := readJSONFile(r.fs, opts.File, &request)
		if err != nil {
			return err
		}

		userIDs = request.Users
	}

	if len(userIDs) == 0 {
		return constants.ErrUsersRequired
	}

	text, err := r.client.Groups().AddUsers(ctx, opts.ID, userIDs)
	if err != nil {
		return err
	}

	r.report("%s added to the group", plural(len(userIDs), "user", "users"))

	return r.render(text)
}
