package commands

import (
	"context"

	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/hltcoe/turkle-client/pkg/turkle"
	"github.com/spf13/cobra"
)

type usersRetrieveOptions struct {
	ID       int
	Username string
}

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List, create, or update users",
		Long:  "List, retrieve, create and update Turkle user accounts",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersRetrieveCommand())
	cmd.AddCommand(newUsersCreateCommand())
	cmd.AddCommand(newUsersUpdateCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users as jsonl",
		Args:  cobra.NoArgs,
		RunE:  runWith(listUsers),
	}
}

func newUsersRetrieveCommand() *cobra.Command {
	opts := &usersRetrieveOptions{}

	cmd := &cobra.Command{
		Use:     "retrieve",
		Short:   "Retrieve a user selected by a username or integer identifier",
		Example: "  turkle users retrieve --id 3\n  turkle users retrieve --username alice",
		Args:    cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return retrieveUser(ctx, r, opts)
		}),
	}

	cmd.Flags().IntVar(&opts.ID, "id", 0, "user id")
	cmd.Flags().StringVar(&opts.Username, "username", "", "username")

	return cmd
}

func newUsersCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create new users",
		Long:  "Create one user per line of a jsonl file",
		Args:  cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return createUsers(ctx, r, file)
		}),
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "jsonl file of users")

	return cmd
}

func newUsersUpdateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update users",
		Long:  "Update one user per line of a jsonl file; every line must carry an id",
		Args:  cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return updateUsers(ctx, r, file)
		}),
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "jsonl file of user updates")

	return cmd
}

func listUsers(ctx context.Context, r *runner) error {
	text, err := r.client.Users().List(ctx)
	if err != nil {
		return err
	}

	return r.render(text)
}

func retrieveUser(ctx context.Context, r *runner, opts *usersRetrieveOptions) error {
	if opts.ID == 0 && opts.Username == "" {
		return constants.ErrSelectorRequired
	}

	text, err := r.client.Users().Retrieve(ctx, &turkle.UserRetrieveParams{
		ID:       opts.ID,
		Username: opts.Username,
	})
	if err != nil {
		return err
	}

	return r.render(text)
}

func createUsers(ctx context.Context, r *runner, file string) error {
	if file == "" {
		return constants.ErrFileRequired
	}

	users, err := readJSONLines[turkle.UserCreateRequest](r.fs, file)
	if err != nil {
		return err
	}

	text, err := r.client.Users().Create(ctx, users)
	if err != nil {
		return err
	}

	r.report("%s created", plural(len(users), "user", "users"))

	return r.render(text)
}

func updateUsers(ctx context.Context, r *runner, file string) error {
	if file == "" {
		return constants.ErrFileRequired
	}

	users, err := readJSONLines[turkle.UserUpdateRequest](r.fs, file)
	if err != nil {
		return err
	}

	text, err := r.client.Users().Update(ctx, users)
	if err != nil {
		return err
	}

	r.report("%s updated", plural(len(users), "user", "users"))

	return r.render(text)
}
