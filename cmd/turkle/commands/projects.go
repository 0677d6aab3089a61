package commands

import (
	"context"
	"path/filepath"

	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/hltcoe/turkle-client/pkg/turkle"
	"github.com/spf13/cobra"
)

type projectsCreateOptions struct {
	File     string
	Name     string
	Template string
}

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List, create, or update projects",
		Long:  "List, retrieve, create and update Turkle projects and list their batches",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsRetrieveCommand())
	cmd.AddCommand(newProjectsCreateCommand())
	cmd.AddCommand(newProjectsUpdateCommand())
	cmd.AddCommand(newProjectsBatchesCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects as jsonl",
		Args:  cobra.NoArgs,
		RunE:  runWith(listProjects),
	}
}

func newProjectsRetrieveCommand() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "retrieve",
		Short: "Retrieve a project based on integer identifier",
		Args:  cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return retrieveProject(ctx, r, id)
		}),
	}

	cmd.Flags().IntVar(&id, "id", 0, "project id")

	return cmd
}

func newProjectsCreateCommand() *cobra.Command {
	opts := &projectsCreateOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create new projects",
		Long: `Create projects from a jsonl file, or a single project from --name and
--template. A jsonl line may name an HTML file with "template_file"; it is
read relative to the jsonl file.`,
		Example: "  turkle projects create --file projects.jsonl\n  turkle projects create --name Sentiment --template sentiment.html",
		Args:    cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return createProjects(ctx, r, opts)
		}),
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "jsonl file of projects")
	cmd.Flags().StringVar(&opts.Name, "name", "", "project name")
	cmd.Flags().StringVar(&opts.Template, "template", "", "HTML template file")

	return cmd
}

func newProjectsUpdateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update projects",
		Long:  "Update one project per line of a jsonl file; every line must carry an id",
		Args:  cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return updateProjects(ctx, r, file)
		}),
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "jsonl file of project updates")

	return cmd
}

func newProjectsBatchesCommand() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "batches",
		Short: "List batches for a project",
		Args:  cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return listProjectBatches(ctx, r, id)
		}),
	}

	cmd.Flags().IntVar(&id, "id", 0, "project id")

	return cmd
}

func listProjects(ctx context.Context, r *runner) error {
	text, err := r.client.Projects().List(ctx)
	if err != nil {
		return err
	}

	return r.render(text)
}

func retrieveProject(ctx context.Context, r *runner, id int) error {
	if id == 0 {
		return constants.ErrIDRequired
	}

	text, err := r.client.Projects().Retrieve(ctx, id)
	if err != nil {
		return err
	}

	return r.render(text)
}

func createProjects(ctx context.Context, r *runner, opts *projectsCreateOptions) error {
	projects, err := projectCreateRequests(r, opts)
	if err != nil {
		return err
	}

	text, err := r.client.Projects().Create(ctx, projects)
	if err != nil {
		return err
	}

	r.report("%s created", plural(len(projects), "project", "projects"))

	return r.render(text)
}

func projectCreateRequests(r *runner, opts *projectsCreateOptions) ([]turkle.ProjectCreateRequest, error) {
	if opts.File != "" {
		return loadProjectCreates(r.fs, opts.File)
	}

	if opts.Name == "" || opts.Template == "" {
		return nil, constants.ErrCreateSourceNeeded
	}

	template, err := readText(r.fs, opts.Template)
	if err != nil {
		return nil, err
	}

	return []turkle.ProjectCreateRequest{{
		Name:         opts.Name,
		HTMLTemplate: template,
		Filename:     filepath.Base(opts.Template),
	}}, nil
}

func updateProjects(ctx context.Context, r *runner, file string) error {
	if file == "" {
		return constants.ErrFileRequired
	}

	projects, err := loadProjectUpdates(r.fs, file)
	if err != nil {
		return err
	}

	text, err := r.client.Projects().Update(ctx, projects)
	if err != nil {
		return err
	}

	r.report("%s updated", plural(len(projects), "project", "projects"))

	return r.render(text)
}

func listProjectBatches(ctx context.Context, r *runner, id int) error {
	if id == 0 {
		return constants.ErrIDRequired
	}

	text, err := r.client.Projects().Batches(ctx, id)
	if err != nil {
		return err
	}

	return r.render(text)
}
