package commands

import (
	"context"
	"path/filepath"

	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/hltcoe/turkle-client/pkg/turkle"
	"github.com/spf13/cobra"
)

type batchesCreateOptions struct {
	File    string
	Name    string
	Project int
	CSV     string
}

type batchesAddTasksOptions struct {
	ID  int
	CSV string
}

// NewBatchesCommand creates the batches command group.
func NewBatchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "List, create, or update batches",
		Long:  "List, retrieve, create and update Turkle batches and download their input and results",
	}

	cmd.AddCommand(newBatchesListCommand())
	cmd.AddCommand(newBatchesRetrieveCommand())
	cmd.AddCommand(newBatchesCreateCommand())
	cmd.AddCommand(newBatchesUpdateCommand())
	cmd.AddCommand(newBatchesAddTasksCommand())
	cmd.AddCommand(newBatchesIDCommand("input", "Download the input CSV", batchInput))
	cmd.AddCommand(newBatchesIDCommand("results", "Download the current results CSV", batchResults))
	cmd.AddCommand(newBatchesIDCommand("progress", "Get current progress information", batchProgress))

	return cmd
}

func newBatchesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all batches as jsonl",
		Args:  cobra.NoArgs,
		RunE:  runWith(listBatches),
	}
}

func newBatchesRetrieveCommand() *cobra.Command {
	return newBatchesIDCommand("retrieve", "Retrieve a batch based on integer identifier", retrieveBatch)
}

// newBatchesIDCommand builds a subcommand whose only input is --id.
func newBatchesIDCommand(use, short string, run func(ctx context.Context, r *runner, id int) error) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			if id == 0 {
				return constants.ErrIDRequired
			}

			return run(ctx, r, id)
		}),
	}

	cmd.Flags().IntVar(&id, "id", 0, "batch id")

	return cmd
}

func newBatchesCreateCommand() *cobra.Command {
	opts := &batchesCreateOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create new batches",
		Long: `Create batches from a jsonl file, or a single batch from --name, --project
and --csv. A jsonl line may name a CSV file with "csv_file"; it is read
relative to the jsonl file.`,
		Example: "  turkle batches create --file batches.jsonl\n  turkle batches create --name Round1 --project 3 --csv round1.csv",
		Args:    cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return createBatches(ctx, r, opts)
		}),
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "jsonl file of batches")
	cmd.Flags().StringVar(&opts.Name, "name", "", "batch name")
	cmd.Flags().IntVar(&opts.Project, "project", 0, "project id")
	cmd.Flags().StringVar(&opts.CSV, "csv", "", "CSV file of tasks")

	return cmd
}

func newBatchesUpdateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update batches",
		Long:  "Update one batch per line of a jsonl file; every line must carry an id. Use addtasks to add rows.",
		Args:  cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return updateBatches(ctx, r, file)
		}),
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "jsonl file of batch updates")

	return cmd
}

func newBatchesAddTasksCommand() *cobra.Command {
	opts := &batchesAddTasksOptions{}

	cmd := &cobra.Command{
		Use:   "addtasks",
		Short: "Add tasks to a batch from a CSV file",
		Args:  cobra.NoArgs,
		RunE: runWith(func(ctx context.Context, r *runner) error {
			return addBatchTasks(ctx, r, opts)
		}),
	}

	cmd.Flags().IntVar(&opts.ID, "id", 0, "batch id")
	cmd.Flags().StringVar(&opts.CSV, "csv", "", "CSV file of tasks")

	return cmd
}

func listBatches(ctx context.Context, r *runner) error {
	text, err := r.client.Batches().List(ctx)
	if err != nil {
		return err
	}

	return r.render(text)
}

func retrieveBatch(ctx context.Context, r *runner, id int) error {
	text, err := r.client.Batches().Retrieve(ctx, id)
	if err != nil {
		return err
	}

	return r.render(text)
}

func createBatches(ctx context.Context, r *runner, opts *batchesCreateOptions) error {
	batches, err := batchCreateRequests(r, opts)
	if err != nil {
		return err
	}

	text, err := r.client.Batches().Create(ctx, batches)
	if err != nil {
		return err
	}

	r.report("%s created", plural(len(batches), "batch", "batches"))

	return r.render(text)
}

func batchCreateRequests(r *runner, opts *batchesCreateOptions) ([]turkle.BatchCreateRequest, error) {
	if opts.File != "" {
		return loadBatchCreates(r.fs, opts.File)
	}

	if opts.Name == "" || opts.Project == 0 || opts.CSV == "" {
		return nil, constants.ErrCreateSourceNeeded
	}

	csvText, err := readText(r.fs, opts.CSV)
	if err != nil {
		return nil, err
	}

	return []turkle.BatchCreateRequest{{
		Name:     opts.Name,
		Project:  opts.Project,
		CSVText:  csvText,
		Filename: filepath.Base(opts.CSV),
	}}, nil
}

func updateBatches(ctx context.Context, r *runner, file string) error {
	if file == "" {
		return constants.ErrFileRequired
	}

	batches, err := readJSONLines[turkle.BatchUpdateRequest](r.fs, file)
	if err != nil {
		return err
	}

	text, err := r.client.Batches().Update(ctx, batches)
	if err != nil {
		return err
	}

	r.report("%s updated", plural(len(batches), "batch", "batches"))

	return r.render(text)
}

func addBatchTasks(ctx context.Context, r *runner, opts *batchesAddTasksOptions) error {
	if opts.ID == 0 {
		return constants.ErrIDRequired
	}

	if opts.CSV == "" {
		return constants.ErrCSVRequired
	}

	csvText, err := readText(r.fs, opts.CSV)
	if err != nil {
		return err
	}

	text, err := r.client.Batches().AddTasks(ctx, opts.ID, &turkle.BatchAddTasksRequest{CSVText: csvText})
	if err != nil {
		return err
	}

	return r.render(text)
}

// batchInput and batchResults print CSV, so the output format does not apply.
func batchInput(ctx context.Context, r *runner, id int) error {
	text, err := r.client.Batches().Input(ctx, id)
	if err != nil {
		return err
	}

	return writeRaw(r.out, text)
}

func batchResults(ctx context.Context, r *runner, id int) error {
	text, err := r.client.Batches().Results(ctx, id)
	if err != nil {
		return err
	}

	return writeRaw(r.out, text)
}

func batchProgress(ctx context.Context, r *runner, id int) error {
	text, err := r.client.Batches().Progress(ctx, id)
	if err != nil {
		return err
	}

	return r.render(text)
}
