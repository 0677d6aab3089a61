package commands

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/hltcoe/turkle-client/pkg/turkle"
	"github.com/spf13/afero"
)

// readJSONLines decodes one T from every non-blank line of path.
func readJSONLines[T any](fs afero.Fs, path string) ([]T, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), constants.MaxJSONLLineSize)

	var (
		items  []T
		lineNo int
	)

	for scanner.Scan() {
		lineNo++

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var item T

		err = json.Unmarshal(line, &item)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, lineNo, err)
		}

		items = append(items, item)
	}

	err = scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", constants.ErrEmptyPayload, path)
	}

	return items, nil
}

// readJSONFile decodes the single JSON document in path into v.
func readJSONFile(fs afero.Fs, path string, v any) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	err = json.Unmarshal(data, v)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return nil
}

// readText returns the contents of path.
func readText(fs afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return string(data), nil
}

// relativeTo resolves name against the directory holding the payload file.
func relativeTo(payloadPath, name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(filepath.Dir(payloadPath), name)
}

// projectCreateLine is a jsonl line of a project create file. TemplateFile
// names an HTML file to load into html_template.
type projectCreateLine struct {
	turkle.ProjectCreateRequest

	TemplateFile string `json:"template_file"`
}

// projectUpdateLine is a jsonl line of a project update file.
type projectUpdateLine struct {
	turkle.ProjectUpdateRequest

	TemplateFile string `json:"template_file"`
}

// batchCreateLine is a jsonl line of a batch create file. CSVFile names a
// CSV file to load into csv_text.
type batchCreateLine struct {
	turkle.BatchCreateRequest

	CSVFile string `json:"csv_file"`
}

func loadProjectCreates(fs afero.Fs, path string) ([]turkle.ProjectCreateRequest, error) {
	lines, err := readJSONLines[projectCreateLine](fs, path)
	if err != nil {
		return nil, err
	}

	requests := make([]turkle.ProjectCreateRequest, 0, len(lines))

	for _, line := range lines {
		request := line.ProjectCreateRequest

		if line.TemplateFile != "" {
			templatePath := relativeTo(path, line.TemplateFile)

			request.HTMLTemplate, err = readText(fs, templatePath)
			if err != nil {
				return nil, err
			}

			if request.Filename == "" {
				request.Filename = filepath.Base(templatePath)
			}
		}

		requests = append(requests, request)
	}

	return requests, nil
}

func loadProjectUpdates(fs afero.Fs, path string) ([]turkle.ProjectUpdateRequest, error) {
	lines, err := readJSONLines[projectUpdateLine](fs, path)
	if err != nil {
		return nil, err
	}

	requests := make([]turkle.ProjectUpdateRequest, 0, len(lines))

	for _, line := range lines {
		request := line.ProjectUpdateRequest

		if line.TemplateFile != "" {
			templatePath := relativeTo(path, line.TemplateFile)

			template, err := readText(fs, templatePath)
			if err != nil {
				return nil, err
			}

			request.HTMLTemplate = &template

			if request.Filename == nil {
				filename := filepath.Base(templatePath)
				request.Filename = &filename
			}
		}

		requests = append(requests, request)
	}

	return requests, nil
}

func loadBatchCreates(fs afero.Fs, path string) ([]turkle.BatchCreateRequest, error) {
	lines, err := readJSONLines[batchCreateLine](fs, path)
	if err != nil {
		return nil, err
	}

	requests := make([]turkle.BatchCreateRequest, 0, len(lines))

	for _, line := range lines {
		request := line.BatchCreateRequest

		if line.CSVFile != "" {
			csvPath := relativeTo(path, line.CSVFile)

			request.CSVText, err = readText(fs, csvPath)
			if err != nil {
				return nil, err
			}

			if request.Filename == "" {
				request.Filename = filepath.Base(csvPath)
			}
		}

		requests = append(requests, request)
	}

	return requests, nil
}
