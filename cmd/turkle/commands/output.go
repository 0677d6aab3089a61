package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/hltcoe/turkle-client/internal/wire"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// defaultJSONIndent is the indent of --output json.
const defaultJSONIndent = "  "

// splitRecords splits jsonl text into its non-blank lines.
func splitRecords(text string) []string {
	lines := strings.Split(text, constants.LineSeparator)
	records := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			records = append(records, line)
		}
	}

	return records
}

// renderJSONText writes the JSON text returned by a client call in format.
// A single record renders as one value, several as a list.
func renderJSONText(out io.Writer, text, format string) error {
	switch format {
	case "", constants.FormatJSONL:
		return writeRaw(out, text)
	case constants.FormatJSON:
		return renderJSON(out, splitRecords(text))
	case constants.FormatYAML:
		return renderYAML(out, splitRecords(text))
	case constants.FormatTable:
		return renderTable(out, splitRecords(text))
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, format)
	}
}

// writeRaw writes text followed by a newline unless it already ends in one.
func writeRaw(out io.Writer, text string) error {
	if text == "" {
		return nil
	}

	if !strings.HasSuffix(text, constants.LineSeparator) {
		text += constants.LineSeparator
	}

	_, err := io.WriteString(out, text)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

func renderJSON(out io.Writer, records []string) error {
	var raw string

	switch len(records) {
	case 0:
		raw = "[]"
	case 1:
		raw = records[0]
	default:
		raw = "[" + strings.Join(records, ",") + "]"
	}

	var buf bytes.Buffer

	err := json.Indent(&buf, []byte(raw), "", defaultJSONIndent)
	if err != nil {
		return fmt.Errorf("formatting JSON output: %w", err)
	}

	buf.WriteString(constants.LineSeparator)

	_, err = buf.WriteTo(out)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// renderYAML decodes each record into a yaml.Node, which keeps key order,
// and re-encodes it in block style.
func renderYAML(out io.Writer, records []string) error {
	encoder := yaml.NewEncoder(out)
	defer func() {
		_ = encoder.Close()
	}()

	encoder.SetIndent(2) //nolint:mnd

	nodes := make([]*yaml.Node, 0, len(records))

	for _, record := range records {
		var doc yaml.Node

		err := yaml.Unmarshal([]byte(record), &doc)
		if err != nil {
			return fmt.Errorf("decoding record for YAML output: %w", err)
		}

		blockStyle(&doc)

		if len(doc.Content) > 0 {
			nodes = append(nodes, doc.Content[0])
		}
	}

	var value *yaml.Node

	if len(nodes) == 1 {
		value = nodes[0]
	} else {
		value = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: nodes}
	}

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return nil
}

// blockStyle drops the flow and quoting styles JSON input carries.
func blockStyle(node *yaml.Node) {
	node.Style = 0

	for _, child := range node.Content {
		blockStyle(child)
	}
}

// renderTable prints one row per record with the first record's keys as
// columns. Nested values are shown as compact JSON.
func renderTable(out io.Writer, records []string) error {
	if len(records) == 0 {
		return nil
	}

	first, err := wire.Fields([]byte(records[0]))
	if err != nil {
		return fmt.Errorf("table output needs JSON objects: %w", err)
	}

	header := make([]string, 0, len(first))
	cells := make([]any, 0, len(first))

	for _, field := range first {
		header = append(header, field.Key)
		cells = append(cells, field.Key)
	}

	table := tablewriter.NewWriter(out)
	table.Header(cells...)

	for _, record := range records {
		fields, err := wire.Fields([]byte(record))
		if err != nil {
			return fmt.Errorf("table output needs JSON objects: %w", err)
		}

		row := make([]any, 0, len(header))

		for _, key := range header {
			value, ok := wire.Lookup(fields, key)
			if !ok || string(value) == "null" {
				row = append(row, constants.NotAvailable)

				continue
			}

			row = append(row, wire.Text(value))
		}

		_ = table.Append(row...)
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
