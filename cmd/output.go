package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	maxCellWidth = 60
)

func isOutputFormat(format string) bool {
	switch format {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return true
	}
	return false
}

// render prints v in the configured output format. Values go through their
// JSON encoding first so every format shows the API's field names.
func render(w io.Writer, format string, v any) error {
	generic, err := toGeneric(v)
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(generic); err != nil {
			return fmt.Errorf("failed to encode output as JSON: %w", err)
		}
		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		if err := encoder.Encode(generic); err != nil {
			return fmt.Errorf("failed to encode output as YAML: %w", err)
		}
		return nil
	default:
		return renderTable(w, generic)
	}
}

func toGeneric(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode output: %w", err)
	}
	return out, nil
}

// renderTable prints a list of objects with one row each, or a single
// object as property/value rows
func renderTable(w io.Writer, v any) error {
	switch data := v.(type) {
	case []any:
		return renderRows(w, data)
	case map[string]any:
		table := tablewriter.NewWriter(w)
		table.Header("Property", "Value")
		for _, key := range slices.Sorted(maps.Keys(data)) {
			_ = table.Append([]string{key, cell(data[key])})
		}
		return table.Render()
	default:
		_, err := fmt.Fprintln(w, cell(v))
		return err
	}
}

func renderRows(w io.Writer, rows []any) error {
	if len(rows) == 0 {
		_, err := io.WriteString(w, "No results found\n")
		return err
	}

	columns := columnsOf(rows)
	table := tablewriter.NewWriter(w)
	table.Header(toAny(columns)...)

	for _, row := range rows {
		obj, _ := row.(map[string]any)
		values := make([]string, len(columns))
		for i, col := range columns {
			values[i] = cell(obj[col])
		}
		_ = table.Append(values)
	}

	return table.Render()
}

// columnsOf returns the union of the rows' keys, "id" first and the rest sorted
func columnsOf(rows []any) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		if obj, ok := row.(map[string]any); ok {
			for k := range obj {
				seen[k] = struct{}{}
			}
		}
	}
	_, hasID := seen["id"]
	delete(seen, "id")

	columns := slices.Sorted(maps.Keys(seen))
	if hasID {
		columns = append([]string{"id"}, columns...)
	}
	return columns
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// cell renders one value: scalars as text, nested values as compact JSON
func cell(v any) string {
	var s string
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		s = val
	case float64, bool:
		s = fmt.Sprint(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			s = fmt.Sprint(val)
		} else {
			s = string(data)
		}
	}

	s = strings.ReplaceAll(s, "\n", " ")
	if len([]rune(s)) > maxCellWidth {
		s = string([]rune(s)[:maxCellWidth-3]) + "..."
	}
	return s
}
