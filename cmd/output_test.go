package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/s0up4200/govndb/vndb"
)

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, OutputFormatJSON, vndb.Stats{Chars: 1, VN: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"chars":1,"producers":0,"releases":0,"staff":0,"tags":0,"traits":0,"vn":2}`, buf.String())
}

func TestRenderYAMLUsesAPINames(t *testing.T) {
	title := "Ever17"
	birthday := vndb.Birthday{Month: 3, Day: 14}

	var buf bytes.Buffer
	err := render(&buf, OutputFormatYAML, []vndb.Character{{
		ID:       "c1",
		Name:     &title,
		Birthday: &birthday,
	}})
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0]["id"])
	assert.Equal(t, []any{3, 14}, got[0]["birthday"])
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	rows := []map[string]any{
		{"title": "Ever17", "id": "v17", "rating": 87.5},
		{"id": "v2002", "title": strings.Repeat("x", 100)},
	}
	require.NoError(t, render(&buf, OutputFormatTable, rows))

	out := buf.String()
	assert.Contains(t, out, "v17")
	assert.Contains(t, out, "87.5")
	assert.Contains(t, out, "...")
	assert.Less(t, strings.Index(strings.ToLower(out), "id"), strings.Index(strings.ToLower(out), "rating"))
}

func TestRenderEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, OutputFormatTable, []any{}))
	assert.Equal(t, "No results found\n", buf.String())
}

func TestColumnsOf(t *testing.T) {
	rows := []any{
		map[string]any{"title": "a", "id": "v1"},
		map[string]any{"rating": 1.0, "id": "v2"},
	}
	assert.Equal(t, []string{"id", "rating", "title"}, columnsOf(rows))
}

func TestCell(t *testing.T) {
	assert.Equal(t, "", cell(nil))
	assert.Equal(t, "true", cell(true))
	assert.Equal(t, "12", cell(12.0))
	assert.Equal(t, `["ja","en"]`, cell([]any{"ja", "en"}))
	assert.Equal(t, "line one line two", cell("line one\nline two"))
	assert.Len(t, []rune(cell(strings.Repeat("é", 80))), maxCellWidth)
}
