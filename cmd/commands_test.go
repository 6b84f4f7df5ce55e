package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command against a stub API and returns stdout
func runCLI(t *testing.T, handler http.HandlerFunc, configBody string, args ...string) string {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf("vndb:\n  base_url: %s\nlogging:\n  level: error\n%s", server.URL, configBody)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--config", path}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

type requestBody struct {
	Filters json.RawMessage `json:"filters"`
	Fields  string          `json:"fields"`
	Sort    string          `json:"sort"`
	Reverse bool            `json:"reverse"`
}

func TestFindCommand(t *testing.T) {
	var got requestBody
	out := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/release", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"results":[{"id":"r80","title":"Ever17"}],"more":false}`)
	}, "", "-o", "json", "find", "release", "80", "-f", "title")

	assert.JSONEq(t, `["id","=","r80"]`, string(got.Filters))
	assert.Equal(t, "title", got.Fields)
	assert.JSONEq(t, `{"results":[{"id":"r80","title":"Ever17"}],"more":false}`, out)
}

func TestSavedQueryCommand(t *testing.T) {
	var got requestBody
	config := `queries:
  classics:
    resource: vn
    filters: '["olang", "=", "ja"]'
    fields: [title, rating]
    sort: rating
    reverse: true
    where: rating >= 85
`
	out := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vn", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"results":[
			{"id":"v17","title":"Ever17","rating":87.5},
			{"id":"v2","title":"Other","rating":60}
		],"more":true}`)
	}, config, "-o", "json", "query", "--saved", "classics")

	assert.JSONEq(t, `["olang","=","ja"]`, string(got.Filters))
	assert.Equal(t, "rating,title", got.Fields)
	assert.Equal(t, "rating", got.Sort)
	assert.True(t, got.Reverse)

	assert.JSONEq(t, `{"results":[{"id":"v17","title":"Ever17","rating":87.5}],"more":true}`, out)
}

func TestStatsCommandTable(t *testing.T) {
	out := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stats", r.URL.Path)
		_, _ = io.WriteString(w, `{"chars":1,"producers":2,"releases":3,"staff":4,"tags":5,"traits":6,"vn":48000}`)
	}, "", "-o", "table", "stats")

	assert.Contains(t, out, "48000")
	assert.Contains(t, out, "releases")
}

const savedConfig = `queries:
  classics:
    resource: vn
    fields: [rating]
    where: rating >= 85
  low:
    resource: v
    fields: [rating, title]
    where: rating < 70
  adult:
    resource: release
    filters: '["minage", ">=", 18]'
    where: minage >= 18
  plain:
    resource: tag
`

func TestSavedListCommand(t *testing.T) {
	out := runCLI(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("listing saved queries must not call the API")
	}, savedConfig, "-o", "json", "saved")

	assert.JSONEq(t, `[
		{"name":"adult","resource":"release","filters":"[\"minage\", \">=\", 18]","fields":"","where":"minage >= 18"},
		{"name":"classics","resource":"vn","filters":"","fields":"rating","where":"rating >= 85"},
		{"name":"low","resource":"v","filters":"","fields":"rating,title","where":"rating < 70"},
		{"name":"plain","resource":"tag","filters":"","fields":""}
	]`, out)
}

func TestSavedMatchCommand(t *testing.T) {
	ratings := map[string]float64{"v17": 87.5, "v2": 60, "v3": 75}
	out := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vn", r.URL.Path)
		var got requestBody
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "rating,title", got.Fields)

		var f []any
		assert.NoError(t, json.Unmarshal(got.Filters, &f))
		id, _ := f[2].(string)
		fmt.Fprintf(w, `{"results":[{"id":%q,"title":"x","rating":%v}],"more":false}`, id, ratings[id])
	}, savedConfig, "-o", "json", "saved", "match", "vn", "17", "2", "v3")

	assert.JSONEq(t, `[
		{"id":"v17","matches":"classics"},
		{"id":"v2","matches":"low"},
		{"id":"v3","matches":""}
	]`, out)
}
