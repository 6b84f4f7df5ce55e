package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/govndb/filter"
	"github.com/s0up4200/govndb/vndb"
)

var matchFields []string

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List the saved queries from the config",
	Args:  cobra.NoArgs,
	RunE:  runSavedList,
}

var savedMatchCmd = &cobra.Command{
	Use:   "match <resource> <id>...",
	Short: "Show which saved where expressions the given entries satisfy",
	Long: `Fetch entries by id and test them against the "where" expression of
every saved query for the same resource. The fields requested are the union
of those queries' fields and --fields.`,
	Example: `  govndb saved match vn 17 2002`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    runSavedMatch,
}

func init() {
	savedMatchCmd.Flags().StringSliceVarP(&matchFields, "fields", "f", nil, "extra fields to fetch")

	savedCmd.AddCommand(savedMatchCmd)
	rootCmd.AddCommand(savedCmd)
}

// savedFilters compiles the where expressions of the saved queries. With a
// non-empty endpoint only queries for that resource are kept.
func savedFilters(endpoint vndb.Endpoint) (*filter.Manager, []string, error) {
	manager := filter.NewManager()
	expressions := make(map[string]string)
	var fields []string

	for name, q := range cfg.Queries {
		resource, err := parseResource(q.Resource)
		if err != nil {
			return nil, nil, fmt.Errorf("saved query %q: %w", name, err)
		}
		if endpoint != "" && resource != endpoint {
			continue
		}
		if q.Where != "" {
			expressions[name] = q.Where
			fields = append(fields, q.Fields...)
		}
	}

	if err := manager.RegisterFilters(expressions); err != nil {
		return nil, nil, err
	}
	return manager, fields, nil
}

func runSavedList(cmd *cobra.Command, _ []string) error {
	manager, _, err := savedFilters("")
	if err != nil {
		return err
	}

	rows := make([]filter.Record, 0, len(cfg.Queries))
	for _, name := range slices.Sorted(maps.Keys(cfg.Queries)) {
		q := cfg.Queries[name]
		row := filter.Record{
			"name":     name,
			"resource": q.Resource,
			"filters":  q.Filters,
			"fields":   strings.Join(q.Fields, ","),
		}
		if expression, ok := manager.Expression(name); ok {
			row["where"] = expression
		}
		rows = append(rows, row)
	}

	return render(cmd.OutOrStdout(), cfg.Output.Format, rows)
}

func runSavedMatch(cmd *cobra.Command, args []string) error {
	endpoint, err := parseResource(args[0])
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(args)-1)
	for _, raw := range args[1:] {
		id, err := normalizeID(endpoint, raw)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	manager, fields, err := savedFilters(endpoint)
	if err != nil {
		return err
	}
	names := manager.ListFilters()
	if len(names) == 0 {
		return fmt.Errorf("no saved query for %s has a where expression", endpoint)
	}

	records, err := findEach(cmd.Context(), endpoint, ids, queryOptions{
		fields: append(fields, splitFields(matchFields)...),
	})
	if err != nil {
		return err
	}

	matched, err := manager.EvaluateAll(cmd.Context(), records)
	if err != nil {
		return err
	}

	hits := make(map[string][]string, len(records))
	for _, name := range names {
		for _, rec := range matched[name] {
			id, _ := rec["id"].(string)
			hits[id] = append(hits[id], name)
		}
	}

	rows := make([]filter.Record, 0, len(records))
	for _, rec := range records {
		id, _ := rec["id"].(string)
		rows = append(rows, filter.Record{"id": id, "matches": strings.Join(hits[id], ",")})
	}
	return render(cmd.OutOrStdout(), cfg.Output.Format, rows)
}
