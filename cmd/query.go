package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/govndb/filter"
	"github.com/s0up4200/govndb/vndb"
)

var (
	opts      queryOptions
	rawFields []string
	where     string
	filters   string
	saved     string
)

// addListFlags registers the builder flags shared by the list commands
func addListFlags(cmd *cobra.Command, all bool) {
	cmd.Flags().StringSliceVarP(&rawFields, "fields", "f", nil, "fields to select, e.g. title,released")
	cmd.Flags().StringVarP(&where, "where", "w", "", "expression filtering the results locally, e.g. 'rating > 80'")
	if !all {
		return
	}
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort key")
	cmd.Flags().BoolVar(&opts.reverse, "reverse", false, "sort in descending order")
	cmd.Flags().IntVarP(&opts.results, "results", "n", 0, "results per page (max 100)")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 0, "page number, starting at 1")
}

var findCmd = &cobra.Command{
	Use:   "find <resource> <id>...",
	Short: "Fetch entries by id",
	Long: `Fetch entries by id. Ids may omit their prefix: "find vn 17" fetches v17.
Several ids are fetched concurrently.`,
	Example: `  govndb find vn 17 v2002 -f title,released
  govndb find release r80 --output json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runFind,
}

var searchCmd = &cobra.Command{
	Use:     "search <resource> <text>",
	Short:   "Search entries by text",
	Example: `  govndb search vn "ever17" -f title,rating --sort rating --reverse`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    runSearch,
}

var queryCmd = &cobra.Command{
	Use:   "query <resource>",
	Short: "Run a query with a raw filter",
	Long: `Run a query against any list endpoint. Filters are given as JSON, e.g.
'["and", ["lang", "=", "en"], ["rating", ">=", 80]]'. With --saved the
query is read from the "queries" section of the config file.`,
	Example: `  govndb query vn --filters '["olang", "=", "ja"]' --sort rating --reverse -n 10
  govndb query --saved top-en`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQueryCmd,
}

var randomCmd = &cobra.Command{
	Use:   "random <resource>",
	Short: "Fetch a random entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runRandomCmd,
}

func init() {
	addListFlags(findCmd, false)
	addListFlags(searchCmd, true)
	addListFlags(queryCmd, true)
	addListFlags(randomCmd, false)

	queryCmd.Flags().StringVar(&filters, "filters", "", "filter as JSON")
	queryCmd.Flags().StringVar(&saved, "saved", "", "run a saved query from the config")
	queryCmd.Flags().BoolVar(&opts.count, "count", false, "report the total number of matches")
	queryCmd.Flags().StringVar(&opts.user, "user", "", "user id for list endpoints, e.g. u2")
	queryCmd.Flags().BoolVar(&opts.compactFilters, "compact-filters", false, "echo the filter in compact form")
	queryCmd.Flags().BoolVar(&opts.normalizedFilters, "normalized-filters", false, "echo the normalized filter")

	rootCmd.AddCommand(findCmd, searchCmd, queryCmd, randomCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
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

	opts.fields = splitFields(rawFields)

	var records []filter.Record
	if endpoint == vndb.EndpointVisualNovel {
		records, err = findVisualNovels(cmd.Context(), ids)
	} else {
		records, err = findEach(cmd.Context(), endpoint, ids, opts)
	}
	if err != nil {
		return err
	}

	return output(cmd, &result{Records: records}, where)
}

func findVisualNovels(ctx context.Context, ids []string) ([]filter.Record, error) {
	vnIDs := make([]vndb.VisualNovelID, len(ids))
	for i, id := range ids {
		vnIDs[i] = vndb.VisualNovelID(id)
	}

	fields := vndb.NoFields[vndb.VisualNovelField]()
	fields.ExtendRaw(opts.fields...)

	vns, err := client.FindVisualNovels(ctx, vnIDs, fields)
	if err != nil {
		return nil, err
	}

	found := make([]vndb.VisualNovel, 0, len(vns))
	for i, vn := range vns {
		if vn == nil {
			logger.Warn().Str("id", ids[i]).Msg("Not found")
			continue
		}
		found = append(found, *vn)
	}
	return filter.ToRecords(found)
}

// findEach fetches every id with its own request, bounded by the client's
// concurrency cap, and keeps the order of ids
func findEach(ctx context.Context, endpoint vndb.Endpoint, ids []string, opts queryOptions) ([]filter.Record, error) {
	found := make([][]filter.Record, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(client.MaxConcurrentRequests())

	for i, id := range ids {
		g.Go(func() error {
			res, err := runQuery(ctx, endpoint, vndb.Eq("id", id), opts)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", id, err)
			}
			if len(res.Records) == 0 {
				logger.Warn().Str("id", id).Msg("Not found")
			}
			found[i] = res.Records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []filter.Record
	for _, recs := range found {
		records = append(records, recs...)
	}
	return records, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	endpoint, err := parseResource(args[0])
	if err != nil {
		return err
	}
	opts.fields = splitFields(rawFields)

	text := strings.Join(args[1:], " ")
	res, err := runQuery(cmd.Context(), endpoint, vndb.Eq("search", text), opts)
	if err != nil {
		return err
	}
	return output(cmd, res, where)
}

func runQueryCmd(cmd *cobra.Command, args []string) error {
	if saved != "" {
		return runSaved(cmd, saved)
	}
	if len(args) != 1 {
		return fmt.Errorf("query needs a resource or --saved")
	}

	endpoint, err := parseResource(args[0])
	if err != nil {
		endpoint = vndb.Endpoint(args[0])
		logger.Debug().Str("endpoint", args[0]).Msg("Sending raw query")
	}

	var f vndb.QueryFilter
	if filters != "" {
		if f, err = vndb.ParseQueryFilter(filters); err != nil {
			return fmt.Errorf("invalid --filters: %w", err)
		}
	}
	opts.fields = splitFields(rawFields)

	res, err := runQuery(cmd.Context(), endpoint, f, opts)
	if err != nil {
		return err
	}
	return output(cmd, res, where)
}

// runSaved runs a query from the config; flags given on the command line
// take precedence over the saved values
func runSaved(cmd *cobra.Command, name string) error {
	q, err := cfg.SavedQuery(name)
	if err != nil {
		return err
	}
	endpoint, err := parseResource(q.Resource)
	if err != nil {
		return err
	}

	var f vndb.QueryFilter
	if q.Filters != "" {
		if f, err = vndb.ParseQueryFilter(q.Filters); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	opts.fields = splitFields(rawFields)
	if !flags.Changed("fields") {
		opts.fields = q.Fields
	}
	if !flags.Changed("sort") {
		opts.sort = q.Sort
	}
	if !flags.Changed("reverse") {
		opts.reverse = q.Reverse
	}
	if !flags.Changed("results") {
		opts.results = q.Results
	}

	res, err := runQuery(cmd.Context(), endpoint, f, opts)
	if err != nil {
		return err
	}

	if flags.Changed("where") || q.Where == "" {
		return output(cmd, res, where)
	}

	manager := filter.NewManager()
	if err := manager.RegisterFilter(name, q.Where); err != nil {
		return err
	}
	res.Records, err = manager.EvaluateFilter(cmd.Context(), name, res.Records)
	if err != nil {
		return err
	}
	return output(cmd, res, "")
}

func runRandomCmd(cmd *cobra.Command, args []string) error {
	endpoint, err := parseResource(args[0])
	if err != nil {
		return err
	}
	opts.fields = splitFields(rawFields)

	res, err := runRandom(cmd.Context(), endpoint, opts)
	if err != nil {
		return err
	}
	return output(cmd, res, where)
}

// output applies the local where filter and renders the result. Tables show
// only the records; json and yaml keep the response envelope.
func output(cmd *cobra.Command, res *result, expression string) error {
	if expression != "" {
		compiled, err := filter.CompileFilter(expression)
		if err != nil {
			return fmt.Errorf("invalid --where: %w", err)
		}
		before := len(res.Records)
		res.Records, err = filter.NewConcurrentEvaluator().Evaluate(cmd.Context(), compiled, res.Records)
		if err != nil {
			return err
		}
		logger.Debug().Int("before", before).Int("after", len(res.Records)).Msg("Applied local filter")
	}

	if res.Records == nil {
		res.Records = []filter.Record{}
	}

	w := cmd.OutOrStdout()
	if cfg.Output.Format != OutputFormatTable {
		return render(w, cfg.Output.Format, res)
	}

	if err := render(w, OutputFormatTable, res.Records); err != nil {
		return err
	}
	if res.Count != nil {
		fmt.Fprintf(w, "%d matches\n", *res.Count)
	}
	if res.More {
		fmt.Fprintln(w, "More results available, use --page to see them")
	}
	return nil
}
