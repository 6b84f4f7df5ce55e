package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/govndb/filter"
	"github.com/s0up4200/govndb/vndb"
)

var userFields []string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database entry counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := client.Get().Stats(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), cfg.Output.Format, stats)
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the API schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := client.Get().Schema(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), cfg.Output.Format, schema)
	},
}

var authInfoCmd = &cobra.Command{
	Use:   "authinfo",
	Short: "Show the user and permissions of the configured token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := client.Get().AuthInfo(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), cfg.Output.Format, info)
	},
}

var userCmd = &cobra.Command{
	Use:   "user <id|name>...",
	Short: "Look up users by id or username",
	Long: `Look up users. Plain numbers are user ids ("2" is u2); anything else is
matched as a user id or username. Users that do not exist are left out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUser,
}

func init() {
	userCmd.Flags().StringSliceVarP(&userFields, "fields", "f", nil, "fields to fetch: lengthvotes, lengthvotes_sum (default all)")

	rootCmd.AddCommand(statsCmd, schemaCmd, authInfoCmd, userCmd)
}

func runUser(cmd *cobra.Command, args []string) error {
	query := new(vndb.UserQuery)
	for _, arg := range args {
		query.Name(vndb.ParseUserQuery(arg).Tokens()...)
	}

	fields := vndb.AllFields[vndb.UserField]()
	if len(userFields) > 0 {
		fields = vndb.NoFields[vndb.UserField]()
		fields.ExtendRaw(splitFields(userFields)...)
	}

	users, err := client.Get().Users(cmd.Context(), query, fields)
	if err != nil {
		return err
	}

	rows := make([]filter.Record, 0, len(users))
	for _, token := range query.Tokens() {
		user, ok := users[token]
		if !ok {
			logger.Warn().Str("query", token).Msg("No such user")
			continue
		}
		rec, err := filter.ToRecords([]vndb.User{user})
		if err != nil {
			return err
		}
		rec[0]["query"] = token
		rows = append(rows, rec[0])
	}

	return render(cmd.OutOrStdout(), cfg.Output.Format, rows)
}
