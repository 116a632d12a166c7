package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlconnect/pkg/schema"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the base tables of the active target",
		Long: `List the base tables visible in the active target's schema.

Use --output to choose: table, json, yaml`,
		Example: `  # List tables as JSON
  sqlconnect tables --target erp --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTables(cmd)
		},
	}
}

func runTables(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	ctx := commandCtx(cmd)

	adp, target, cleanup, err := cc.Connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	n := schema.New(adp, adp.Dialect(), schema.WithLogger(cc.Logger), schema.WithSchema(target.Schema))
	tables, err := n.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	return render(cmd.OutOrStdout(), cc.Cfg.Output, tables, tablesTable(tables))
}
