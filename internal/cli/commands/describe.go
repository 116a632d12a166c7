package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
	"github.com/leapstack-labs/sqlconnect/pkg/schema"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "describe [table]",
		Short: "Describe table columns in canonical types",
		Long: `Describe the columns of one table, or of every table when no table is given.

Columns that cannot be introspected are skipped and logged as warnings.
Use --output to choose: table, json, yaml`,
		Example: `  # Describe one table
  sqlconnect describe sales.orders

  # Describe every table as YAML
  sqlconnect describe --output yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runDescribeAll(cmd, concurrency)
			}
			return runDescribe(cmd, args[0])
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", schema.DefaultConcurrency, "Tables described in parallel when no table is given")

	return cmd
}

func runDescribe(cmd *cobra.Command, name string) error {
	cc := NewCommandContext(cmd)
	ctx := commandCtx(cmd)

	adp, target, cleanup, err := cc.Connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	n := schema.New(adp, adp.Dialect(), schema.WithLogger(cc.Logger), schema.WithSchema(target.Schema))
	cols, err := n.DescribeTable(ctx, core.ParseTableName(name, target.Schema))
	if err != nil {
		return fmt.Errorf("failed to describe %s: %w", name, err)
	}

	return render(cmd.OutOrStdout(), cc.Cfg.Output, cols, columnsTable(cols))
}

func runDescribeAll(cmd *cobra.Command, concurrency int) error {
	cc := NewCommandContext(cmd)
	ctx := commandCtx(cmd)

	adp, target, cleanup, err := cc.Connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	n := schema.New(adp, adp.Dialect(),
		schema.WithLogger(cc.Logger),
		schema.WithSchema(target.Schema),
		schema.WithConcurrency(concurrency),
	)
	all, err := n.DescribeAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to describe tables: %w", err)
	}

	return render(cmd.OutOrStdout(), cc.Cfg.Output, all, func(w io.Writer) {
		names := make([]string, 0, len(all))
		for name := range all {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			_, _ = fmt.Fprintln(w, name)
			columnsTable(all[name])(w)
		}
	})
}
