package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pgadapter "github.com/leapstack-labs/sqlconnect/pkg/adapters/postgres"
	"github.com/leapstack-labs/sqlconnect/pkg/core"
	"github.com/leapstack-labs/sqlconnect/pkg/schema"
)

// DDLOptions holds options for the ddl command.
type DDLOptions struct {
	Schema string
	Table  string
	Apply  string
}

// replicaTarget is a target that can create replica tables.
type replicaTarget interface {
	EnsureSchema(ctx context.Context, schema string) error
	EnsureTable(ctx context.Context, schema, table string, cols []pgadapter.ColumnDef) error
}

// NewDDLCommand creates the ddl command.
func NewDDLCommand() *cobra.Command {
	opts := &DDLOptions{}

	cmd := &cobra.Command{
		Use:   "ddl <table>",
		Short: "Generate a Postgres CREATE TABLE for a source table",
		Long: `Describe a table of the active target and print the Postgres CREATE TABLE
statement that replicates it. With --apply the schema and table are created
on the named postgres target instead.`,
		Example: `  # Print DDL for an Informix table
  sqlconnect ddl orders --target erp --schema replica

  # Create the replica table on the warehouse target
  sqlconnect ddl orders --target erp --schema replica --apply warehouse`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDDL(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "Replica schema (default public)")
	cmd.Flags().StringVar(&opts.Table, "table", "", "Replica table name (default source table name)")
	cmd.Flags().StringVar(&opts.Apply, "apply", "", "Create the table on this postgres target")

	return cmd
}

func runDDL(cmd *cobra.Command, name string, opts *DDLOptions) error {
	cc := NewCommandContext(cmd)
	ctx := commandCtx(cmd)

	src, target, cleanup, err := cc.Connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	table := core.ParseTableName(name, target.Schema)
	n := schema.New(src, src.Dialect(), schema.WithLogger(cc.Logger), schema.WithSchema(target.Schema))
	cols, err := n.DescribeTable(ctx, table)
	if err != nil {
		return fmt.Errorf("failed to describe %s: %w", name, err)
	}

	defs := pgadapter.ColumnDefs(src.Dialect().Kind(), cols)
	replicaSchema, replicaTable := opts.Schema, opts.Table
	if replicaSchema == "" {
		replicaSchema = "public"
	}
	if replicaTable == "" {
		replicaTable = table.Name
	}

	if opts.Apply == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), pgadapter.BuildCreateTable(replicaSchema, replicaTable, defs))
		return nil
	}

	dst, _, closeDst, err := cc.ConnectNamed(ctx, opts.Apply)
	if err != nil {
		return err
	}
	defer closeDst()

	replica, ok := dst.(replicaTarget)
	if !ok {
		return fmt.Errorf("target %q cannot create replica tables (want a postgres target)", opts.Apply)
	}
	if err := replica.EnsureSchema(ctx, replicaSchema); err != nil {
		return err
	}
	if err := replica.EnsureTable(ctx, replicaSchema, replicaTable, defs); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s.%s on %s\n", replicaSchema, replicaTable, opts.Apply)
	return nil
}
