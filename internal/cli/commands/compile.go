package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
	"github.com/leapstack-labs/sqlconnect/pkg/query"
)

// CompileOptions holds options for the compile command.
type CompileOptions struct {
	Dialect string
	Bind    bool
	Preview int
	Watch   bool
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	opts := &CompileOptions{}

	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile a query description into dialect SQL",
		Long: `Compile a JSON, YAML or TOML query description into SQL for one dialect.

The query is read from the file argument, or from stdin when the argument
is missing or "-". Without --dialect the active target's type is used.`,
		Example: `  # Compile for SQL Server
  sqlconnect compile report.json --dialect sqlserver

  # Emit placeholders and list the bind arguments
  sqlconnect compile report.yaml --dialect postgres --bind

  # Recompile whenever the file changes
  sqlconnect compile report.toml --dialect informix --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runCompile(cmd, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "", "Target dialect (informix|postgres|sqlserver)")
	cmd.Flags().BoolVar(&opts.Bind, "bind", false, "Emit placeholders instead of inline literals")
	cmd.Flags().IntVar(&opts.Preview, "preview", 0, "Wrap the statement to return at most N rows")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Recompile when the file changes")

	_ = cmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dialect.List(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCompile(cmd *cobra.Command, path string, opts *CompileOptions) error {
	cc := NewCommandContext(cmd)

	d, err := resolveDialect(cc, opts.Dialect)
	if err != nil {
		return err
	}

	if opts.Watch {
		if path == "" || path == "-" {
			return fmt.Errorf("--watch needs a query file")
		}
		return watchFile(commandCtx(cmd), path, cc.Logger, func() {
			if err := compileFile(cmd.OutOrStdout(), d, path, opts); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
		})
	}

	return compileFile(cmd.OutOrStdout(), d, path, opts)
}

// resolveDialect picks the --dialect value or the active target's type.
func resolveDialect(cc *CommandContext, name string) (*dialect.Dialect, error) {
	if name == "" {
		target, err := cc.Cfg.ActiveTarget()
		if err != nil {
			return nil, fmt.Errorf("no dialect given: %w\nHint: Use --dialect", err)
		}
		name = target.Type
	}
	return dialect.Lookup(name)
}

func compileFile(w io.Writer, d *dialect.Dialect, path string, opts *CompileOptions) error {
	q, err := readQuery(path)
	if err != nil {
		return err
	}

	var compileOpts []dialect.CompileOption
	if opts.Bind {
		compileOpts = append(compileOpts, dialect.WithBindParams())
	}
	stmt, err := d.Compile(q, compileOpts...)
	if err != nil {
		return err
	}

	sql := stmt.SQL
	if opts.Preview > 0 {
		sql = d.Preview(sql, opts.Preview)
	}
	_, _ = fmt.Fprintln(w, sql+";")

	for i, arg := range stmt.Args {
		_, _ = fmt.Fprintf(w, "-- %s = %s\n", d.Placeholder().Format(i+1), formatArg(arg))
	}
	return nil
}

func readQuery(path string) (*query.Query, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read query from stdin: %w", err)
		}
		return query.DecodeBytes(sniffFormat(data), data)
	}
	return query.DecodeFile(path)
}

// sniffFormat guesses the extension of a query read from stdin.
func sniffFormat(data []byte) string {
	s := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(s, "{"):
		return ".json"
	case strings.HasPrefix(s, "[") || strings.Contains(s, " = "):
		return ".toml"
	default:
		return ".yaml"
	}
}

func formatArg(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}

