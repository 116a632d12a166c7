package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlconnect/pkg/adapter"
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display sqlconnect version, build information and the available adapters.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sqlconnect v%s (%s)\n", version, runtime.Version())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Adapters: %v\n", adapter.ListAdapters())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dialects: %v\n", dialect.List())
		},
	}
}
