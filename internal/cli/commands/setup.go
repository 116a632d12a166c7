package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlconnect/internal/cli/config"
	"github.com/leapstack-labs/sqlconnect/pkg/adapter"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewCommandContext reads the config and logger stored on the command context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := commandCtx(cmd)
	return &CommandContext{
		Cfg:    config.FromContext(ctx),
		Logger: config.GetLogger(ctx),
	}
}

// Connect opens the active target.
// Returns the adapter, its target and a cleanup function that must be called (typically via defer).
func (c *CommandContext) Connect(ctx context.Context) (adapter.Adapter, *config.TargetConfig, func(), error) {
	target, err := c.Cfg.ActiveTarget()
	if err != nil {
		return nil, nil, nil, err
	}
	adp, err := c.open(ctx, target)
	if err != nil {
		return nil, nil, nil, err
	}
	return adp, target, func() { _ = adp.Close() }, nil
}

// ConnectNamed opens the target called name.
func (c *CommandContext) ConnectNamed(ctx context.Context, name string) (adapter.Adapter, *config.TargetConfig, func(), error) {
	target, ok := c.Cfg.Targets[name]
	if !ok || target == nil {
		return nil, nil, nil, fmt.Errorf("unknown target %q\nAvailable targets: %v", name, c.Cfg.TargetNames())
	}
	if err := target.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid target %q: %w", name, err)
	}
	adp, err := c.open(ctx, target)
	if err != nil {
		return nil, nil, nil, err
	}
	return adp, target, func() { _ = adp.Close() }, nil
}

func (c *CommandContext) open(ctx context.Context, target *config.TargetConfig) (adapter.Adapter, error) {
	c.Logger.Debug("connecting", "type", target.Type, "host", target.Host, "database", target.Database)
	adp, err := adapter.Open(ctx, target.ToAdapterConfig(), c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s target: %w", target.Type, err)
	}
	return adp, nil
}

// commandCtx returns the command context, or Background before Execute set one.
func commandCtx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
