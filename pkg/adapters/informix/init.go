package informix

import (
	"log/slog"

	"github.com/leapstack-labs/sqlconnect/pkg/adapter"
)

func init() {
	adapter.Register("informix", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
