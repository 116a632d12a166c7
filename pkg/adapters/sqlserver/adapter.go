// Package sqlserver provides a Microsoft SQL Server database adapter for sqlconnect.
package sqlserver

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
	// go-mssqldb database/sql driver, registered as "sqlserver".
	_ "github.com/microsoft/go-mssqldb"

	"github.com/leapstack-labs/sqlconnect/pkg/adapter"
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
	msdialect "github.com/leapstack-labs/sqlconnect/pkg/dialects/sqlserver"
)

// DefaultPort is the SQL Server port used when none is configured.
const DefaultPort = 1433

// Params holds SQL Server specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// Encrypt: "disable", "false", "true" or "strict"
	Encrypt string `mapstructure:"encrypt"`

	// TrustServerCertificate skips server certificate validation
	TrustServerCertificate bool `mapstructure:"trust_server_certificate"`

	// Instance is the named instance on the host (e.g., SQLEXPRESS)
	Instance string `mapstructure:"instance"`

	// AppName is reported to the server as the application name
	AppName string `mapstructure:"app_name"`

	// ConnectionTimeout in seconds; 0 uses the driver default
	ConnectionTimeout int `mapstructure:"connection_timeout"`
}

// Adapter implements the adapter.Adapter interface for SQL Server.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQL Server adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the SQL Server dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return msdialect.SQLServer
}

// Connect establishes a connection to SQL Server.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn, err := buildSQLServerDSN(cfg)
	if err != nil {
		return err
	}

	a.Logger.Debug("connecting to sqlserver", "host", cfg.Host, "database", cfg.Database)

	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlserver connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlserver: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// decodeParams reads Params from the free-form config map.
func decodeParams(raw map[string]any) (Params, error) {
	var p Params
	if len(raw) == 0 {
		return p, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return p, err
	}
	if err := dec.Decode(raw); err != nil {
		return p, fmt.Errorf("invalid sqlserver params: %w", err)
	}
	return p, nil
}

// buildSQLServerDSN constructs a sqlserver:// connection URL.
func buildSQLServerDSN(cfg adapter.Config) (string, error) {
	params, err := decodeParams(cfg.Params)
	if err != nil {
		return "", err
	}

	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}

	u := &url.URL{
		Scheme: "sqlserver",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
	}
	if params.Instance != "" {
		u.Path = "/" + params.Instance
	}
	if cfg.Username != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}

	q := url.Values{}
	if cfg.Database != "" {
		q.Set("database", cfg.Database)
	}
	if params.Encrypt != "" {
		q.Set("encrypt", params.Encrypt)
	}
	if params.TrustServerCertificate {
		q.Set("TrustServerCertificate", "true")
	}
	if params.AppName != "" {
		q.Set("app name", params.AppName)
	}
	if params.ConnectionTimeout > 0 {
		q.Set("connection timeout", strconv.Itoa(params.ConnectionTimeout))
	}
	for k, v := range cfg.Options {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
