// Package informix provides an Informix database adapter for sqlconnect.
//
// No Informix driver is linked in: the adapter opens whichever
// database/sql driver the host program registered under the configured
// name ("odbc" by default) with an ODBC-style connection string.
package informix

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/leapstack-labs/sqlconnect/pkg/adapter"
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
	ifxdialect "github.com/leapstack-labs/sqlconnect/pkg/dialects/informix"
)

const (
	// DefaultDriver is the database/sql driver name used when none is configured.
	DefaultDriver = "odbc"
	// DefaultPort is the Informix onsoctcp port used when none is configured.
	DefaultPort = 9088
	// DefaultProtocol is the Informix network protocol.
	DefaultProtocol = "onsoctcp"
)

// Params holds Informix specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// DriverPath is the ODBC driver library (DRIVER=...)
	DriverPath string `mapstructure:"driver_path"`

	// Protocol: "onsoctcp", "olsoctcp", "onsocssl"
	Protocol string `mapstructure:"protocol"`

	// Server is the INFORMIXSERVER name
	Server string `mapstructure:"server"`

	// ClientLocale and DBLocale are passed to the client library (e.g., en_US.819)
	ClientLocale string `mapstructure:"client_locale"`
	DBLocale     string `mapstructure:"db_locale"`

	// Codeset names the encoding of text the driver hands back as bytes
	// (e.g., "8859-1", "cp1252"); empty means UTF-8
	Codeset string `mapstructure:"codeset"`
}

// Adapter implements the adapter.Adapter interface for Informix.
type Adapter struct {
	adapter.BaseSQLAdapter
	decoder *Decoder
}

// New creates a new Informix adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
		decoder:        utf8Decoder(),
	}
}

// Dialect returns the Informix dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return ifxdialect.Informix
}

// DecodeValue converts driver byte values to strings in the configured codeset.
func (a *Adapter) DecodeValue(v any) any {
	return a.decoder.DecodeValue(v)
}

// Connect establishes a connection to Informix.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	params, err := decodeParams(cfg.Params)
	if err != nil {
		return err
	}
	decoder, err := NewDecoder(params.Codeset)
	if err != nil {
		return err
	}

	driver := cfg.Driver
	if driver == "" {
		driver = DefaultDriver
	}

	a.Logger.Debug("connecting to informix", "driver", driver, "host", cfg.Host, "database", cfg.Database)

	db, err := sql.Open(driver, buildInformixDSN(cfg, params))
	if err != nil {
		return fmt.Errorf("failed to open informix connection (is the %q driver registered?): %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping informix: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	a.decoder = decoder
	return nil
}

// decodeParams reads Params from the free-form config map.
func decodeParams(raw map[string]any) (Params, error) {
	p := Params{Protocol: DefaultProtocol}
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
		return p, fmt.Errorf("invalid informix params: %w", err)
	}
	return p, nil
}

// buildInformixDSN constructs an ODBC-style connection string.
func buildInformixDSN(cfg adapter.Config, p Params) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}

	var b strings.Builder
	add := func(k, v string) {
		if v == "" {
			return
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(odbcValue(v))
		b.WriteByte(';')
	}
	add("DRIVER", p.DriverPath)
	add("DATABASE", cfg.Database)
	add("HOSTNAME", host)
	add("PORT", strconv.Itoa(port))
	add("PROTOCOL", p.Protocol)
	add("SERVER", p.Server)
	add("UID", cfg.Username)
	add("PWD", cfg.Password)
	add("CLIENT_LOCALE", p.ClientLocale)
	add("DB_LOCALE", p.DBLocale)
	return b.String()
}

// odbcValue braces values that contain separators.
func odbcValue(v string) string {
	if !strings.ContainsAny(v, ";{}= ") {
		return v
	}
	return "{" + strings.ReplaceAll(v, "}", "}}") + "}"
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
