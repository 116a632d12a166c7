package informix

import (
	"github.com/leapstack-labs/sqlconnect/pkg/dialect"
)

func init() {
	dialect.Register(Informix)
}

// Informix is the Informix dialect. Identifiers are never quoted: quoted
// identifiers need DELIMIDENT on the client.
var Informix = dialect.New(Config).
	WithCatalog(Catalog{}).
	Build()
