package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlconnect/pkg/core"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in   string
		want core.Dialect
	}{
		{"informix", core.DialectInformix},
		{"IFX", core.DialectInformix},
		{"postgres", core.DialectPostgres},
		{"postgresql", core.DialectPostgres},
		{" pg ", core.DialectPostgres},
		{"sqlserver", core.DialectSQLServer},
		{"mssql", core.DialectSQLServer},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := core.ParseDialect(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := core.ParseDialect("oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown dialect "oracle"`)
}

func TestDialect_Text(t *testing.T) {
	for _, d := range core.Dialects {
		text, err := d.MarshalText()
		require.NoError(t, err)

		var back core.Dialect
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, d, back)
	}

	assert.Equal(t, "unknown", core.DialectUnknown.String())

	var d core.Dialect
	assert.Error(t, d.UnmarshalText([]byte("db2")))
}

func TestPlaceholderStyle_Format(t *testing.T) {
	assert.Equal(t, "?", core.PlaceholderQuestion.Format(3))
	assert.Equal(t, "$3", core.PlaceholderDollar.Format(3))
	assert.Equal(t, "@p3", core.PlaceholderAtP.Format(3))
}

func TestParseTableName(t *testing.T) {
	tests := []struct {
		in            string
		defaultSchema string
		want          core.TableName
		str           string
	}{
		{"orders", "public", core.TableName{Schema: "public", Name: "orders"}, "public.orders"},
		{"sales.orders", "public", core.TableName{Schema: "sales", Name: "orders"}, "sales.orders"},
		{"orders", "", core.TableName{Name: "orders"}, "orders"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := core.ParseTableName(tt.in, tt.defaultSchema)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.str, got.String())
		})
	}
}

func TestParseCanonicalType(t *testing.T) {
	tests := []struct {
		in   string
		want core.CanonicalType
	}{
		{"", core.TypeString},
		{"string", core.TypeString},
		{"number", core.TypeNumber},
		{"Date", core.TypeDate},
		{"Datetime", core.TypeDateTime},
		{"boolean", core.TypeBoolean},
		{"LIST", core.TypeList},
		{"set", core.TypeSet},
		{"multiset", core.TypeMultiSet},
		{"geometry", core.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, core.ParseCanonicalType(tt.in))
		})
	}
}

func TestCanonicalType_IsCollection(t *testing.T) {
	for _, ct := range core.CanonicalTypes {
		want := ct == core.TypeList || ct == core.TypeSet || ct == core.TypeMultiSet
		assert.Equal(t, want, ct.IsCollection(), ct.String())
	}
}
