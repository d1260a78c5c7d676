package ingest_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruitstand/backoffice/ingest"
)

func TestParseSales_ValidFile(t *testing.T) {
	input := `productId,quantity,price,cost
apples,10,2.5,1.0
bananas,3,1.25,0.40
`
	lines, err := ingest.ParseSales(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "apples", lines[0].ProductID)
	assert.Equal(t, 10, lines[0].Quantity)
	assert.True(t, lines[0].Price.Equal(decimal.NewFromFloat(2.5)))
	assert.True(t, lines[0].Cost.Equal(decimal.NewFromFloat(1.0)))

	assert.Equal(t, "bananas", lines[1].ProductID)
}

func TestParseSales_HeaderMismatch(t *testing.T) {
	input := `sku,quantity,price,cost
apples,10,2.5,1.0
`
	_, err := ingest.ParseSales(strings.NewReader(input))
	var rowErr *ingest.RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 1, rowErr.Row)
	assert.Equal(t, "header", rowErr.Field)
}

func TestParseSales_RejectsBadRows(t *testing.T) {
	cases := []struct {
		name  string
		row   string
		field string
	}{
		{"missing product id", `,10,2.5,1.0`, "productId"},
		{"non-integer quantity", `apples,ten,2.5,1.0`, "quantity"},
		{"zero quantity", `apples,0,2.5,1.0`, "quantity"},
		{"negative quantity", `apples,-2,2.5,1.0`, "quantity"},
		{"non-numeric price", `apples,10,abc,1.0`, "price"},
		{"negative price", `apples,10,-2.5,1.0`, "price"},
		{"non-numeric cost", `apples,10,2.5,abc`, "cost"},
		{"negative cost", `apples,10,2.5,-1.0`, "cost"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := "productId,quantity,price,cost\n" + tc.row + "\n"
			_, err := ingest.ParseSales(strings.NewReader(input))
			var rowErr *ingest.RowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, 2, rowErr.Row)
			assert.Equal(t, tc.field, rowErr.Field)
		})
	}
}

func TestParseSales_EmptyFile(t *testing.T) {
	_, err := ingest.ParseSales(strings.NewReader(""))
	assert.ErrorIs(t, err, ingest.ErrEmptyFile)

	_, err = ingest.ParseSales(strings.NewReader("productId,quantity,price,cost\n"))
	assert.ErrorIs(t, err, ingest.ErrEmptyFile)
}

func TestParseSales_WholeFileFailsOnOneBadRow(t *testing.T) {
	// No partial imports: a bad third row rejects the good first two.
	input := `productId,quantity,price,cost
apples,10,2.5,1.0
bananas,3,1.25,0.40
oranges,-1,3.0,1.5
`
	_, err := ingest.ParseSales(strings.NewReader(input))
	var rowErr *ingest.RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 4, rowErr.Row)
}
