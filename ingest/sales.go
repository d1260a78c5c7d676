/*
Package ingest validates external data files before they reach the domain
ledgers. The shift ledger trusts its inputs; everything questionable is
rejected here, with row numbers, so the UI can show a precise error.

SALES FILE FORMAT:
  Delimited text with the exact header

    productId,quantity,price,cost

  quantity: positive integer
  price:    non-negative decimal
  cost:     non-negative decimal

  Blank lines are skipped. Any malformed row fails the whole file; partial
  imports would make the reconciliation figures silently wrong.
*/
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fruitstand/backoffice/shiftledger"
)

// ErrEmptyFile is returned when the file has a header but no data rows.
var ErrEmptyFile = errors.New("sales file has no data rows")

// RowError reports the first malformed row of a sales file.
type RowError struct {
	Row    int // 1-based, counting the header as row 1
	Field  string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("sales file row %d: %s %s", e.Row, e.Field, e.Reason)
}

var salesHeader = []string{"productId", "quantity", "price", "cost"}

// ParseSales reads a sales CSV and returns validated lines, ready for
// shift reconciliation.
func ParseSales(r io.Reader) ([]shiftledger.SalesLine, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sales file header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var lines []shiftledger.SalesLine
	row := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("failed to read sales file row %d: %w", row, err)
		}

		line, err := parseLine(record, row)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}
	return lines, nil
}

func checkHeader(header []string) error {
	if len(header) != len(salesHeader) {
		return &RowError{Row: 1, Field: "header", Reason: fmt.Sprintf("expected %d columns, got %d", len(salesHeader), len(header))}
	}
	for i, want := range salesHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return &RowError{Row: 1, Field: "header", Reason: fmt.Sprintf("expected column %q, got %q", want, header[i])}
		}
	}
	return nil
}

func parseLine(record []string, row int) (shiftledger.SalesLine, error) {
	var line shiftledger.SalesLine

	line.ProductID = strings.TrimSpace(record[0])
	if line.ProductID == "" {
		return line, &RowError{Row: row, Field: "productId", Reason: "is required"}
	}

	qty, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return line, &RowError{Row: row, Field: "quantity", Reason: "is not an integer"}
	}
	if qty <= 0 {
		return line, &RowError{Row: row, Field: "quantity", Reason: "must be positive"}
	}
	line.Quantity = qty

	price, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return line, &RowError{Row: row, Field: "price", Reason: "is not a number"}
	}
	if price.IsNegative() {
		return line, &RowError{Row: row, Field: "price", Reason: "must not be negative"}
	}
	line.Price = price

	cost, err := decimal.NewFromString(strings.TrimSpace(record[3]))
	if err != nil {
		return line, &RowError{Row: row, Field: "cost", Reason: "is not a number"}
	}
	if cost.IsNegative() {
		return line, &RowError{Row: row, Field: "cost", Reason: "must not be negative"}
	}
	line.Cost = cost

	return line, nil
}
