package domain

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Table is an in-memory tabular dataset: named columns in source order,
// ordered rows of string values. A Table is never mutated after
// construction; filtering produces a new Table sharing the backing rows.
type Table struct {
	columns []string
	rows    [][]string
	index   map[string]int
}

// NewTable builds a Table from a header and data rows. Rows shorter than
// the header are kept as-is; value lookups past a row's end return empty.
func NewTable(columns []string, rows [][]string) Table {
	return Table{
		columns: columns,
		rows:    rows,
		index:   buildColumnIndex(columns),
	}
}

func buildColumnIndex(columns []string) map[string]int {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

// Len reports the number of data rows.
func (t Table) Len() int {
	return len(t.rows)
}

// Empty reports whether the Table has no data rows.
func (t Table) Empty() bool {
	return len(t.rows) == 0
}

// Columns returns the header in source order.
func (t Table) Columns() []string {
	return t.columns
}

// Column resolves a column name case-insensitively to its position.
func (t Table) Column(name string) (int, bool) {
	i, ok := t.index[strings.ToLower(strings.TrimSpace(name))]
	return i, ok
}

// Value returns the value at (row, column position). Out-of-range
// coordinates return the empty string.
func (t Table) Value(row, col int) string {
	if row < 0 || row >= len(t.rows) {
		return ""
	}
	r := t.rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Select returns a new Table containing the rows for which keep is true.
// keep must be as long as the Table.
func (t Table) Select(keep []bool) Table {
	rows := make([][]string, 0, len(t.rows))
	for i, row := range t.rows {
		if i < len(keep) && keep[i] {
			rows = append(rows, row)
		}
	}
	return NewTable(t.columns, rows)
}

// SessionKeys extracts the integer session_key column, resolved
// case-insensitively. Rows without a parseable key are skipped.
func (t Table) SessionKeys() []int {
	col, ok := t.Column("session_key")
	if !ok {
		return nil
	}

	keys := make([]int, 0, len(t.rows))
	for i := range t.rows {
		key, err := strconv.Atoi(strings.TrimSpace(t.Value(i, col)))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// DecodeCSV parses delimited tabular text into a Table. A body that is
// empty after trimming whitespace decodes to an empty Table; malformed
// content is an error.
func DecodeCSV(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, errors.Wrap(err, "read tabular body")
	}
	if strings.TrimSpace(string(data)) == "" {
		return Table{}, nil
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		return Table{}, errors.Wrap(err, "parse tabular body")
	}
	if len(records) == 0 {
		return Table{}, nil
	}

	return NewTable(records[0], records[1:]), nil
}

// EncodeCSV writes the Table as delimited text, with the header row only
// when withHeader is set.
func (t Table) EncodeCSV(w io.Writer, withHeader bool) error {
	cw := csv.NewWriter(w)
	if withHeader {
		if err := cw.Write(t.columns); err != nil {
			return errors.Wrap(err, "write header row")
		}
	}
	for _, row := range t.rows {
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "write data row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush rows")
}
