package dataset

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/c45/pkg/errors"
)

// NotFound is returned by HeaderIndex when no column carries the name.
const NotFound = -1

// Direction selects one side of a numeric threshold.
type Direction uint8

const (
	// GreaterOrEqual selects rows with value >= threshold.
	GreaterOrEqual Direction = iota
	// Less selects rows with value < threshold.
	Less
)

func (d Direction) String() string {
	if d == Less {
		return "<"
	}
	return ">="
}

func (d Direction) holds(v, threshold int) bool {
	if d == Less {
		return v < threshold
	}
	return v >= threshold
}

// Table is a rectangular dataset: a header naming each column plus data rows.
//
// Height counts the header row, so a table with n data rows has Height n+1.
// A column is numeric iff every data cell in it is Numeric; the flag is
// computed once by NewTable and carried unchanged into subsets.
type Table struct {
	header  []string
	numeric []bool
	rows    [][]Value
}

// NewTable validates and copies header and rows into a new Table.
// Header names are lower-cased. Every row must have len(header) cells and
// no cell may be Empty.
func NewTable(header []string, rows [][]Value) (*Table, error) {
	if len(header) == 0 {
		return nil, errors.NewValidationError("header", "must name at least one column", header)
	}
	t := &Table{
		header:  make([]string, len(header)),
		numeric: make([]bool, len(header)),
		rows:    make([][]Value, len(rows)),
	}
	for i, h := range header {
		t.header[i] = strings.ToLower(h)
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, errors.NewValidationError(
				fmt.Sprintf("rows[%d]", i),
				fmt.Sprintf("expected %d cells", len(header)),
				len(row),
			)
		}
		for c, v := range row {
			if v.IsEmpty() {
				return nil, errors.NewValidationError(
					fmt.Sprintf("rows[%d][%d]", i, c),
					"cell must be numeric or categorical",
					v.Kind(),
				)
			}
		}
		t.rows[i] = slices.Clone(row)
	}
	for c := range t.header {
		t.numeric[c] = true
		for _, row := range t.rows {
			if !row[c].IsNumeric() {
				t.numeric[c] = false
				break
			}
		}
	}
	return t, nil
}

// Height returns the number of rows including the header.
func (t *Table) Height() int { return len(t.rows) + 1 }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.header) }

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.rows) }

// HeaderIndex returns the column of attr. When several columns share the
// name the last one wins. It returns NotFound when attr is absent.
func (t *Table) HeaderIndex(attr string) int {
	attr = strings.ToLower(attr)
	index := NotFound
	for i, h := range t.header {
		if h == attr {
			index = i
		}
	}
	return index
}

// Attribute returns the header of column i.
func (t *Table) Attribute(i int) string { return t.header[i] }

// Attributes returns every header in column order, duplicates included.
func (t *Table) Attributes() []string { return slices.Clone(t.header) }

// AttributeSet returns the distinct headers in column order.
func (t *Table) AttributeSet() []string {
	seen := make(map[string]struct{}, len(t.header))
	out := make([]string, 0, len(t.header))
	for _, h := range t.header {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}

// IsNumeric reports whether attr names a numeric column. Unknown attributes
// are not numeric.
func (t *Table) IsNumeric(attr string) bool {
	c := t.HeaderIndex(attr)
	return c != NotFound && t.numeric[c]
}

// Row returns a copy of data row i (0-based, header excluded), all columns.
func (t *Table) Row(i int) []Value { return slices.Clone(t.rows[i]) }

// Cell returns the cell of data row i in column c.
func (t *Table) Cell(i, c int) Value { return t.rows[i][c] }

// Column returns a copy of attr's data cells, or nil if attr is absent.
func (t *Table) Column(attr string) []Value {
	c := t.HeaderIndex(attr)
	if c == NotFound {
		return nil
	}
	out := make([]Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[c]
	}
	return out
}

// DistinctValues returns the distinct cells of attr in first-seen row order.
func (t *Table) DistinctValues(attr string) []Value {
	c := t.HeaderIndex(attr)
	if c == NotFound {
		return nil
	}
	seen := make(map[Value]struct{})
	var out []Value
	for _, row := range t.rows {
		v := row[c]
		if v.IsEmpty() {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ValueCount returns the number of data rows whose attr cell equals v.
func (t *Table) ValueCount(attr string, v Value) int {
	c := t.HeaderIndex(attr)
	if c == NotFound {
		return 0
	}
	n := 0
	for _, row := range t.rows {
		if row[c].Equal(v) {
			n++
		}
	}
	return n
}

// numericColumn returns attr's integers after checking the column exists,
// is numeric and is non-empty.
func (t *Table) numericColumn(op, attr string) ([]int, error) {
	c := t.HeaderIndex(attr)
	if c == NotFound {
		return nil, errors.NewAttributeNotFoundError(op, attr)
	}
	if !t.numeric[c] {
		return nil, errors.NewAttributeTypeError(op, attr)
	}
	if len(t.rows) == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "%s(%s)", op, attr)
	}
	out := make([]int, len(t.rows))
	for i, row := range t.rows {
		out[i], _ = row[c].Int()
	}
	return out, nil
}

// Min returns the smallest value of a numeric attribute.
func (t *Table) Min(attr string) (int, error) {
	xs, err := t.numericColumn("Table.Min", attr)
	if err != nil {
		return 0, err
	}
	return slices.Min(xs), nil
}

// Max returns the largest value of a numeric attribute.
func (t *Table) Max(attr string) (int, error) {
	xs, err := t.numericColumn("Table.Max", attr)
	if err != nil {
		return 0, err
	}
	return slices.Max(xs), nil
}

// Mean returns the arithmetic mean of a numeric attribute.
func (t *Table) Mean(attr string) (float64, error) {
	xs, err := t.numericColumn("Table.Mean", attr)
	if err != nil {
		return 0, err
	}
	fs := make([]float64, len(xs))
	for i, x := range xs {
		fs[i] = float64(x)
	}
	return stat.Mean(fs, nil), nil
}

// Median returns the middle element of the sorted values, or for an even
// count the truncated integer average of the two middle elements.
func (t *Table) Median(attr string) (int, error) {
	xs, err := t.numericColumn("Table.Median", attr)
	if err != nil {
		return 0, err
	}
	slices.Sort(xs)
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2], nil
	}
	return (xs[n/2-1] + xs[n/2]) / 2, nil
}

// Range renders "min" when all values agree and "min - max" otherwise.
func (t *Table) Range(attr string) (string, error) {
	lo, err := t.Min(attr)
	if err != nil {
		return "", err
	}
	hi, err := t.Max(attr)
	if err != nil {
		return "", err
	}
	if lo == hi {
		return fmt.Sprintf("%d", hi), nil
	}
	return fmt.Sprintf("%d - %d", lo, hi), nil
}

// CountWhere counts data rows whose numeric attr satisfies dir against threshold.
func (t *Table) CountWhere(attr string, threshold int, dir Direction) (int, error) {
	xs, err := t.numericColumn("Table.CountWhere", attr)
	if err != nil {
		if errors.Is(err, errors.ErrEmptyData) {
			return 0, nil
		}
		return 0, err
	}
	n := 0
	for _, x := range xs {
		if dir.holds(x, threshold) {
			n++
		}
	}
	return n, nil
}

// SubsetByEquality returns a new Table holding the rows whose attr cell equals v.
// An absent attr yields an empty subset.
func (t *Table) SubsetByEquality(attr string, v Value) *Table {
	c := t.HeaderIndex(attr)
	return t.filter(func(row []Value) bool {
		return c != NotFound && row[c].Equal(v)
	})
}

// SubsetByThreshold returns a new Table holding the rows whose numeric attr
// satisfies dir against threshold.
func (t *Table) SubsetByThreshold(attr string, threshold int, dir Direction) (*Table, error) {
	c := t.HeaderIndex(attr)
	if c == NotFound {
		return nil, errors.NewAttributeNotFoundError("Table.SubsetByThreshold", attr)
	}
	if !t.numeric[c] {
		return nil, errors.NewAttributeTypeError("Table.SubsetByThreshold", attr)
	}
	return t.filter(func(row []Value) bool {
		x, _ := row[c].Int()
		return dir.holds(x, threshold)
	}), nil
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	return t.filter(func([]Value) bool { return true })
}

func (t *Table) filter(keep func([]Value) bool) *Table {
	sub := &Table{
		header:  slices.Clone(t.header),
		numeric: slices.Clone(t.numeric),
	}
	for _, row := range t.rows {
		if keep(row) {
			sub.rows = append(sub.rows, slices.Clone(row))
		}
	}
	return sub
}

// WithHeader returns a copy of t whose header names are replaced by header.
// Numeric flags are recomputed from t's own rows.
func (t *Table) WithHeader(header []string) (*Table, error) {
	if len(header) != len(t.header) {
		return nil, errors.NewValidationError("header", fmt.Sprintf("expected %d names", len(t.header)), len(header))
	}
	return NewTable(header, t.rows)
}

// String renders the table tab separated, header first.
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.header, "\t"))
	b.WriteByte('\n')
	for _, row := range t.rows {
		for i, v := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(v.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

type tableWire struct {
	Header  []string
	Numeric []bool
	Rows    [][]valueWire
}

// GobEncode implements gob.GobEncoder.
func (t *Table) GobEncode() ([]byte, error) {
	w := tableWire{Header: t.header, Numeric: t.numeric, Rows: make([][]valueWire, len(t.rows))}
	for i, row := range t.rows {
		w.Rows[i] = make([]valueWire, len(row))
		for j, v := range row {
			w.Rows[i][j] = valueWire{Kind: v.kind, Num: v.num, Str: v.str}
		}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, errors.Wrap(err, "encode table")
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (t *Table) GobDecode(data []byte) error {
	var w tableWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return errors.Wrap(err, "decode table")
	}
	if len(w.Numeric) != len(w.Header) {
		return errors.NewValueError("Table.GobDecode", "numeric flags do not match header")
	}
	rows := make([][]Value, len(w.Rows))
	for i, row := range w.Rows {
		if len(row) != len(w.Header) {
			return errors.NewValueError("Table.GobDecode", fmt.Sprintf("row %d has %d cells", i, len(row)))
		}
		rows[i] = make([]Value, len(row))
		for j, c := range row {
			rows[i][j] = Value{kind: c.Kind, num: c.Num, str: c.Str}
		}
	}
	*t = Table{header: w.Header, numeric: w.Numeric, rows: rows}
	return nil
}
