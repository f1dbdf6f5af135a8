package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
)

// PadID fills result slots when fewer than K candidates qualify.
const PadID uint32 = 0

// ResultSet collects one fixed-width identifier row per query, in query
// order. Row width is asserted once at append time rather than being
// baked into the type.
type ResultSet struct {
	k    int
	rows [][]uint32
}

// NewResultSet creates a result set for rows of k identifiers, with
// capacity for n rows.
func NewResultSet(k, n int) *ResultSet {
	return &ResultSet{k: k, rows: make([][]uint32, 0, n)}
}

// K returns the row width.
func (r *ResultSet) K() int { return r.k }

// Len returns the number of rows.
func (r *ResultSet) Len() int { return len(r.rows) }

// Append adds a row. The row is retained, not copied.
func (r *ResultSet) Append(row []uint32) error {
	if len(row) != r.k {
		return fmt.Errorf("result row has %d identifiers, want %d", len(row), r.k)
	}
	r.rows = append(r.rows, row)
	return nil
}

// Row returns a checked view of row i. Callers must not modify it.
func (r *ResultSet) Row(i int) ([]uint32, error) {
	if i < 0 || i >= len(r.rows) {
		return nil, &ErrIndexOutOfRange{Kind: "result", Index: i, Len: len(r.rows)}
	}
	return r.rows[i], nil
}

// WriteResults encodes the rows verbatim as consecutive little-endian
// uint32 identifiers. No header is written; row width and count are
// assumed known by the consumer.
func WriteResults(w io.Writer, r *ResultSet) error {
	buf := make([]byte, r.k*fieldSize)
	for _, row := range r.rows {
		for j, id := range row {
			binary.LittleEndian.PutUint32(buf[j*fieldSize:], id)
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// ReadResults decodes n rows of k identifiers each.
func ReadResults(rd io.Reader, k, n int) (*ResultSet, error) {
	rs := NewResultSet(k, n)
	buf := make([]byte, k*fieldSize)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(rd, buf); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("%w: expected %d result rows, failed at row %d", ErrTruncated, n, i)
			}
			return nil, err
		}
		row := make([]uint32, k)
		for j := range row {
			row[j] = binary.LittleEndian.Uint32(buf[j*fieldSize:])
		}
		if err := rs.Append(row); err != nil {
			return nil, err
		}
	}
	return rs, nil
}
