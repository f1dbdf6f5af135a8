package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/annbench/internal/conv"
)

const fieldSize = 4 // every on-disk field is 32 bits

// ReadNodes decodes a node dataset: a uint32 record count followed by
// fixed-width records of [categorical, timestamp, vector[Dimension]].
//
// The payload is read in a single bulk pass and decoded field by field;
// no raw memory reinterpretation is involved.
func ReadNodes(r io.Reader, s Schema) (*NodeCollection, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	payload, count, err := readPayload(r, s.NodeWidth())
	if err != nil {
		return nil, fmt.Errorf("read nodes: %w", err)
	}

	c := &NodeCollection{
		schema:      s,
		categorical: make([]float32, 0, count),
		timestamps:  make([]float32, 0, count),
		vectors:     make([]float32, 0, count*s.Dimension),
	}

	stride := s.NodeWidth() * fieldSize
	for i := 0; i < count; i++ {
		rec := payload[i*stride : (i+1)*stride]
		c.categorical = append(c.categorical, float32At(rec, 0))
		c.timestamps = append(c.timestamps, float32At(rec, 1))
		for j := 0; j < s.Dimension; j++ {
			c.vectors = append(c.vectors, float32At(rec, nodeAttrFields+j))
		}
	}

	return c, nil
}

// ReadQueries decodes a query dataset: a uint32 record count followed by
// fixed-width records of [type, categorical, lower, upper, vector].
func ReadQueries(r io.Reader, s Schema) (*QueryCollection, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	payload, count, err := readPayload(r, s.QueryWidth())
	if err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}

	c := &QueryCollection{
		schema:      s,
		types:       make([]QueryType, 0, count),
		categorical: make([]OptionalFilterValue, 0, count),
		lower:       make([]OptionalFilterValue, 0, count),
		upper:       make([]OptionalFilterValue, 0, count),
		vectors:     make([]float32, 0, count*s.Dimension),
	}

	stride := s.QueryWidth() * fieldSize
	for i := 0; i < count; i++ {
		rec := payload[i*stride : (i+1)*stride]

		qt, err := QueryTypeFromFloat32(float32At(rec, 0))
		if err != nil {
			return nil, fmt.Errorf("read queries: record %d: %w", i, err)
		}

		c.types = append(c.types, qt)
		c.categorical = append(c.categorical, OptionalFilterValue(float32At(rec, 1)))
		c.lower = append(c.lower, OptionalFilterValue(float32At(rec, 2)))
		c.upper = append(c.upper, OptionalFilterValue(float32At(rec, 3)))
		for j := 0; j < s.Dimension; j++ {
			c.vectors = append(c.vectors, float32At(rec, queryAttrFields+j))
		}
	}

	return c, nil
}

// readPayload reads the count header and the full record payload.
func readPayload(r io.Reader, width int) ([]byte, int, error) {
	var header [fieldSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, 0, fmt.Errorf("%w: missing count header", ErrTruncated)
		}
		return nil, 0, err
	}

	countU32 := binary.LittleEndian.Uint32(header[:])
	if countU32 == 0 {
		return nil, 0, ErrEmptyDataset
	}

	count, err := conv.Uint32ToInt(countU32)
	if err != nil {
		return nil, 0, err
	}

	size := uint64(count) * uint64(width) * fieldSize
	if size > uint64(math.MaxInt) {
		return nil, 0, fmt.Errorf("payload size %d exceeds addressable memory", size)
	}

	payload := make([]byte, int(size))
	if n, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, 0, fmt.Errorf("%w: declared %d records (%d bytes), got %d bytes",
				ErrTruncated, count, size, n)
		}
		return nil, 0, err
	}

	return payload, count, nil
}

func float32At(rec []byte, field int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(rec[field*fieldSize:]))
}

func putFloat32(buf []byte, field int, v float32) {
	binary.LittleEndian.PutUint32(buf[field*fieldSize:], math.Float32bits(v))
}

// WriteNodes encodes a node collection in the on-disk layout, count
// header included. Writing an empty collection produces a valid file
// containing only the zero header.
func WriteNodes(w io.Writer, c *NodeCollection) error {
	count, err := conv.IntToUint32(c.Len())
	if err != nil {
		return err
	}

	var header [fieldSize]byte
	binary.LittleEndian.PutUint32(header[:], count)
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	rec := make([]byte, c.schema.NodeWidth()*fieldSize)
	for i := 0; i < c.Len(); i++ {
		putFloat32(rec, 0, c.categorical[i])
		putFloat32(rec, 1, c.timestamps[i])
		for j, v := range c.Vector(i) {
			putFloat32(rec, nodeAttrFields+j, v)
		}
		if _, err := w.Write(rec); err != nil {
			return err
		}
	}

	return nil
}

// WriteRows encodes raw float rows in the on-disk layout, count header
// included. All rows must share the vector length of the first row;
// zero rows produce a header-only file.
func WriteRows(w io.Writer, rows [][]float32) error {
	count, err := conv.IntToUint32(len(rows))
	if err != nil {
		return err
	}

	var header [fieldSize]byte
	binary.LittleEndian.PutUint32(header[:], count)
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	width := len(rows[0])
	buf := make([]byte, width*fieldSize)
	for i, row := range rows {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d, first row has %d", ErrVectorLengthMismatch, i, len(row), width)
		}
		for j, v := range row {
			putFloat32(buf, j, v)
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	return nil
}
