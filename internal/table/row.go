package table

import (
	"fmt"

	"rsql/internal/column"
)

// SerializeRow lays values out column-wise into a fresh row_size buffer.
// values must align 1:1 with schema, including a placeholder at index 0 for
// the primary key column: column 0 is never written to the row payload
// since its value lives in the B+-Tree key instead. INTEGER values are
// written as their decimal ASCII representation, matching observed source
// behaviour rather than a fixed-width binary encoding.
func SerializeRow(schema column.Schema, rowSize uint32, values []string) ([]byte, error) {
	if len(values) != len(schema) {
		return nil, fmt.Errorf("table: %d values for %d columns", len(values), len(schema))
	}
	dst := make([]byte, rowSize)
	for i, col := range schema {
		if i == 0 {
			continue
		}
		b := []byte(values[i])
		if uint32(len(b)) > col.Size {
			b = b[:col.Size]
		}
		copy(dst[col.Offset:col.Offset+uint32(len(b))], b)
	}
	return dst, nil
}

// DeserializeRow reads a row_size buffer back into one string per column,
// trimming right-padded zero bytes. pk supplies column 0's value, since it
// is stored as the tree key rather than in the row bytes.
func DeserializeRow(schema column.Schema, row []byte, pk uint32) ([]string, error) {
	if uint32(len(row)) != schema.RowSize() {
		return nil, fmt.Errorf("table: row is %d bytes, schema wants %d", len(row), schema.RowSize())
	}
	values := make([]string, len(schema))
	values[0] = fmt.Sprintf("%d", pk)
	for i := 1; i < len(schema); i++ {
		col := schema[i]
		raw := row[col.Offset : col.Offset+col.Size]
		values[i] = trimTrailingZeros(raw)
	}
	return values, nil
}

func trimTrailingZeros(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end])
}

