// Package column describes the layout of a table's rows: one fixed-width
// slot per column, laid out back to back.
package column

import "fmt"

// Type is the logical storage type of a column.
type Type int

const (
	Integer Type = iota // 4 bytes, serialized as decimal ASCII (see row.go)
	Text                // N raw bytes, NUL-padded on the right
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "INTEGER"
	case Text:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// Column describes one column's name, type, and position within a row.
type Column struct {
	Name   string
	Type   Type
	Offset uint32
	Size   uint32
}

// Schema is an ordered list of columns. By convention column 0 is the
// table's primary key and is stored in the B+-Tree's key, not in the row
// payload.
type Schema []Column

// DefaultTextSize is the width a TEXT column declared without an explicit
// (n) falls back to.
const DefaultTextSize = 255

// Build assigns offsets to a list of (name, type, size) columns and returns
// the resulting Schema plus the total row size. size is ignored for
// Integer columns (always 4); for a TEXT column it defaults to
// DefaultTextSize when zero, matching a bare "TEXT" declaration with no
// explicit width.
func Build(defs []ColumnDef) (Schema, uint32, error) {
	if len(defs) == 0 {
		return nil, 0, fmt.Errorf("column: schema must have at least one column")
	}

	schema := make(Schema, 0, len(defs))
	var offset uint32
	for _, d := range defs {
		size := d.Size
		if d.Type == Integer {
			size = 4
		} else if size == 0 {
			size = DefaultTextSize
		}
		schema = append(schema, Column{
			Name:   d.Name,
			Type:   d.Type,
			Offset: offset,
			Size:   size,
		})
		offset += size
	}
	return schema, offset, nil
}

// ColumnDef is the input to Build: a column's name, type and (for TEXT) its
// declared byte width.
type ColumnDef struct {
	Name string
	Type Type
	Size uint32
}

// ByName finds a column by (case-sensitive) name.
func (s Schema) ByName(name string) (Column, bool) {
	for _, c := range s {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// RowSize returns the total row payload size: the sum of every column's
// byte width, including column 0 (the primary key), whose bytes are always
// zero since the key lives in the B+-Tree instead of the row.
func (s Schema) RowSize() uint32 {
	var total uint32
	for _, c := range s {
		total += c.Size
	}
	return total
}
