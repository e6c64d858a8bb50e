package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"rsql/internal/column"
)

// columnMeta is one column's on-disk JSON shape: "INTEGER" or "TEXT(<n>)".
type columnMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type indexMeta struct {
	Name   string `json:"name"`
	Column string `json:"column"`
	Unique bool   `json:"unique"`
}

type tableMeta struct {
	Columns []columnMeta `json:"columns"`
	Indexes []indexMeta  `json:"indexes"`
}

type metadataDoc struct {
	Tables map[string]tableMeta `json:"tables"`
}

func encodeColumnType(t column.Type, size uint32) string {
	if t == column.Integer {
		return "INTEGER"
	}
	return fmt.Sprintf("TEXT(%d)", size)
}

func decodeColumnType(s string) (column.Type, uint32, error) {
	if s == "INTEGER" {
		return column.Integer, 4, nil
	}
	if strings.HasPrefix(s, "TEXT(") && strings.HasSuffix(s, ")") {
		n, err := strconv.Atoi(s[len("TEXT(") : len(s)-1])
		if err != nil || n <= 0 {
			return 0, 0, fmt.Errorf("catalog: invalid column type %q", s)
		}
		return column.Text, uint32(n), nil
	}
	return 0, 0, fmt.Errorf("catalog: invalid column type %q", s)
}

func schemaToMeta(schema column.Schema) []columnMeta {
	cols := make([]columnMeta, len(schema))
	for i, c := range schema {
		cols[i] = columnMeta{Name: c.Name, Type: encodeColumnType(c.Type, c.Size)}
	}
	return cols
}

func metaToDefs(cols []columnMeta) ([]column.ColumnDef, error) {
	defs := make([]column.ColumnDef, len(cols))
	for i, c := range cols {
		t, size, err := decodeColumnType(c.Type)
		if err != nil {
			return nil, err
		}
		defs[i] = column.ColumnDef{Name: c.Name, Type: t, Size: size}
	}
	return defs, nil
}

func metadataPath(dir string) string {
	return filepath.Join(dir, "metadata.json")
}

func loadMetadata(dir string) (metadataDoc, error) {
	data, err := os.ReadFile(metadataPath(dir))
	if err != nil {
		return metadataDoc{}, fmt.Errorf("catalog: read metadata: %w", err)
	}
	var doc metadataDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return metadataDoc{}, fmt.Errorf("catalog: decode metadata: %w", err)
	}
	if doc.Tables == nil {
		doc.Tables = make(map[string]tableMeta)
	}
	return doc, nil
}

func saveMetadata(dir string, doc metadataDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("catalog: encode metadata: %w", err)
	}
	if err := os.WriteFile(metadataPath(dir), data, 0600); err != nil {
		return fmt.Errorf("catalog: write metadata: %w", err)
	}
	return nil
}
