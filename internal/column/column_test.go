package column

import "testing"

func TestBuildAssignsSequentialOffsets(t *testing.T) {
	schema, rowSize, err := Build([]ColumnDef{
		{Name: "id", Type: Integer},
		{Name: "name", Type: Text, Size: 16},
		{Name: "bio", Type: Text, Size: 32},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rowSize != 4+16+32 {
		t.Fatalf("unexpected row size %d", rowSize)
	}
	want := []struct {
		offset, size uint32
	}{{0, 4}, {4, 16}, {20, 32}}
	for i, w := range want {
		if schema[i].Offset != w.offset || schema[i].Size != w.size {
			t.Fatalf("column %d: got offset=%d size=%d, want offset=%d size=%d",
				i, schema[i].Offset, schema[i].Size, w.offset, w.size)
		}
	}
}

func TestBuildDefaultsBareTextToDefaultSize(t *testing.T) {
	schema, _, err := Build([]ColumnDef{
		{Name: "id", Type: Integer},
		{Name: "notes", Type: Text},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if schema[1].Size != DefaultTextSize {
		t.Fatalf("expected bare TEXT to default to %d bytes, got %d", DefaultTextSize, schema[1].Size)
	}
}

func TestBuildRejectsEmptySchema(t *testing.T) {
	if _, _, err := Build(nil); err == nil {
		t.Fatalf("expected error for an empty column list")
	}
}

func TestByNameAndNames(t *testing.T) {
	schema, _, err := Build([]ColumnDef{
		{Name: "id", Type: Integer},
		{Name: "email", Type: Text, Size: 64},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	col, ok := schema.ByName("email")
	if !ok || col.Offset != 4 {
		t.Fatalf("ByName(email): got %+v, ok=%v", col, ok)
	}
	if _, ok := schema.ByName("missing"); ok {
		t.Fatalf("expected ByName(missing) to fail")
	}
	if names := schema.Names(); len(names) != 2 || names[0] != "id" || names[1] != "email" {
		t.Fatalf("unexpected Names(): %v", names)
	}
}
