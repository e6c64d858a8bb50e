package sindex

import (
	"path/filepath"
	"sort"
	"testing"

	"rsql/internal/pager"
)

func openTree(t *testing.T, unique bool) (*Tree, *pager.Pager) {
	t.Helper()
	p, err := pager.Open(filepath.Join(t.TempDir(), "idx.db"))
	if err != nil {
		t.Fatalf("pager.Open: %v", err)
	}
	tr, err := New(p, unique, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tr, p
}

func TestInsertAndFind(t *testing.T) {
	tr, _ := openTree(t, false)
	if err := tr.Insert("alice", 1); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tr.Insert("bob", 2); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	ids, err := tr.Find("alice")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected [1], got %v", ids)
	}
}

func TestDuplicateKeysAllowedWhenNotUnique(t *testing.T) {
	tr, _ := openTree(t, false)
	if err := tr.Insert("dup", 1); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tr.Insert("dup", 2); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	ids, err := tr.Find("dup")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("expected [1 2], got %v", ids)
	}
}

func TestUniqueIndexRejectsDuplicate(t *testing.T) {
	tr, _ := openTree(t, true)
	if err := tr.Insert("x", 1); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tr.Insert("x", 2); err != ErrUniqueViolation {
		t.Fatalf("expected ErrUniqueViolation, got %v", err)
	}
}

func TestDeleteRemovesMatchingEntryOnly(t *testing.T) {
	tr, _ := openTree(t, false)
	if err := tr.Insert("dup", 1); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tr.Insert("dup", 2); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tr.Delete("dup", 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	ids, err := tr.Find("dup")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("expected [2], got %v", ids)
	}
	if err := tr.Delete("dup", 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSelectAllSortedByKey(t *testing.T) {
	tr, _ := openTree(t, false)
	words := []string{"pear", "apple", "mango", "kiwi", "banana"}
	for i, w := range words {
		if err := tr.Insert(w, uint32(i)); err != nil {
			t.Fatalf("Insert(%s): %v", w, err)
		}
	}
	entries, err := tr.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if len(entries) != len(words) {
		t.Fatalf("expected %d entries, got %d", len(words), len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key > entries[i].Key {
			t.Fatalf("entries not sorted: %q before %q", entries[i-1].Key, entries[i].Key)
		}
	}
}

func TestSplitAcrossManyKeys(t *testing.T) {
	tr, _ := openTree(t, false)
	const n = 400
	for i := 0; i < n; i++ {
		key := NormalizeKeyForTest(i)
		if err := tr.Insert(key, uint32(i)); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	entries, err := tr.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if len(entries) != n {
		t.Fatalf("expected %d entries, got %d", n, len(entries))
	}
}

func TestRebuildReplacesContents(t *testing.T) {
	tr, _ := openTree(t, false)
	if err := tr.Insert("stale", 1); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tr.Rebuild([]Entry{{Key: "fresh", RowID: 7}}); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	entries, err := tr.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if len(entries) != 1 || entries[0].Key != "fresh" || entries[0].RowID != 7 {
		t.Fatalf("expected only the rebuilt entry, got %v", entries)
	}
}

// NormalizeKeyForTest produces distinct, lexicographically meaningful keys
// from an integer so SelectAll's sortedness can be checked across a split.
func NormalizeKeyForTest(i int) string {
	const digits = "0123456789"
	s := make([]byte, 4)
	for p := 3; p >= 0; p-- {
		s[p] = digits[i%10]
		i /= 10
	}
	return string(s)
}
