package pager

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.db")

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if p.NumPages() != 0 {
		t.Errorf("expected 0 pages, got %d", p.NumPages())
	}
}

func TestGetPageOutOfBounds(t *testing.T) {
	dir := t.TempDir()
	p, err := Open(filepath.Join(dir, "oob.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if _, err := p.GetPage(MaxPages); err == nil {
		t.Errorf("expected error requesting page at MaxPages")
	}
}

func TestGetPageAllocatesAndFlushes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alloc.db")

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	page, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if p.NumPages() != 1 {
		t.Errorf("expected NumPages()=1 after touching page 0, got %d", p.NumPages())
	}

	page.Data[0] = 0xAB
	page.Data[PageSize-1] = 0xCD

	if err := p.Flush(0); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != PageSize {
		t.Fatalf("expected file length %d, got %d", PageSize, len(data))
	}
	if data[0] != 0xAB || data[PageSize-1] != 0xCD {
		t.Errorf("unexpected flushed bytes: first=0x%X last=0x%X", data[0], data[PageSize-1])
	}
}

func TestLoadExistingPage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exist.db")

	buf := make([]byte, PageSize)
	for i := range buf {
		buf[i] = 0x01
	}
	if err := os.WriteFile(path, buf, 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if p.NumPages() != 1 {
		t.Errorf("expected 1 page on open, got %d", p.NumPages())
	}
	page, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if page.Data[0] != 0x01 || page.Data[PageSize-1] != 0x01 {
		t.Errorf("unexpected bytes in loaded page")
	}
}

func TestPartialPageRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.db")

	buf := make([]byte, 100)
	for i := range buf {
		buf[i] = 0xAA
	}
	if err := os.WriteFile(path, buf, 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	page, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	for i := 0; i < 100; i++ {
		if page.Data[i] != 0xAA {
			t.Fatalf("byte %d: expected 0xAA, got 0x%X", i, page.Data[i])
		}
	}
	if page.Data[100] != 0 {
		t.Errorf("expected zero padding past EOF, got 0x%X", page.Data[100])
	}
}

func TestGetPageReturnsSameInstance(t *testing.T) {
	dir := t.TempDir()
	p, err := Open(filepath.Join(dir, "same.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	first, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	second, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if first != second {
		t.Errorf("GetPage returned distinct instances for the same page number")
	}
}

func TestClearDropsCacheAndResetsNumPages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clear.db")

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	page, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	page.Data[0] = 0x42
	// Never flushed: on disk the file is still empty.

	if err := p.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if p.NumPages() != 0 {
		t.Errorf("expected NumPages()=0 after clearing an unflushed page, got %d", p.NumPages())
	}

	reloaded, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage after clear: %v", err)
	}
	if reloaded.Data[0] != 0 {
		t.Errorf("expected rollback to discard unflushed mutation, got 0x%X", reloaded.Data[0])
	}
}

func TestResetTruncatesFileAndCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reset.db")

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	page, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	page.Data[0] = 0x7F
	if err := p.Flush(0); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if err := p.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if p.NumPages() != 0 {
		t.Errorf("expected NumPages()=0 after Reset, got %d", p.NumPages())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected truncated file, got %d bytes", len(data))
	}
}
