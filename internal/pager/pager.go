// Package pager owns a table or index's backing file and a bounded page
// cache, hydrating pages from disk on demand and writing them back on
// request.
package pager

import (
	"fmt"
	"io"
	"os"
)

const (
	// PageSize is the fixed size of every page in a table or index file.
	PageSize = 4096
	// MaxPages bounds how many pages a single file may grow to.
	MaxPages = 100
)

// Page is one 4 KiB block of a table or index file, cached in memory.
type Page struct {
	Data [PageSize]byte
}

// Pager caches pages of a single backing file, up to MaxPages slots.
type Pager struct {
	file       *os.File
	pages      [MaxPages]*Page
	numPages   uint32
	fileLength int64
}

// Open creates the backing file if it does not exist and derives the
// current page count from its length.
func Open(path string) (*Pager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("pager: open %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pager: stat %s: %w", path, err)
	}
	length := fi.Size()
	return &Pager{
		file:       f,
		numPages:   uint32(length / PageSize),
		fileLength: length,
	}, nil
}

// NumPages reports how many pages the pager currently knows about,
// including pages that exist only in the cache pending a flush.
func (p *Pager) NumPages() uint32 {
	return p.numPages
}

// GetPage returns a mutable reference to page n, hydrating it from disk on
// first access. If n is beyond the current page count, the count advances
// to n+1 and the page starts out zeroed (this is how new pages are
// "allocated": callers ask for the next page number and get a fresh page).
func (p *Pager) GetPage(n uint32) (*Page, error) {
	if n >= MaxPages {
		return nil, fmt.Errorf("pager: page %d exceeds max pages %d", n, MaxPages)
	}
	if p.pages[n] == nil {
		page := &Page{}
		offset := int64(n) * PageSize
		if offset < p.fileLength {
			if _, err := p.file.ReadAt(page.Data[:], offset); err != nil && err != io.EOF {
				return nil, fmt.Errorf("pager: read page %d: %w", n, err)
			}
		}
		p.pages[n] = page
		if n >= p.numPages {
			p.numPages = n + 1
		}
	}
	return p.pages[n], nil
}

// Flush writes page n's cached buffer back to disk. It is a no-op if the
// page was never brought into the cache.
func (p *Pager) Flush(n uint32) error {
	page := p.pages[n]
	if page == nil {
		return nil
	}
	offset := int64(n) * PageSize
	if _, err := p.file.WriteAt(page.Data[:], offset); err != nil {
		return fmt.Errorf("pager: flush page %d: %w", n, err)
	}
	if end := offset + PageSize; end > p.fileLength {
		p.fileLength = end
	}
	return nil
}

// FlushAll flushes every cached page in [0, NumPages).
func (p *Pager) FlushAll() error {
	for i := uint32(0); i < p.numPages; i++ {
		if err := p.Flush(i); err != nil {
			return err
		}
	}
	return nil
}

// Clear drops every cached page and resets the page count from the file's
// on-disk length, discarding any buffered-but-unflushed mutations. This is
// what makes ROLLBACK work: subsequent GetPage calls re-hydrate from disk.
func (p *Pager) Clear() error {
	fi, err := p.file.Stat()
	if err != nil {
		return fmt.Errorf("pager: stat during clear: %w", err)
	}
	for i := range p.pages {
		p.pages[i] = nil
	}
	p.fileLength = fi.Size()
	p.numPages = uint32(p.fileLength / PageSize)
	return nil
}

// Reset truncates the backing file to zero length and drops the cache,
// used when a secondary index is rebuilt from scratch.
func (p *Pager) Reset() error {
	if err := p.file.Truncate(0); err != nil {
		return fmt.Errorf("pager: truncate: %w", err)
	}
	for i := range p.pages {
		p.pages[i] = nil
	}
	p.fileLength = 0
	p.numPages = 0
	return nil
}

// Close flushes every cached page and closes the backing file.
func (p *Pager) Close() error {
	if err := p.FlushAll(); err != nil {
		return err
	}
	return p.file.Close()
}

// FileLength reports the backing file's length as of the last flush or
// clear.
func (p *Pager) FileLength() int64 {
	return p.fileLength
}
