// Package fs provides file-based storage for discovered links.
package fs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/depthcrawl"
)

// Ensure LinkFile implements depthcrawl.LinkHandler at compile time.
var _ depthcrawl.LinkHandler = (*LinkFile)(nil)

// LinkFile writes discovered links to a text file, one per line, with
// atomic update semantics. Links are written to path.tmp and moved to path
// on Commit, so a failed crawl never replaces a previous result.
type LinkFile struct {
	path string

	mu   sync.Mutex
	file *os.File
	w    *bufio.Writer
}

// NewLinkFile creates a LinkFile targeting path. Nothing is written until
// the first link arrives.
func NewLinkFile(path string) *LinkFile {
	return &LinkFile{path: path}
}

func (f *LinkFile) tempPath() string {
	return f.path + ".tmp"
}

// HandleLink appends link as a new line.
func (f *LinkFile) HandleLink(_ context.Context, _ int, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.open(); err != nil {
		return err
	}
	if _, err := f.w.WriteString(link); err != nil {
		return err
	}
	return f.w.WriteByte('\n')
}

// open creates the temporary file on first use.
// Must be called with mu held.
func (f *LinkFile) open() error {
	if f.file != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	file, err := os.Create(f.tempPath())
	if err != nil {
		return fmt.Errorf("create %s: %w", f.tempPath(), err)
	}
	f.file = file
	f.w = bufio.NewWriter(file)
	return nil
}

// Commit flushes the written links and atomically replaces path.
// A crawl that found no links still produces an empty file.
func (f *LinkFile) Commit() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.open(); err != nil {
		return err
	}
	if err := f.w.Flush(); err != nil {
		return errors.Join(err, f.closeFile())
	}
	if err := f.closeFile(); err != nil {
		return err
	}

	return os.Rename(f.tempPath(), f.path)
}

// Abort discards the written links and leaves path untouched.
func (f *LinkFile) Abort() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	closeErr := f.closeFile()
	if err := os.Remove(f.tempPath()); err != nil && !os.IsNotExist(err) {
		return errors.Join(closeErr, err)
	}
	return closeErr
}

// Must be called with mu held.
func (f *LinkFile) closeFile() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	f.w = nil
	return err
}
