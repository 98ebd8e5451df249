package extractor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// StorageError scratch buffer create/read/delete failure
type StorageError struct {
	Op    string
	Path  string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("scratch buffer %s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// ScratchBuffer on-disk copy of a response body, alive for a single scan
type ScratchBuffer struct {
	path string
}

// RemoveIfExists deletes path; a missing file is not an error.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return &StorageError{Op: "delete", Path: path, Cause: err}
}

// CreateScratch clears any stale buffer at path and writes body to a fresh one.
// On a failed write the partial file is removed before returning.
func CreateScratch(path, body string) (*ScratchBuffer, error) {
	if err := RemoveIfExists(path); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, &StorageError{Op: "create", Path: path, Cause: err}
	}
	buf := &ScratchBuffer{path: path}

	_, werr := f.WriteString(body)
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = buf.Remove()
		return nil, &StorageError{Op: "write", Path: path, Cause: werr}
	}
	return buf, nil
}

// Path returns the buffer location
func (b *ScratchBuffer) Path() string {
	return b.path
}

// Open returns a reader over the buffer; the caller closes it.
func (b *ScratchBuffer) Open() (*os.File, error) {
	f, err := os.Open(b.path)
	if err != nil {
		return nil, &StorageError{Op: "open", Path: b.path, Cause: err}
	}
	return f, nil
}

// Remove deletes the buffer. Safe to call more than once.
func (b *ScratchBuffer) Remove() error {
	return RemoveIfExists(b.path)
}
