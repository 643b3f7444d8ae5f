package attach

import (
	"fmt"
	"os"
)

// Reader is the file system collaborator of the driver.
type Reader interface {
	ReadFile(path string) ([]byte, error)
}

// OSReader reads from the local file system.
type OSReader struct{}

// ReadFile implements Reader.
func (OSReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FileReadError is returned when a configuration file cannot be read.
type FileReadError struct {
	Path  string
	Cause error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Cause)
}

func (e *FileReadError) Unwrap() error { return e.Cause }

// WriteError is returned when a generated file cannot be written.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error { return e.Cause }
