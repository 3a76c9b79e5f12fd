// Package file persists POS state as JSON documents on local disk. It is
// the durable backend for single-terminal deployments: carts survive
// restarts and budgets survive until they are loaded or removed. Malformed
// documents are treated as empty collections so a corrupted file never
// blocks reads; writes fail with an unavailable error when the directory
// cannot be written.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Error implements repositories.RepositoryError for disk-backed repositories.
type Error struct {
	op          string
	err         error
	notFound    bool
	unavailable bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.op, e.err)
	}
	return e.op
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// IsNotFound reports whether the error represents a missing record.
func (e *Error) IsNotFound() bool { return e != nil && e.notFound }

// IsConflict always reports false; the file backend has no concurrent writers.
func (e *Error) IsConflict() bool { return false }

// IsUnavailable reports whether the error represents an unwritable backend.
func (e *Error) IsUnavailable() bool { return e != nil && e.unavailable }

func notFoundError(op string, err error) *Error {
	return &Error{op: op, err: err, notFound: true}
}

func unavailableError(op string, err error) *Error {
	return &Error{op: op, err: err, unavailable: true}
}

// readDocument decodes the JSON file at path into out. A missing or
// unparseable file leaves out untouched and reports ok=false without error,
// so callers fall back to an empty collection.
func readDocument(path string, out any) (ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, unavailableError("file.read "+path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, nil
	}
	return true, nil
}

// writeDocument atomically replaces the JSON file at path.
func writeDocument(path string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return unavailableError("file.encode "+path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return unavailableError("file.mkdir "+path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return unavailableError("file.write "+path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return unavailableError("file.rename "+path, err)
	}
	return nil
}
