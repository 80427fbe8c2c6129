// =============================================================================
// YPBank Transaction Tools - Resource Utility
// =============================================================================
//
// This module provides the byte endpoints the CLI reads from and writes to:
//
//   console       standard input when reading, standard output when writing
//   file:<path>   a file on disk, created or truncated when writing
//
// OWNERSHIP:
//   Every handle returned here is owned by the caller that opened it and must
//   be closed with defer on every path. Closing a console handle is a no-op so
//   the process streams stay open.
//
// =============================================================================

package utils

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/ginjaninja78/ypbank-tools/internal/types"
)

const filePrefix = "file:"

// Stdin and Stdout back the console resource. Tests replace them.
var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
)

// ErrInvalidResource is returned by ParseResource for unrecognised syntax.
var ErrInvalidResource = errors.New("resource must be 'console' or 'file:<path>'")

// =============================================================================
// RESOURCE
// =============================================================================

// ResourceKind tells console and file resources apart.
type ResourceKind int

const (
	// Console reads standard input and writes standard output.
	Console ResourceKind = iota
	// File reads or writes a path on disk.
	File
)

// Resource is a parsed CLI resource argument.
type Resource struct {
	Kind ResourceKind

	// Path is set for File resources only.
	Path string
}

// ConsoleResource returns the console resource.
func ConsoleResource() Resource {
	return Resource{Kind: Console}
}

// FileResource returns a resource for path.
func FileResource(path string) Resource {
	return Resource{Kind: File, Path: path}
}

// ParseResource parses "console" or "file:<path>".
//
// RETURNS:
//   - The parsed resource.
//   - ErrInvalidResource for any other syntax, or an error naming the
//     argument when the path after "file:" is empty.
func ParseResource(s string) (Resource, error) {
	if s == "console" {
		return ConsoleResource(), nil
	}

	path, ok := strings.CutPrefix(s, filePrefix)
	if !ok {
		return Resource{}, ErrInvalidResource
	}
	if path == "" {
		return Resource{}, errors.Errorf("empty file path in resource %q", s)
	}

	return FileResource(path), nil
}

// String renders the resource back in CLI syntax.
func (r Resource) String() string {
	if r.Kind == File {
		return filePrefix + r.Path
	}
	return "console"
}

// IsConsole reports whether r is the console resource.
func (r Resource) IsConsole() bool {
	return r.Kind == Console
}

// =============================================================================
// OPENING HANDLES
// =============================================================================

// OpenReader opens the resource for reading.
//
// RETURNS:
//   - A reader whose Close releases the file, or does nothing for console.
//   - A decode error carrying the OS message if the file cannot be opened.
func (r Resource) OpenReader() (io.ReadCloser, error) {
	if r.IsConsole() {
		return io.NopCloser(Stdin), nil
	}

	file, err := os.Open(r.Path)
	if err != nil {
		return nil, types.NewDecodeErrorf("failed to open %s: %v", r.Path, err)
	}

	return &bufferedFile{Reader: bufio.NewReader(file), Closer: file}, nil
}

// OpenWriter opens the resource for writing, creating or truncating files.
//
// RETURNS:
//   - A writer whose Close releases the file, or does nothing for console.
//   - An encode error carrying the OS message if the file cannot be created.
func (r Resource) OpenWriter() (io.WriteCloser, error) {
	if r.IsConsole() {
		return nopWriteCloser{Writer: Stdout}, nil
	}

	file, err := os.Create(r.Path)
	if err != nil {
		return nil, types.NewEncodeErrorf("failed to create %s: %v", r.Path, err)
	}

	return file, nil
}

// =============================================================================
// HANDLE WRAPPERS
// =============================================================================

type bufferedFile struct {
	*bufio.Reader
	io.Closer
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
