package png

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// FileRef loads file contents for a Carrier.
type FileRef interface {
	Name() string
	Size() (int64, error)
	Read(n int64) ([]byte, error)
}

var (
	errIsDirectory = errors.New("is a directory")
	errNotRegular  = errors.New("is not a regular file")
	errBadSize     = errors.New("invalid file size")
)

// OSFile is a FileRef for a regular file on the local filesystem.
type OSFile struct {
	path string
}

// NewOSFile checks that path names an existing regular file.
func NewOSFile(path string) (*OSFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &IOError{Path: path, Op: "stat", Err: err}
	}
	if info.IsDir() {
		return nil, &IOError{Path: path, Op: "open", Err: errIsDirectory}
	}
	if !info.Mode().IsRegular() {
		return nil, &IOError{Path: path, Op: "open", Err: errNotRegular}
	}
	return &OSFile{path: path}, nil
}

func (f *OSFile) Name() string {
	return f.path
}

func (f *OSFile) Size() (int64, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		return 0, &IOError{Path: f.path, Op: "stat", Err: err}
	}
	return info.Size(), nil
}

// Read returns the first n bytes of the file. A file shorter than n is an
// error, not a short result.
func (f *OSFile) Read(n int64) ([]byte, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, &IOError{Path: f.path, Op: "open", Err: err}
	}
	defer file.Close()

	size, err := f.Size()
	if err != nil {
		return nil, err
	}
	if n <= 0 || n > size {
		return nil, &IOError{Path: f.path, Op: "read", Err: fmt.Errorf("%w: want %d of %d bytes", errBadSize, n, size)}
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(file, buf); err != nil {
		return nil, &IOError{Path: f.path, Op: "read", Err: err}
	}
	return buf, nil
}
