package beatmap

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Source is one traversal unit believed to hold a single beatmap.
//
// The analyzer only needs three capabilities: list the unit's immediate
// children, read a named child's bytes, and test whether a child
// exists. Loose folders, .osz archives on disk, and .osz entries
// materialized from inside a pack all satisfy the same interface, so
// the rest of the pipeline treats them identically.
type Source interface {
	// Name identifies the unit in diagnostics (a path or archive entry name).
	Name() string

	// List returns the names of the unit's immediate file children.
	List() ([]string, error)

	// ReadFile returns the raw bytes of a named child.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether a named child exists.
	Exists(name string) bool
}

// DirSource is a Source backed by a filesystem directory.
type DirSource struct {
	path string
}

// NewDirSource creates a Source for a beatmap folder on disk.
func NewDirSource(path string) *DirSource {
	return &DirSource{path: path}
}

// Name returns the directory path.
func (d *DirSource) Name() string {
	return d.path
}

// List returns the names of regular files directly inside the directory.
func (d *DirSource) List() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// ReadFile returns the bytes of a file inside the directory.
func (d *DirSource) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(d.path, name))
}

// Exists reports whether a file exists inside the directory.
func (d *DirSource) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(d.path, name))
	return err == nil
}

// ZipSource is a Source backed by a zip container, either an archive
// file on disk or an in-memory entry extracted from a pack.
type ZipSource struct {
	name   string
	files  map[string]*zip.File
	order  []string
	closer io.Closer
}

// OpenZipSource opens a single-map archive on disk.
//
// The caller must Close the source when done with it.
func OpenZipSource(path string) (*ZipSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}

	return newZipSource(path, zr, f), nil
}

// NewZipSourceFromBytes creates a Source over an archive held fully in
// memory, as produced when extracting a single-map entry from a pack.
// The buffer is released when the source goes out of scope; there is
// nothing to close.
func NewZipSourceFromBytes(name string, data []byte) (*ZipSource, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive entry %s: %w", name, err)
	}

	return newZipSource(name, zr, nil), nil
}

func newZipSource(name string, zr *zip.Reader, closer io.Closer) *ZipSource {
	src := &ZipSource{
		name:   name,
		files:  make(map[string]*zip.File, len(zr.File)),
		closer: closer,
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		src.files[f.Name] = f
		src.order = append(src.order, f.Name)
	}

	return src
}

// Name returns the archive path or pack entry name.
func (z *ZipSource) Name() string {
	return z.name
}

// List returns the archive's file entry names in archive order.
func (z *ZipSource) List() ([]string, error) {
	names := make([]string, len(z.order))
	copy(names, z.order)
	return names, nil
}

// ReadFile returns the decompressed bytes of a named entry.
func (z *ZipSource) ReadFile(name string) ([]byte, error) {
	f, ok := z.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: no entry %q", z.name, name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// Exists reports whether a named entry is present in the archive.
func (z *ZipSource) Exists(name string) bool {
	_, ok := z.files[name]
	return ok
}

// Close releases the underlying archive file, if any.
func (z *ZipSource) Close() error {
	if z.closer != nil {
		return z.closer.Close()
	}
	return nil
}
