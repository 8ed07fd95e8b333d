package page

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSet names the single data file of one type.
type FileSet interface {
	Path() string
}

var _ FileSet = (*LocalFileSet)(nil)

// LocalFileSet maps a type to "<Dir>/<Base>.dat".
type LocalFileSet struct {
	Dir  string
	Base string
}

func (fs LocalFileSet) Path() string {
	return filepath.Join(fs.Dir, fs.Base+".dat")
}

// Store reads and writes pages of per-type data files. It keeps no state
// of its own: every load re-reads from storage.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// LoadPage reads page pageNo from the file set. A missing file, or a
// page offset with fewer than HeaderSize readable bytes, yields
// (nil, false, nil) rather than an error. Short reads past the header
// are zero-filled to a full page.
func (s *Store) LoadPage(fs FileSet, pageNo uint32) (*Page, bool, error) {
	f, err := os.Open(fs.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("page: open %s: %w", fs.Path(), err)
	}
	defer f.Close()

	buf := make([]byte, PageSize)
	n, err := f.ReadAt(buf, int64(pageNo)*PageSize)
	if err != nil && err != io.EOF {
		return nil, false, fmt.Errorf("page: read %s page %d: %w", fs.Path(), pageNo, err)
	}
	if n < HeaderSize {
		return nil, false, nil
	}
	for i := n; i < PageSize; i++ {
		buf[i] = 0
	}
	return &Page{Buf: buf}, true, nil
}

// SavePage writes the page at its offset, creating the file and
// zero-extending it to (pageNo+1)*PageSize first when needed. One
// seek+write, no fsync.
func (s *Store) SavePage(fs FileSet, pageNo uint32, p *Page) error {
	if len(p.Buf) != PageSize {
		return ErrWrongSize
	}

	path := fs.Path()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, FileMode0755); err != nil {
			return fmt.Errorf("page: mkdir %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, FileMode0644)
	if err != nil {
		return fmt.Errorf("page: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("page: stat %s: %w", path, err)
	}
	required := int64(pageNo+1) * PageSize
	if info.Size() < required {
		if err := f.Truncate(required); err != nil {
			return fmt.Errorf("page: extend %s: %w", path, err)
		}
	}

	n, err := f.WriteAt(p.Buf, int64(pageNo)*PageSize)
	if err != nil {
		return fmt.Errorf("page: write %s page %d: %w", path, pageNo, err)
	}
	if n != PageSize {
		return io.ErrShortWrite
	}
	return nil
}
