package catalog

import (
	"bytes"
	"fmt"
	"os"

	"dunearchive/internal/bx"
	"dunearchive/internal/record"
)

// LoadStatus distinguishes why a load produced an empty catalog.
type LoadStatus int

const (
	LoadOK LoadStatus = iota
	LoadAbsent
	LoadCorrupt
)

// Store persists the catalog as one flat binary file. Per type:
//
//	[u32 len][name][u32 num_fields][u32 pk_index]
//	then per field: [u32 len][field_name][u32 len]["int"|"str"]
//
// All counts little-endian, all strings UTF-8, entries back-to-back.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the whole catalog file. A missing file yields an empty
// catalog with LoadAbsent. A malformed file (truncated, inconsistent
// lengths, unknown kind tag) discards everything parsed so far and
// yields an empty catalog with LoadCorrupt.
func (st *Store) Load() (*Catalog, LoadStatus, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), LoadAbsent, nil
		}
		return nil, 0, fmt.Errorf("catalog: read %s: %w", st.path, err)
	}

	cat, ok := parse(data)
	if !ok {
		return New(), LoadCorrupt, nil
	}
	return cat, LoadOK, nil
}

// Save rewrites the entire file from the in-memory catalog. Not atomic:
// no temp-file-and-rename.
func (st *Store) Save(c *Catalog) error {
	var buf bytes.Buffer
	for _, s := range c.Types() {
		writeString(&buf, s.Name)
		writeU32(&buf, uint32(s.NumFields()))
		writeU32(&buf, uint32(s.PKIndex))
		for _, f := range s.Fields {
			writeString(&buf, f.Name)
			writeString(&buf, f.Kind.Tag())
		}
	}
	if err := os.WriteFile(st.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("catalog: write %s: %w", st.path, err)
	}
	return nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	bx.PutU32(b[:], v)
	buf.Write(b[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeU32(buf, uint32(len(s)))
	buf.WriteString(s)
}

func parse(data []byte) (*Catalog, bool) {
	cat := New()
	off := 0
	for off < len(data) {
		name, ok := readString(data, &off)
		if !ok {
			return nil, false
		}
		numFields, ok := readU32(data, &off)
		if !ok {
			return nil, false
		}
		// a count beyond MaxFields cannot come from a well-formed save
		if numFields > record.MaxFields {
			return nil, false
		}
		pkIndex, ok := readU32(data, &off)
		if !ok {
			return nil, false
		}

		fields := make([]record.Field, 0, numFields)
		for i := uint32(0); i < numFields; i++ {
			fieldName, ok := readString(data, &off)
			if !ok {
				return nil, false
			}
			tag, ok := readString(data, &off)
			if !ok {
				return nil, false
			}
			kind, ok := record.ParseKind(tag)
			if !ok {
				return nil, false
			}
			fields = append(fields, record.Field{Name: fieldName, Kind: kind})
		}

		cat.Insert(record.Schema{
			Name:    name,
			Fields:  fields,
			PKIndex: int(pkIndex),
		})
	}
	return cat, true
}

func readU32(data []byte, off *int) (uint32, bool) {
	if *off+4 > len(data) {
		return 0, false
	}
	v := bx.U32At(data, *off)
	*off += 4
	return v, true
}

func readString(data []byte, off *int) (string, bool) {
	n, ok := readU32(data, off)
	if !ok {
		return "", false
	}
	if *off+int(n) > len(data) {
		return "", false
	}
	s := string(data[*off : *off+int(n)])
	*off += int(n)
	return s, true
}
