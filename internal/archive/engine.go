package archive

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"dunearchive/internal/catalog"
	"dunearchive/internal/page"
	"dunearchive/internal/record"
)

const catalogFile = "catalog.dat"

// Engine implements the four archive operations over the catalog and
// page stores. It owns the in-memory catalog for the whole run; every
// page access goes straight to disk.
type Engine struct {
	workdir string
	catalog *catalog.Catalog
	cstore  *catalog.Store
	pages   *page.Store
}

// Open loads the catalog from workdir and returns a ready engine. An
// absent catalog file starts empty; an unreadable one is discarded with
// a warning and also starts empty.
func Open(workdir string) (*Engine, error) {
	cstore := catalog.NewStore(filepath.Join(workdir, catalogFile))
	cat, status, err := cstore.Load()
	if err != nil {
		return nil, fmt.Errorf("archive: open: %w", err)
	}
	if status == catalog.LoadCorrupt {
		slog.Warn("discarding unreadable catalog file", "workdir", workdir)
	}

	return &Engine{
		workdir: workdir,
		catalog: cat,
		cstore:  cstore,
		pages:   page.NewStore(),
	}, nil
}

func (e *Engine) fileSet(typeName string) page.LocalFileSet {
	return page.LocalFileSet{Dir: e.workdir, Base: typeName}
}

// CreateType registers a new type and persists the full catalog.
// specs is the flat (name, kind-tag) pair list from the command file.
func (e *Engine) CreateType(name string, numFields, pkIndex int, specs []string) error {
	if e.catalog.Has(name) {
		return ErrTypeExists
	}
	if !record.ValidName(name) || len(name) > record.MaxTypeNameLen {
		return ErrInvalidTypeName
	}
	if numFields > record.MaxFields {
		return ErrTooManyFields
	}
	if pkIndex < 1 || pkIndex > numFields {
		return ErrInvalidPrimaryKey
	}
	if len(specs) != 2*numFields {
		return ErrInvalidFieldSpec
	}

	fields := make([]record.Field, 0, numFields)
	for i := 0; i < len(specs); i += 2 {
		fieldName, tag := specs[i], specs[i+1]
		if !record.ValidName(fieldName) || len(fieldName) > record.MaxFieldNameLen {
			return ErrInvalidFieldSpec
		}
		kind, ok := record.ParseKind(tag)
		if !ok {
			return ErrInvalidFieldSpec
		}
		fields = append(fields, record.Field{Name: fieldName, Kind: kind})
	}

	e.catalog.Insert(record.Schema{
		Name:    name,
		Fields:  fields,
		PKIndex: pkIndex,
	})
	return e.cstore.Save(e.catalog)
}

// CreateRecord validates and stores one record, placing it in the first
// free slot found by scanning pages 0..MaxPagesPerFile-1.
func (e *Engine) CreateRecord(typeName string, values []string) error {
	schema, ok := e.catalog.Lookup(typeName)
	if !ok {
		return ErrUnknownType
	}
	if len(values) != schema.NumFields() {
		return ErrFieldCount
	}
	for i, f := range schema.Fields {
		switch f.Kind {
		case record.KindInt:
			if !record.ValidIntValue(values[i]) {
				return ErrInvalidValue
			}
		case record.KindText:
			if !record.ValidTextValue(values[i]) {
				return ErrInvalidValue
			}
		}
	}

	key := schema.PrimaryKey(values)
	if _, err := e.findByKey(schema, key); err == nil {
		return ErrDuplicateKey
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	rec, err := record.Encode(schema, values)
	if err != nil {
		return err
	}

	fs := e.fileSet(typeName)
	slotCap := page.SlotCapacity(schema.RecordSize())
	for pageNo := uint32(0); pageNo < page.MaxPagesPerFile; pageNo++ {
		p, ok, err := e.pages.LoadPage(fs, pageNo)
		if err != nil {
			return err
		}
		if !ok {
			// page beyond the current file end: synthesize it empty
			p = page.NewPage(pageNo)
		}

		bitmap := p.Bitmap()
		slot, free := bitmap.FirstFreeIn(slotCap)
		if !free {
			continue
		}

		window, err := p.Slot(slot, schema.RecordSize())
		if err != nil {
			return err
		}
		copy(window, rec)
		p.SetPageNumber(pageNo)
		p.SetRecordCount(p.RecordCount() + 1)
		p.SetBitmap(bitmap.Set(slot))
		return e.pages.SavePage(fs, pageNo, p)
	}
	return ErrCapacity
}

// SearchRecord returns the values of the record whose primary key
// equals key, in page-then-slot scan order.
func (e *Engine) SearchRecord(typeName, key string) ([]string, error) {
	schema, ok := e.catalog.Lookup(typeName)
	if !ok {
		return nil, ErrUnknownType
	}
	m, err := e.findByKey(schema, key)
	if err != nil {
		return nil, err
	}
	return m.values, nil
}

// DeleteRecord tombstones the matching record: validity byte zeroed and
// bitmap bit cleared in the same page write, so both signals stay in
// lockstep.
func (e *Engine) DeleteRecord(typeName, key string) error {
	schema, ok := e.catalog.Lookup(typeName)
	if !ok {
		return ErrUnknownType
	}
	m, err := e.findByKey(schema, key)
	if err != nil {
		return err
	}

	window, err := m.page.Slot(m.slot, schema.RecordSize())
	if err != nil {
		return err
	}
	window[0] = 0
	m.page.SetRecordCount(m.page.RecordCount() - 1)
	m.page.SetBitmap(m.page.Bitmap().Clear(m.slot))
	return e.pages.SavePage(e.fileSet(typeName), m.pageNo, m.page)
}

// match locates a live record so delete can mutate it in place.
type match struct {
	pageNo uint32
	slot   int
	page   *page.Page
	values []string
}

// findByKey is the shared full scan: pages 0..MaxPagesPerFile-1, slots
// gated by the occupancy bitmap, first primary-key match wins.
func (e *Engine) findByKey(schema record.Schema, key string) (*match, error) {
	fs := e.fileSet(schema.Name)
	recordSize := schema.RecordSize()
	slotCap := page.SlotCapacity(recordSize)
	pk := schema.PKIndex - 1

	for pageNo := uint32(0); pageNo < page.MaxPagesPerFile; pageNo++ {
		p, ok, err := e.pages.LoadPage(fs, pageNo)
		if err != nil {
			return nil, err
		}
		if !ok || p.RecordCount() == 0 {
			continue
		}

		bitmap := p.Bitmap()
		for slot := 0; slot < slotCap; slot++ {
			if !bitmap.Has(slot) {
				continue
			}
			window, err := p.Slot(slot, recordSize)
			if err != nil {
				return nil, err
			}
			values, err := record.Decode(schema, window)
			if err != nil {
				if errors.Is(err, record.ErrTombstone) {
					// bitmap bit set over a dead slot; skip it
					continue
				}
				return nil, err
			}
			if values[pk] == key {
				return &match{pageNo: pageNo, slot: slot, page: p, values: values}, nil
			}
		}
	}
	return nil, ErrNotFound
}
