package page

import (
	"dunearchive/internal/bx"
)

// Page wraps one fixed-size page buffer.
//
//	+------------------+ 0
//	| page_number (u32)|
//	| record_count(u32)|
//	| bitmap      (u32)|
//	+------------------+ HeaderSize (12)
//	| slot 0           |  each slot is record_size bytes,
//	| slot 1           |  record_size fixed per type schema
//	| ...              |
//	+------------------+ PageSize (4096)
type Page struct {
	Buf []byte
}

// NewPage returns a zeroed page carrying only its own number in the
// header (record count 0, empty bitmap).
func NewPage(pageNo uint32) *Page {
	p := &Page{Buf: make([]byte, PageSize)}
	p.SetPageNumber(pageNo)
	return p
}

// Wrap adopts an existing PageSize buffer without copying.
func Wrap(buf []byte) (*Page, error) {
	if len(buf) != PageSize {
		return nil, ErrWrongSize
	}
	return &Page{Buf: buf}, nil
}

// ---- header getters/setters ----

func (p *Page) PageNumber() uint32 {
	return bx.U32At(p.Buf, offPageNumber)
}

func (p *Page) SetPageNumber(v uint32) {
	bx.PutU32At(p.Buf, offPageNumber, v)
}

func (p *Page) RecordCount() uint32 {
	return bx.U32At(p.Buf, offRecordCount)
}

func (p *Page) SetRecordCount(v uint32) {
	bx.PutU32At(p.Buf, offRecordCount, v)
}

func (p *Page) Bitmap() Bitmap {
	return Bitmap(bx.U32At(p.Buf, offBitmap))
}

func (p *Page) SetBitmap(b Bitmap) {
	bx.PutU32At(p.Buf, offBitmap, uint32(b))
}

// SlotCapacity returns how many slots of the given record size actually
// fit in the page body, capped at SlotsPerPage. Schemas wide enough that
// 10 slots would overrun the page get fewer usable slots per page.
func SlotCapacity(recordSize int) int {
	c := (PageSize - HeaderSize) / recordSize
	if c > SlotsPerPage {
		c = SlotsPerPage
	}
	return c
}

// Slot returns the in-place byte window of slot i for a given record
// size. Mutating the window mutates the page buffer.
func (p *Page) Slot(i, recordSize int) ([]byte, error) {
	if i < 0 || i >= SlotsPerPage {
		return nil, ErrBadSlot
	}
	start := HeaderSize + i*recordSize
	end := start + recordSize
	if end > PageSize {
		return nil, ErrBadSlot
	}
	return p.Buf[start:end], nil
}
