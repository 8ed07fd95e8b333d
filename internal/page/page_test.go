package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_HeaderAccessors(t *testing.T) {
	p := NewPage(7)

	assert.Equal(t, uint32(7), p.PageNumber())
	assert.Equal(t, uint32(0), p.RecordCount())
	assert.Equal(t, Bitmap(0), p.Bitmap())

	p.SetRecordCount(3)
	p.SetBitmap(Bitmap(0).Set(0).Set(1).Set(2))

	assert.Equal(t, uint32(3), p.RecordCount())
	assert.Equal(t, 3, p.Bitmap().Count())

	// header fields live at fixed little-endian offsets
	assert.Equal(t, byte(7), p.Buf[0])
	assert.Equal(t, byte(3), p.Buf[4])
	assert.Equal(t, byte(0b111), p.Buf[8])
}

func TestPage_Wrap(t *testing.T) {
	_, err := Wrap(make([]byte, 100))
	assert.ErrorIs(t, err, ErrWrongSize)

	buf := make([]byte, PageSize)
	buf[0] = 5
	p, err := Wrap(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), p.PageNumber())
}

func TestPage_SlotWindows(t *testing.T) {
	const recordSize = 105
	p := NewPage(0)

	s0, err := p.Slot(0, recordSize)
	require.NoError(t, err)
	require.Len(t, s0, recordSize)

	s1, err := p.Slot(1, recordSize)
	require.NoError(t, err)

	// slot windows alias the page buffer at HeaderSize + i*recordSize
	s0[0] = 1
	s1[0] = 1
	assert.Equal(t, byte(1), p.Buf[HeaderSize])
	assert.Equal(t, byte(1), p.Buf[HeaderSize+recordSize])

	_, err = p.Slot(-1, recordSize)
	assert.ErrorIs(t, err, ErrBadSlot)
	_, err = p.Slot(SlotsPerPage, recordSize)
	assert.ErrorIs(t, err, ErrBadSlot)
}

func TestSlotCapacity(t *testing.T) {
	// narrow records: capped at SlotsPerPage
	assert.Equal(t, SlotsPerPage, SlotCapacity(105))
	assert.Equal(t, SlotsPerPage, SlotCapacity(405))

	// wide records: fewer slots fit in the page body
	assert.Equal(t, 9, SlotCapacity(409))
	assert.Equal(t, 4, SlotCapacity(1001)) // 10 text fields
}

func TestPage_SlotBeyondPage(t *testing.T) {
	// a record size too large for 10 slots per page
	p := NewPage(0)
	_, err := p.Slot(9, 500)
	assert.ErrorIs(t, err, ErrBadSlot)
}
