package page

import "errors"

const (
	PageSize        = 4096 // bytes
	HeaderSize      = 12   // 3 * uint32: page_number, record_count, bitmap
	SlotsPerPage    = 10
	MaxPagesPerFile = 100

	FileMode0644 = 0o644
	FileMode0755 = 0o755
)

// Header field offsets within the page buffer.
const (
	offPageNumber  = 0
	offRecordCount = 4
	offBitmap      = 8
)

var (
	ErrWrongSize = errors.New("page: buffer size != PageSize")
	ErrBadSlot   = errors.New("page: invalid slot index")
)
