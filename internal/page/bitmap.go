package page

import "math/bits"

// Bitmap is the per-page occupancy mask: bit i set means slot i holds a
// record. Only the low SlotsPerPage bits are meaningful.
type Bitmap uint32

func (b Bitmap) Has(i int) bool { return b&(1<<uint(i)) != 0 }

func (b Bitmap) Set(i int) Bitmap { return b | 1<<uint(i) }

func (b Bitmap) Clear(i int) Bitmap { return b &^ (1 << uint(i)) }

// FirstFree returns the lowest unset position, or false when all
// SlotsPerPage slots are taken.
func (b Bitmap) FirstFree() (int, bool) {
	return b.FirstFreeIn(SlotsPerPage)
}

// FirstFreeIn is FirstFree limited to the first n positions, for pages
// whose record size fits fewer than SlotsPerPage slots.
func (b Bitmap) FirstFreeIn(n int) (int, bool) {
	for i := 0; i < n; i++ {
		if !b.Has(i) {
			return i, true
		}
	}
	return 0, false
}

func (b Bitmap) Count() int {
	return bits.OnesCount32(uint32(b) & (1<<SlotsPerPage - 1))
}
