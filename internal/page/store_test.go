package page

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileSet(t *testing.T) LocalFileSet {
	t.Helper()
	return LocalFileSet{Dir: t.TempDir(), Base: "Person"}
}

func TestStore_LoadAbsentFile(t *testing.T) {
	fs := newTestFileSet(t)
	st := NewStore()

	p, ok, err := st.LoadPage(fs, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	fs := newTestFileSet(t)
	st := NewStore()

	p := NewPage(0)
	p.SetRecordCount(1)
	p.SetBitmap(Bitmap(0).Set(0))
	copy(p.Buf[HeaderSize:], []byte{1, 0xde, 0xad})

	require.NoError(t, st.SavePage(fs, 0, p))

	got, ok, err := st.LoadPage(fs, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p.Buf, got.Buf)
}

func TestStore_SaveBeyondEndZeroExtends(t *testing.T) {
	fs := newTestFileSet(t)
	st := NewStore()

	p := NewPage(3)
	require.NoError(t, st.SavePage(fs, 3, p))

	info, err := os.Stat(fs.Path())
	require.NoError(t, err)
	assert.Equal(t, int64(4*PageSize), info.Size())

	// the skipped pages read back as all-zero
	for pageNo := uint32(0); pageNo < 3; pageNo++ {
		got, ok, err := st.LoadPage(fs, pageNo)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, uint32(0), got.RecordCount())
		assert.Equal(t, Bitmap(0), got.Bitmap())
	}
}

func TestStore_LoadPastEnd(t *testing.T) {
	fs := newTestFileSet(t)
	st := NewStore()

	require.NoError(t, st.SavePage(fs, 0, NewPage(0)))

	p, ok, err := st.LoadPage(fs, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestStore_LoadShortTail(t *testing.T) {
	fs := newTestFileSet(t)
	st := NewStore()

	// fewer than HeaderSize bytes at offset 0 reads as absent
	require.NoError(t, os.WriteFile(fs.Path(), []byte{1, 2, 3}, 0o644))
	_, ok, err := st.LoadPage(fs, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	// a truncated page with a full header is zero-filled to PageSize
	buf := make([]byte, HeaderSize+5)
	buf[0] = 0
	buf[4] = 1
	require.NoError(t, os.WriteFile(fs.Path(), buf, 0o644))
	p, ok, err := st.LoadPage(fs, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(1), p.RecordCount())
	assert.Len(t, p.Buf, PageSize)
}

func TestStore_OverwriteDoesNotGrowFile(t *testing.T) {
	fs := newTestFileSet(t)
	st := NewStore()

	require.NoError(t, st.SavePage(fs, 1, NewPage(1)))
	require.NoError(t, st.SavePage(fs, 0, NewPage(0)))

	info, err := os.Stat(fs.Path())
	require.NoError(t, err)
	assert.Equal(t, int64(2*PageSize), info.Size())
}
