package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTestSchema builds the schema used across codec tests:
// (name str, age int), primary key = name.
func makeTestSchema() Schema {
	return Schema{
		Name: "Person",
		Fields: []Field{
			{Name: "name", Kind: KindText},
			{Name: "age", Kind: KindInt},
		},
		PKIndex: 1,
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	schema := makeTestSchema()

	buf, err := Encode(schema, []string{"Alice", "30"})
	require.NoError(t, err)
	require.Len(t, buf, schema.RecordSize())
	require.Equal(t, byte(1), buf[0])

	values, err := Decode(schema, buf)
	require.NoError(t, err)
	require.Equal(t, []string{"Alice", "30"}, values)
}

func TestEncodeDecode_NegativeInt(t *testing.T) {
	schema := Schema{
		Name:    "Reading",
		Fields:  []Field{{Name: "delta", Kind: KindInt}},
		PKIndex: 1,
	}

	buf, err := Encode(schema, []string{"-42"})
	require.NoError(t, err)

	values, err := Decode(schema, buf)
	require.NoError(t, err)
	require.Equal(t, []string{"-42"}, values)
}

func TestEncode_TruncatesLongText(t *testing.T) {
	schema := makeTestSchema()

	long := strings.Repeat("a", 150)
	buf, err := Encode(schema, []string{long, "1"})
	require.NoError(t, err)

	values, err := Decode(schema, buf)
	require.NoError(t, err)
	// stored text is capped one below the field width
	require.Equal(t, strings.Repeat("a", MaxStringLen-1), values[0])
}

func TestEncode_Errors(t *testing.T) {
	schema := makeTestSchema()

	_, err := Encode(schema, []string{"Alice"})
	assert.ErrorIs(t, err, ErrFieldCount)

	_, err = Encode(schema, []string{"Alice", "notanumber"})
	assert.ErrorIs(t, err, ErrBadValue)

	// out of int32 range
	_, err = Encode(schema, []string{"Alice", "4294967296"})
	assert.ErrorIs(t, err, ErrBadValue)
}

func TestDecode_Tombstone(t *testing.T) {
	schema := makeTestSchema()

	buf, err := Encode(schema, []string{"Alice", "30"})
	require.NoError(t, err)

	buf[0] = 0
	_, err = Decode(schema, buf)
	assert.ErrorIs(t, err, ErrTombstone)
}

func TestDecode_ShortBuffer(t *testing.T) {
	schema := makeTestSchema()

	_, err := Decode(schema, make([]byte, 10))
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestSchema_RecordSize(t *testing.T) {
	// validity byte + 100-byte text + 4-byte int
	assert.Equal(t, 105, makeTestSchema().RecordSize())

	s := Schema{
		Fields:  []Field{{Name: "a", Kind: KindInt}, {Name: "b", Kind: KindInt}},
		PKIndex: 1,
	}
	assert.Equal(t, 9, s.RecordSize())
}

func TestSchema_PrimaryKey(t *testing.T) {
	schema := makeTestSchema()
	assert.Equal(t, "Alice", schema.PrimaryKey([]string{"Alice", "30"}))

	schema.PKIndex = 2
	assert.Equal(t, "30", schema.PrimaryKey([]string{"Alice", "30"}))
}
