package record

import (
	"bytes"
	"errors"
	"strconv"

	"dunearchive/internal/bx"
)

var (
	ErrFieldCount  = errors.New("record: value count does not match schema")
	ErrBadValue    = errors.New("record: value does not fit field kind")
	ErrShortBuffer = errors.New("record: buffer smaller than record size")
	ErrTombstone   = errors.New("record: slot holds a tombstoned record")
)

// Encode serializes a value tuple into the schema's fixed-width layout:
// a validity byte of 1 followed by each field at its kind's width.
// Text values are truncated to MaxStringLen-1 and null-padded.
func Encode(s Schema, values []string) ([]byte, error) {
	if len(values) != len(s.Fields) {
		return nil, ErrFieldCount
	}

	out := make([]byte, s.RecordSize())
	out[0] = 1

	off := FlagWidth
	for i, f := range s.Fields {
		switch f.Kind {
		case KindInt:
			n, err := strconv.ParseInt(values[i], 10, 32)
			if err != nil {
				return nil, ErrBadValue
			}
			bx.PutI32At(out, off, int32(n))
		case KindText:
			v := values[i]
			if len(v) > MaxStringLen-1 {
				v = v[:MaxStringLen-1]
			}
			copy(out[off:off+MaxStringLen], v)
		}
		off += f.Kind.Width()
	}
	return out, nil
}

// Decode deserializes one record. A zero validity byte yields
// ErrTombstone without decoding any field. Integer fields come back in
// their decimal string form; text fields are stripped of trailing NULs.
func Decode(s Schema, buf []byte) ([]string, error) {
	if len(buf) < s.RecordSize() {
		return nil, ErrShortBuffer
	}
	if buf[0] == 0 {
		return nil, ErrTombstone
	}

	values := make([]string, 0, len(s.Fields))
	off := FlagWidth
	for _, f := range s.Fields {
		switch f.Kind {
		case KindInt:
			values = append(values, strconv.Itoa(int(bx.I32At(buf, off))))
		case KindText:
			raw := buf[off : off+MaxStringLen]
			values = append(values, string(bytes.TrimRight(raw, "\x00")))
		}
		off += f.Kind.Width()
	}
	return values, nil
}
