package record

import (
	"regexp"
	"strconv"
)

const (
	MaxFields       = 10
	MaxTypeNameLen  = 12
	MaxFieldNameLen = 20
	MaxStringLen    = 100 // on-disk width of a text field, incl. padding

	IntWidth  = 4
	FlagWidth = 1 // validity byte prepended to every record
)

type FieldKind uint8

const (
	KindInt  FieldKind = iota // 4-byte little-endian signed
	KindText                  // MaxStringLen bytes UTF-8, null-padded
)

// ParseKind maps the on-disk kind tag to a FieldKind.
func ParseKind(tag string) (FieldKind, bool) {
	switch tag {
	case "int":
		return KindInt, true
	case "str":
		return KindText, true
	default:
		return 0, false
	}
}

func (k FieldKind) Tag() string {
	if k == KindInt {
		return "int"
	}
	return "str"
}

func (k FieldKind) Width() int {
	if k == KindInt {
		return IntWidth
	}
	return MaxStringLen
}

type Field struct {
	Name string
	Kind FieldKind
}

// Schema describes one user-defined type: an ordered field list and the
// 1-based position of the primary-key field.
type Schema struct {
	Name    string
	Fields  []Field
	PKIndex int
}

func (s Schema) NumFields() int { return len(s.Fields) }

// RecordSize is the fixed on-disk size of one record: the validity byte
// plus every field at its kind's width.
func (s Schema) RecordSize() int {
	size := FlagWidth
	for _, f := range s.Fields {
		size += f.Kind.Width()
	}
	return size
}

// PrimaryKey extracts the primary-key value from a full value tuple.
func (s Schema) PrimaryKey(values []string) string {
	return values[s.PKIndex-1]
}

var (
	alnumRe  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	letterRe = regexp.MustCompile(`[a-zA-Z]`)
)

// ValidName reports whether s is a legal type or field name: non-empty,
// alphanumeric only, with at least one letter. Length limits are checked
// separately by the caller.
func ValidName(s string) bool {
	return alnumRe.MatchString(s) && letterRe.MatchString(s)
}

// ValidTextValue reports whether s is storable in a text field.
func ValidTextValue(s string) bool {
	return alnumRe.MatchString(s)
}

// ValidIntValue reports whether s parses as a base-10 32-bit integer.
func ValidIntValue(s string) bool {
	_, err := strconv.ParseInt(s, 10, 32)
	return err == nil
}
