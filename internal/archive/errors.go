package archive

import "errors"

var (
	ErrTypeExists        = errors.New("archive: duplicate type name")
	ErrInvalidTypeName   = errors.New("archive: invalid type name")
	ErrTooManyFields     = errors.New("archive: too many fields")
	ErrInvalidPrimaryKey = errors.New("archive: primary key position out of range")
	ErrInvalidFieldSpec  = errors.New("archive: invalid field specification")
	ErrUnknownType       = errors.New("archive: unknown type")
	ErrFieldCount        = errors.New("archive: value count does not match type")
	ErrInvalidValue      = errors.New("archive: value does not match field kind")
	ErrDuplicateKey      = errors.New("archive: duplicate primary key")
	ErrCapacity          = errors.New("archive: type file is at full capacity")
	ErrNotFound          = errors.New("archive: record not found")
)
