package libchem

import (
	"github.com/2x3systems/chem2x3/chem"
	"github.com/2x3systems/chem2x3/libchem/elements"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

/***

Binary encodings use the protobuf wire format, equivalent to:

	message Entry {
		uint32 number  = 1;
		uint32 isotope = 2;
		uint64 count   = 3;
	}
	message Counter {
		repeated Entry entries = 1;
	}
	message Cu {
		uint64 c = 1;
		uint64 u = 2;
	}

Counter entries are always written in canonical species order, so equal counters encode identically.

***/

const (
	fieldCounterEntries = 1

	fieldEntryNumber  = 1
	fieldEntryIsotope = 2
	fieldEntryCount   = 3

	fieldCuC = 1
	fieldCuU = 2
)

func appendVarint(dst []byte, x uint64) []byte {
	return append(dst, proto.EncodeVarint(x)...)
}

func appendTag(dst []byte, field int, wireType int) []byte {
	return appendVarint(dst, uint64(field)<<3|uint64(wireType))
}

// AppendVarintField appends a varint field in protobuf wire format, omitting zero values.
func AppendVarintField(dst []byte, field int, x uint64) []byte {
	if x == 0 {
		return dst
	}
	dst = appendTag(dst, field, proto.WireVarint)
	return appendVarint(dst, x)
}

// AppendBytesField appends a length-delimited field in protobuf wire format.
func AppendBytesField(dst []byte, field int, buf []byte) []byte {
	dst = appendTag(dst, field, proto.WireBytes)
	dst = appendVarint(dst, uint64(len(buf)))
	return append(dst, buf...)
}

// WireReader walks the fields of a protobuf wire format message.
type WireReader struct {
	buf []byte
}

func NewWireReader(buf []byte) WireReader {
	return WireReader{buf: buf}
}

// More returns true if there are unread fields.
func (r *WireReader) More() bool {
	return len(r.buf) > 0
}

// Next reads the next field tag.
func (r *WireReader) Next() (field int, wireType int, err error) {
	tag, err := r.Varint()
	if err != nil {
		return 0, 0, err
	}
	field = int(tag >> 3)
	wireType = int(tag & 0x7)
	if field <= 0 {
		return 0, 0, errors.Wrap(chem.ErrBadEncoding, "bad field number")
	}
	return field, wireType, nil
}

func (r *WireReader) Varint() (uint64, error) {
	x, n := proto.DecodeVarint(r.buf)
	if n == 0 {
		return 0, errors.Wrap(chem.ErrBadEncoding, "truncated varint")
	}
	r.buf = r.buf[n:]
	return x, nil
}

func (r *WireReader) Bytes() ([]byte, error) {
	sz, err := r.Varint()
	if err != nil {
		return nil, err
	}
	if sz > uint64(len(r.buf)) {
		return nil, errors.Wrap(chem.ErrBadEncoding, "truncated field")
	}
	buf := r.buf[:sz]
	r.buf = r.buf[sz:]
	return buf, nil
}

// Skip discards the value of a field of the given wire type.
func (r *WireReader) Skip(wireType int) error {
	var err error
	switch wireType {
	case proto.WireVarint:
		_, err = r.Varint()
	case proto.WireBytes:
		_, err = r.Bytes()
	default:
		err = errors.Wrapf(chem.ErrBadEncoding, "unsupported wire type %d", wireType)
	}
	return err
}

// AppendBinary appends the binary encoding of this counter.
func (c Counter) AppendBinary(dst []byte) []byte {
	var scrap [32]byte
	for _, e := range c.entries {
		entry := scrap[:0]
		entry = AppendVarintField(entry, fieldEntryNumber, uint64(e.Species.Number))
		entry = AppendVarintField(entry, fieldEntryIsotope, uint64(e.Species.Isotope))
		entry = AppendVarintField(entry, fieldEntryCount, e.Count)
		dst = AppendBytesField(dst, fieldCounterEntries, entry)
	}
	return dst
}

func (c Counter) MarshalBinary() ([]byte, error) {
	return c.AppendBinary(nil), nil
}

// UnmarshalBinary decodes against this counter's table (the standard table for a zero Counter).
func (c *Counter) UnmarshalBinary(buf []byte) error {
	decoded, err := DecodeCounter(c.table, buf)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

// DecodeCounter decodes a binary counter encoding, resolving species against the given table (nil
// selects the standard table).  Species that the table cannot render are rejected.
func DecodeCounter(table chem.SpeciesTable, buf []byte) (Counter, error) {
	if table == nil {
		table = elements.Standard
	}
	acc := NewAccumulator(table)

	r := NewWireReader(buf)
	for r.More() {
		field, wireType, err := r.Next()
		if err != nil {
			return Counter{}, err
		}
		if field != fieldCounterEntries || wireType != proto.WireBytes {
			if err = r.Skip(wireType); err != nil {
				return Counter{}, err
			}
			continue
		}
		entryBuf, err := r.Bytes()
		if err != nil {
			return Counter{}, err
		}
		e, err := decodeEntry(entryBuf)
		if err != nil {
			return Counter{}, err
		}
		if sp, err := table.Lookup(table.Symbol(e.Species)); err != nil || sp != e.Species {
			return Counter{}, errors.Wrapf(chem.ErrUnknownSpecies, "species %d/%d", e.Species.Number, e.Species.Isotope)
		}
		acc.Add(e.Species, e.Count)
	}

	return acc.Counter(), nil
}

func decodeEntry(buf []byte) (e Entry, err error) {
	r := NewWireReader(buf)
	for r.More() {
		var field, wireType int
		if field, wireType, err = r.Next(); err != nil {
			return
		}
		if wireType != proto.WireVarint {
			if err = r.Skip(wireType); err != nil {
				return
			}
			continue
		}
		var x uint64
		if x, err = r.Varint(); err != nil {
			return
		}
		switch field {
		case fieldEntryNumber:
			if x > 0xFF {
				err = errors.Wrapf(chem.ErrBadEncoding, "atomic number %d", x)
				return
			}
			e.Species.Number = uint8(x)
		case fieldEntryIsotope:
			if x > 0xFFFF {
				err = errors.Wrapf(chem.ErrBadEncoding, "mass number %d", x)
				return
			}
			e.Species.Isotope = uint16(x)
		case fieldEntryCount:
			e.Count = x
		}
	}
	if e.Species.IsZero() || e.Count == 0 {
		err = errors.Wrap(chem.ErrBadEncoding, "incomplete entry")
	}
	return
}

// MarshalText returns the canonical formula.
func (c Counter) MarshalText() ([]byte, error) {
	return c.AppendFormula(nil), nil
}

// UnmarshalText parses a formula against this counter's table (the standard table for a zero Counter).
func (c *Counter) UnmarshalText(text []byte) error {
	parsed, err := ParseFormula(c.table, string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// AppendBinary appends the binary encoding of this CU index.
func (cu Cu) AppendBinary(dst []byte) []byte {
	dst = AppendVarintField(dst, fieldCuC, cu.C)
	dst = AppendVarintField(dst, fieldCuU, cu.U)
	return dst
}

func (cu Cu) MarshalBinary() ([]byte, error) {
	return cu.AppendBinary(nil), nil
}

func (cu *Cu) UnmarshalBinary(buf []byte) error {
	var decoded Cu
	r := NewWireReader(buf)
	for r.More() {
		field, wireType, err := r.Next()
		if err != nil {
			return err
		}
		if wireType != proto.WireVarint {
			if err = r.Skip(wireType); err != nil {
				return err
			}
			continue
		}
		x, err := r.Varint()
		if err != nil {
			return err
		}
		switch field {
		case fieldCuC:
			decoded.C = x
		case fieldCuU:
			decoded.U = x
		}
	}
	*cu = decoded
	return nil
}
