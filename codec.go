package vector

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"reflect"

	"github.com/rawbytedev/vector/internal/common"
)

// Snapshot frame:
//
//	magic 'V' 'C' | version | kind | varint count | varint capacity | body | crc32
//
// The CRC covers everything after the magic up to the checksum itself.
const (
	snapMagic0  = 'V'
	snapMagic1  = 'C'
	snapVersion = 1
	snapHeader  = 4
	snapCRC     = 4
)

func elemKind[T any]() (reflect.Kind, error) {
	t := reflect.TypeFor[T]()
	k := t.Kind()
	switch {
	case common.IsFixedKind(k), k == reflect.String:
		return k, nil
	case k == reflect.Slice && t.Elem().Kind() == reflect.Uint8:
		return k, nil
	}
	return k, fmt.Errorf("%w: %s", ErrUnsupported, t)
}

// snapCapLimit bounds the capacity restored for count elements, so a small
// frame cannot request a large allocation.
func snapCapLimit(count int) int {
	return max(2*count, DefaultCapacity)
}

// MarshalBinary encodes the active elements and the capacity into a
// checksummed snapshot frame.
func (v *Vector[T]) MarshalBinary() ([]byte, error) {
	k, err := elemKind[T]()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, snapHeader+20+v.n*max(common.FixedSize(k), 2)+snapCRC)
	buf = append(buf, snapMagic0, snapMagic1, snapVersion, byte(k))
	buf = common.WriteVarUint(buf, uint64(v.n))
	buf = common.WriteVarUint(buf, uint64(len(v.buf)))

	elems := reflect.ValueOf(v.buf[:v.n])
	for i := 0; i < v.n; i++ {
		e := elems.Index(i)
		switch k {
		case reflect.String:
			s := e.String()
			buf = common.WriteVarUint(buf, uint64(len(s)))
			buf = append(buf, s...)
		case reflect.Slice:
			b := e.Bytes()
			buf = common.WriteVarUint(buf, uint64(len(b)))
			buf = append(buf, b...)
		default:
			buf = common.AppendFixed(buf, e)
		}
	}
	return binary.LittleEndian.AppendUint32(buf, crc32.ChecksumIEEE(buf[2:])), nil
}

// UnmarshalBinary replaces the contents of v with a snapshot produced by
// MarshalBinary. The recorded capacity is restored up to
// max(2*count, DefaultCapacity). On error v is left unchanged.
func (v *Vector[T]) UnmarshalBinary(data []byte) error {
	k, err := elemKind[T]()
	if err != nil {
		return err
	}
	if len(data) < snapHeader+2+snapCRC || data[0] != snapMagic0 || data[1] != snapMagic1 {
		return ErrCorrupt
	}
	if data[2] != snapVersion {
		return fmt.Errorf("%w: version %d", ErrCorrupt, data[2])
	}
	end := len(data) - snapCRC
	if crc32.ChecksumIEEE(data[2:end]) != binary.LittleEndian.Uint32(data[end:]) {
		return ErrChecksum
	}
	if reflect.Kind(data[3]) != k {
		return fmt.Errorf("%w: have %s, want %s", ErrKindMismatch, reflect.Kind(data[3]), k)
	}

	body := data[snapHeader:end]
	count, n := common.ReadVarUint(body)
	if n == 0 {
		return ErrCorrupt
	}
	body = body[n:]
	capacity, n := common.ReadVarUint(body)
	if n == 0 {
		return ErrCorrupt
	}
	body = body[n:]
	// every element takes at least one byte
	if count > uint64(len(body)) {
		return fmt.Errorf("%w: %d elements in %d bytes", ErrCorrupt, count, len(body))
	}

	// capacity is a hint; never allocate more than growth from count could
	c := int(min(capacity, uint64(snapCapLimit(int(count)))))
	c = max(c, int(count))
	out := alloc[T](c)
	elems := reflect.ValueOf(out)
	sz := common.FixedSize(k)
	pos := 0
	for i := 0; i < int(count); i++ {
		e := elems.Index(i)
		if sz > 0 {
			if pos+sz > len(body) {
				return ErrCorrupt
			}
			common.SetFixed(e, body[pos:pos+sz])
			pos += sz
			continue
		}
		l, ln := common.ReadVarUint(body[pos:])
		if ln == 0 || uint64(len(body)-pos-ln) < l {
			return ErrCorrupt
		}
		pos += ln
		payload := body[pos : pos+int(l)]
		pos += int(l)
		if k == reflect.String {
			e.SetString(string(payload))
		} else {
			e.SetBytes(append([]byte(nil), payload...))
		}
	}
	if pos != len(body) {
		return fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(body)-pos)
	}
	v.buf = out
	v.n = int(count)
	return nil
}
