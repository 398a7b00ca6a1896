package common

import (
	"encoding/binary"
	"math"
	"reflect"
)

// IsFixedKind reports whether k is a fixed-size primitive kind.
// int and uint are carried as 64-bit values.
func IsFixedKind(k reflect.Kind) bool {
	return FixedSize(k) > 0
}

// FixedSize returns the byte width for fixed-size primitive kinds, -1 otherwise.
func FixedSize(k reflect.Kind) int {
	switch k {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	case reflect.Int64, reflect.Uint64, reflect.Float64, reflect.Int, reflect.Uint:
		return 8
	default:
		return -1
	}
}

// WriteVarUint appends a varint to buf.
func WriteVarUint(buf []byte, x uint64) []byte {
	for x >= 0x80 {
		buf = append(buf, byte(x)|0x80)
		x >>= 7
	}
	return append(buf, byte(x))
}

// ReadVarUint decodes a varint from b returning value and bytes consumed.
// A zero count means b ended before the varint did.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if s > 63 {
			return 0, 0
		}
		x |= uint64(c&0x7F) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	return 0, 0
}

// AppendFixed appends the little-endian encoding of v, whose kind must be fixed.
func AppendFixed(dst []byte, v reflect.Value) []byte {
	le := binary.LittleEndian
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return append(dst, 1)
		}
		return append(dst, 0)
	case reflect.Int8:
		return append(dst, byte(v.Int()))
	case reflect.Uint8:
		return append(dst, byte(v.Uint()))
	case reflect.Int16:
		return le.AppendUint16(dst, uint16(v.Int()))
	case reflect.Uint16:
		return le.AppendUint16(dst, uint16(v.Uint()))
	case reflect.Int32:
		return le.AppendUint32(dst, uint32(v.Int()))
	case reflect.Uint32:
		return le.AppendUint32(dst, uint32(v.Uint()))
	case reflect.Int64, reflect.Int:
		return le.AppendUint64(dst, uint64(v.Int()))
	case reflect.Uint64, reflect.Uint:
		return le.AppendUint64(dst, v.Uint())
	case reflect.Float32:
		return le.AppendUint32(dst, math.Float32bits(float32(v.Float())))
	case reflect.Float64:
		return le.AppendUint64(dst, math.Float64bits(v.Float()))
	default:
		panic("not fixed")
	}
}

// SetFixed decodes a fixed-width primitive from b and sets dst.
func SetFixed(dst reflect.Value, b []byte) {
	le := binary.LittleEndian
	switch dst.Kind() {
	case reflect.Bool:
		dst.SetBool(b[0] != 0)
	case reflect.Int8:
		dst.SetInt(int64(int8(b[0])))
	case reflect.Uint8:
		dst.SetUint(uint64(b[0]))
	case reflect.Int16:
		dst.SetInt(int64(int16(le.Uint16(b))))
	case reflect.Uint16:
		dst.SetUint(uint64(le.Uint16(b)))
	case reflect.Int32:
		dst.SetInt(int64(int32(le.Uint32(b))))
	case reflect.Uint32:
		dst.SetUint(uint64(le.Uint32(b)))
	case reflect.Int64, reflect.Int:
		dst.SetInt(int64(le.Uint64(b)))
	case reflect.Uint64, reflect.Uint:
		dst.SetUint(le.Uint64(b))
	case reflect.Float32:
		dst.SetFloat(float64(math.Float32frombits(le.Uint32(b))))
	case reflect.Float64:
		dst.SetFloat(math.Float64frombits(le.Uint64(b)))
	}
}
