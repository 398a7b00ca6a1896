package vector

import (
	"encoding"
	"encoding/binary"
	"hash/crc32"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/vector/internal/common"
)

var (
	_ encoding.BinaryMarshaler   = (*Vector[int])(nil)
	_ encoding.BinaryUnmarshaler = (*Vector[int])(nil)
)

func TestSnapshotCapacity(t *testing.T) {
	v := Of[int64](-7, 1<<40)
	data, err := v.MarshalBinary()
	require.NoError(t, err)

	var back Vector[int64]
	require.NoError(t, back.UnmarshalBinary(data))
	assert.Equal(t, []int64{-7, 1 << 40}, back.Data())
	assert.Equal(t, 4, back.Cap())

	// reserved headroom beyond 2*count is not restored
	v.Reserve(40)
	data, err = v.MarshalBinary()
	require.NoError(t, err)
	require.NoError(t, back.UnmarshalBinary(data))
	assert.Equal(t, []int64{-7, 1 << 40}, back.Data())
	assert.Equal(t, 4, back.Cap())
}

func TestSnapshotOversizedCapacity(t *testing.T) {
	frame := []byte{'V', 'C', snapVersion, byte(reflect.Int64)}
	frame = common.WriteVarUint(frame, 0)
	frame = common.WriteVarUint(frame, 1<<28)
	frame = binary.LittleEndian.AppendUint32(frame, crc32.ChecksumIEEE(frame[2:]))

	var v Vector[int64]
	require.NoError(t, v.UnmarshalBinary(frame))
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, DefaultCapacity, v.Cap())

	var s Vector[string]
	frame[3] = byte(reflect.String)
	binary.LittleEndian.PutUint32(frame[len(frame)-4:], crc32.ChecksumIEEE(frame[2:len(frame)-4]))
	require.NoError(t, s.UnmarshalBinary(frame))
	assert.Equal(t, DefaultCapacity, s.Cap())
}

func FuzzUnmarshalBinary(f *testing.F) {
	for _, v := range []*Vector[string]{
		New[string](),
		WithLen[string](0),
		Of("a", "", "hello world"),
		Filled(3, "xyz"),
	} {
		data, err := v.MarshalBinary()
		require.NoError(f, err)
		f.Add(data)
	}
	f.Add([]byte("VC"))
	f.Fuzz(func(t *testing.T, data []byte) {
		var v Vector[string]
		if err := v.UnmarshalBinary(data); err != nil {
			return
		}
		require.LessOrEqual(t, v.Cap(), snapCapLimit(v.Len()))
		enc, err := v.MarshalBinary()
		require.NoError(t, err)
		var back Vector[string]
		require.NoError(t, back.UnmarshalBinary(enc))
		require.Equal(t, v.Data(), back.Data())
		require.Equal(t, v.Cap(), back.Cap())

		// a frame for one element type never decodes as another without error
		var ints Vector[int64]
		require.Error(t, ints.UnmarshalBinary(data))
	})
}

func TestSnapshotKinds(t *testing.T) {
	type celsius float32
	condition := func(a []celsius, b []bool, c []string, d []uint) bool {
		return roundTrips(t, Of(a...)) && roundTrips(t, Of(b...)) &&
			roundTrips(t, Of(c...)) && roundTrips(t, Of(d...))
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))

	require.True(t, roundTrips(t, Of([]byte("ab"), nil, []byte{0xff})))
}

func roundTrips[T any](t *testing.T, v *Vector[T]) bool {
	data, err := v.MarshalBinary()
	require.NoError(t, err)
	var back Vector[T]
	require.NoError(t, back.UnmarshalBinary(data))
	return back.Cap() == v.Cap() && assert.ObjectsAreEqual(v.Data(), back.Data())
}

func TestSnapshotUnsupported(t *testing.T) {
	_, err := Of(struct{ A int }{1}).MarshalBinary()
	require.ErrorIs(t, err, ErrUnsupported)

	var m Vector[map[string]int]
	require.ErrorIs(t, m.UnmarshalBinary([]byte("VC")), ErrUnsupported)
}

func TestSnapshotCorruption(t *testing.T) {
	v := Of[uint16](1, 2, 3)
	data, err := v.MarshalBinary()
	require.NoError(t, err)

	var back Vector[uint16]
	require.ErrorIs(t, back.UnmarshalBinary(data[:5]), ErrCorrupt)

	bad := append([]byte(nil), data...)
	bad[0] = 'X'
	require.ErrorIs(t, back.UnmarshalBinary(bad), ErrCorrupt)

	bad = append([]byte(nil), data...)
	bad[len(bad)-6] ^= 0xff
	require.ErrorIs(t, back.UnmarshalBinary(bad), ErrChecksum)

	var wrong Vector[int16]
	require.ErrorIs(t, wrong.UnmarshalBinary(data), ErrKindMismatch)

	// untouched on failure
	assert.Equal(t, 0, back.Len())
	assert.Nil(t, back.Data())
}

func TestSnapshotEmpty(t *testing.T) {
	v := New[string]()
	v.Clear()
	data, err := v.MarshalBinary()
	require.NoError(t, err)

	back := Of("stale")
	require.NoError(t, back.UnmarshalBinary(data))
	assert.True(t, back.Empty())
	assert.Equal(t, 0, back.Cap())
	assert.Nil(t, back.Data())
}
