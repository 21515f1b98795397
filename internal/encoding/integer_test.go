package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seismic-go/mseedpack/endian"
	"github.com/seismic-go/mseedpack/errs"
)

func TestPackInt32BigEndianLayout(t *testing.T) {
	dst := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

	res, err := PackInt32(dst, []int32{1, -2}, endian.Big.Engine())
	require.NoError(t, err)
	require.Equal(t, 8, res.BytesWritten)
	require.Equal(t, 2, res.SamplesConsumed)
	require.Equal(t, []byte{0, 0, 0, 1, 0xFF, 0xFF, 0xFF, 0xFE, 0, 0, 0, 0}, dst)
}

func TestPackInt32LittleEndianLayout(t *testing.T) {
	dst := make([]byte, 4)

	_, err := PackInt32(dst, []int32{1}, endian.Little.Engine())
	require.NoError(t, err)
	require.Equal(t, []byte{1, 0, 0, 0}, dst)
}

func TestPackInt32StopsAtCapacity(t *testing.T) {
	dst := make([]byte, 10) // room for two samples plus a ragged tail

	res, err := PackInt32(dst, []int32{5, 6, 7, 8}, endian.Big.Engine())
	require.NoError(t, err)
	require.Equal(t, 2, res.SamplesConsumed)
	require.Equal(t, 8, res.BytesWritten)
}

func TestPackInt16Layout(t *testing.T) {
	dst := make([]byte, 6)

	res, err := PackInt16(dst, []int32{256, -1}, endian.Big.Engine())
	require.NoError(t, err)
	require.Equal(t, 2, res.SamplesConsumed)
	require.Equal(t, []byte{1, 0, 0xFF, 0xFF, 0, 0}, dst)
}

func TestPackInt16Overflow(t *testing.T) {
	_, err := PackInt16(make([]byte, 8), []int32{40000}, endian.Big.Engine())
	require.ErrorIs(t, err, errs.ErrSampleOverflow)

	_, err = PackInt16(make([]byte, 8), []int32{-40000}, endian.Big.Engine())
	require.ErrorIs(t, err, errs.ErrSampleOverflow)
}

func TestPackInt24Layout(t *testing.T) {
	dst := make([]byte, 6)

	res, err := PackInt24(dst, []int32{1, -2}, endian.Big.Engine())
	require.NoError(t, err)
	require.Equal(t, 2, res.SamplesConsumed)
	require.Equal(t, 6, res.BytesWritten)
	require.Equal(t, []byte{0, 0, 1, 0xFF, 0xFF, 0xFE}, dst)
}

func TestPackInt24LittleEndianLayout(t *testing.T) {
	dst := make([]byte, 3)

	_, err := PackInt24(dst, []int32{-2}, endian.Little.Engine())
	require.NoError(t, err)
	require.Equal(t, []byte{0xFE, 0xFF, 0xFF}, dst)
}

func TestPackInt24Overflow(t *testing.T) {
	_, err := PackInt24(make([]byte, 6), []int32{1 << 23}, endian.Big.Engine())
	require.ErrorIs(t, err, errs.ErrSampleOverflow)

	res, err := PackInt24(make([]byte, 6), []int32{1<<23 - 1, -1 << 23}, endian.Big.Engine())
	require.NoError(t, err)
	require.Equal(t, 2, res.SamplesConsumed)
}
