package wlwire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncoder_PutStringPadsTo32BitBoundary(t *testing.T) {
	e := newEncoder()
	e.putString("ab") // "ab\0" = 3 bytes, padded to 4; length prefix = 4 bytes
	require.Equal(t, 8, len(e.buf))

	d := newDecoder(e.buf)
	s, err := d.string()
	require.NoError(t, err)
	require.Equal(t, "ab", s)
	require.Equal(t, 8, d.off)
}

func TestEncoder_PutStringExactBoundary(t *testing.T) {
	e := newEncoder()
	e.putString("abc") // "abc\0" = 4 bytes exactly, no extra padding
	require.Equal(t, 8, len(e.buf))

	d := newDecoder(e.buf)
	s, err := d.string()
	require.NoError(t, err)
	require.Equal(t, "abc", s)
}

func TestEncoder_Uint32RoundTrip(t *testing.T) {
	e := newEncoder()
	e.putUint32(0xdeadbeef)

	d := newDecoder(e.buf)
	v, err := d.uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbeef), v)
}

func TestEncoder_Int32RoundTripNegative(t *testing.T) {
	e := newEncoder()
	e.putInt32(-42)

	d := newDecoder(e.buf)
	v, err := d.int32()
	require.NoError(t, err)
	require.Equal(t, int32(-42), v)
}

func TestDecoder_StringShortReadIsError(t *testing.T) {
	d := newDecoder([]byte{0x10, 0x00, 0x00, 0x00}) // claims 16 bytes, has none
	_, err := d.string()
	require.Error(t, err)
}

func TestDecoder_Uint32ShortReadIsError(t *testing.T) {
	d := newDecoder([]byte{0x01, 0x02})
	_, err := d.uint32()
	require.Error(t, err)
}
