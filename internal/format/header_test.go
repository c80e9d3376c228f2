package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderSizeMatchesLayout(t *testing.T) {
	require.Equal(t, 20, HeaderSize)
	require.Equal(t, 15, MaxNameLen)
}

func TestHeaderEncodeDecode(t *testing.T) {
	name, err := EncodeName("calib")
	require.NoError(t, err)

	h := Header{Next: 0x0120, Data: HeaderSize, Name: name}
	raw := h.Encode()
	require.Len(t, raw, HeaderSize)
	require.Equal(t, byte(0x20), raw[NextOffset])
	require.Equal(t, byte(0x01), raw[NextOffset+1])
	require.Equal(t, byte(HeaderSize), raw[DataOffset])
	require.Equal(t, byte('c'), raw[NameOffset])

	got, err := DecodeHeader(raw)
	require.NoError(t, err)
	require.Equal(t, h, got)
	require.Equal(t, "calib", got.NameString())
	require.Equal(t, 0x0120-HeaderSize, got.PayloadSize())
}

func TestDecodeHeaderTruncated(t *testing.T) {
	_, err := DecodeHeader(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestHeaderState(t *testing.T) {
	virgin, err := DecodeHeader(virginBytes(HeaderSize))
	require.NoError(t, err)
	require.Equal(t, StateVirgin, virgin.State())
	require.Zero(t, virgin.Capacity())
	require.Zero(t, virgin.PayloadSize())

	require.Equal(t, StateFreed, Header{Next: 40, Data: Sentinel}.State())
	require.Equal(t, StateAllocated, Header{Next: 40, Data: HeaderSize}.State())
	require.Equal(t, StateCorrupt, Header{Next: Sentinel, Data: HeaderSize}.State())
	require.Equal(t, "corrupt", StateCorrupt.String())
}

func TestHeaderFreed(t *testing.T) {
	name, err := EncodeName("a")
	require.NoError(t, err)
	live := Header{Next: 30, Data: HeaderSize, Name: name}

	inner := live.Freed(false)
	require.Equal(t, StateFreed, inner.State())
	require.Equal(t, uint16(30), inner.Next)
	for _, b := range inner.Name {
		require.Equal(t, NameFiller, b)
	}

	tail := live.Freed(true)
	require.Equal(t, StateVirgin, tail.State())
	require.Equal(t, virginBytes(HeaderSize), tail.Encode())
}

func TestHeaderClaimed(t *testing.T) {
	name, err := EncodeName("b")
	require.NoError(t, err)

	fromVirgin := Header{Next: Sentinel, Data: Sentinel}.Claimed(name, 10)
	require.Equal(t, uint16(HeaderSize+10), fromVirgin.Next)
	require.Equal(t, uint16(HeaderSize), fromVirgin.Data)
	require.Equal(t, StateAllocated, fromVirgin.State())

	fromFreed := Header{Next: 64, Data: Sentinel}.Claimed(name, 10)
	require.Equal(t, uint16(64), fromFreed.Next, "freed capacity must be preserved")
	require.Equal(t, 64-HeaderSize, fromFreed.PayloadSize())
}

func virginBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ResetValue
	}
	return b
}
