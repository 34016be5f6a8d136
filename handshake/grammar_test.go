package handshake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evstack/v2g-handshake-exi/handshake"
	"github.com/evstack/v2g-handshake-exi/internal/bitstream"
	"github.com/evstack/v2g-handshake-exi/internal/errcode"
)

func TestDecodeUnknownRootDiscriminatorFails(t *testing.T) {
	buf := []byte{0x80, 0xC0, 0x00, 0x00} // header + discriminator "11"
	bs := bitstream.New(buf, len(buf), 0)

	_, err := handshake.DecodeDocument(bs)
	require.Error(t, err)
	assert.True(t, errcode.Is(err, errcode.UnsupportedSubEvent))
}

func TestDecodeReqWithWrongFirstEntrySEBitFails(t *testing.T) {
	// header, discriminator "00" (Req), then SE-bit forced to 1
	buf := []byte{0x80, 0x20, 0x00, 0x00}
	bs := bitstream.New(buf, len(buf), 0)

	_, err := handshake.DecodeDocument(bs)
	require.Error(t, err)
	assert.True(t, errcode.Is(err, errcode.UnknownEventCode))
}

func TestEncodeEmptyReqFails(t *testing.T) {
	doc := handshake.NewReqDocument(&handshake.SupportedAppProtocolReq{})
	buf := make([]byte, 64)
	bs := bitstream.New(buf, len(buf), 0)

	err := handshake.EncodeDocument(bs, doc)
	require.Error(t, err)
	assert.True(t, errcode.Is(err, errcode.ArrayOutOfBounds))
}

func TestDecodeResInvalidResponseCodeFails(t *testing.T) {
	// header, discriminator "01" (Res), SE=0, subtype=0, enum="11" (3, invalid), deviant=0
	buf := []byte{0x80, 0x4C, 0x00, 0x00}
	bs := bitstream.New(buf, len(buf), 0)

	_, err := handshake.DecodeDocument(bs)
	require.Error(t, err)
	assert.True(t, errcode.Is(err, errcode.UnsupportedIntegerValueType))
}

func TestFiveEntriesUsesFinalSingleBitEndElement(t *testing.T) {
	entries := make([]handshake.AppProtocolEntry, 5)
	for i := range entries {
		entries[i] = handshake.AppProtocolEntry{Namespace: "urn:x", VersionMajor: 1, VersionMinor: 0, SchemaID: 0, Priority: 1}
	}
	doc := handshake.NewReqDocument(&handshake.SupportedAppProtocolReq{Entries: entries})

	buf := make([]byte, 1024)
	bs := bitstream.New(buf, len(buf), 0)
	require.NoError(t, handshake.EncodeDocument(bs, doc))

	bs.Reset()
	decoded, err := handshake.DecodeDocument(bs)
	require.NoError(t, err)
	assert.Len(t, decoded.Req.Entries, 5)
}
