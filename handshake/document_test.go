package handshake_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evstack/v2g-handshake-exi/handshake"
	"github.com/evstack/v2g-handshake-exi/internal/bitstream"
	"github.com/evstack/v2g-handshake-exi/internal/errcode"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

const (
	vectorReq1 = "80 00 DB AB 93 71 D3 23 4B 71 D1 B9 81 89 91 89 D1 91 81 89 91 D2 6B 9B 3A 23 2B 30 02 00 00 04 00 40"
	vectorReq2 = "80 00 DB AB 93 71 D3 23 4B 71 D1 B9 81 89 91 89 D1 91 81 89 91 D2 6B 9B 3A 23 2B 30 02 00 00 04 04 01 D7 57 26 E3 A6 97 36 F3 A3 13 53 13 13 83 A3 23 A3 23 03 13 33 A4 D7 36 74 46 56 60 04 00 00 00 00 80"
	vectorRes1 = "80 40 00 00"
	vectorRes2 = "80 44 01 C0"
	vectorRes3 = "80 48 80"
)

func decodeHex(t *testing.T, hexStr string) *handshake.Document {
	t.Helper()
	raw := mustHex(t, hexStr)
	bs := bitstream.New(raw, len(raw), 0)
	doc, err := handshake.DecodeDocument(bs)
	require.NoError(t, err)
	return doc
}

func TestDecodeReferenceVector1SingleEntry(t *testing.T) {
	doc := decodeHex(t, vectorReq1)

	require.Equal(t, handshake.DocumentKindReq, doc.Kind)
	require.Len(t, doc.Req.Entries, 1)
	e := doc.Req.Entries[0]
	assert.Equal(t, "urn:din:70121:2012:MsgDef", e.Namespace)
	assert.Equal(t, uint32(2), e.VersionMajor)
	assert.Equal(t, uint32(0), e.VersionMinor)
	assert.Equal(t, uint8(1), e.SchemaID)
	assert.Equal(t, uint8(1), e.Priority)
}

func TestDecodeReferenceVector2TwoEntries(t *testing.T) {
	doc := decodeHex(t, vectorReq2)

	require.Equal(t, handshake.DocumentKindReq, doc.Kind)
	require.Len(t, doc.Req.Entries, 2)

	assert.Equal(t, "urn:din:70121:2012:MsgDef", doc.Req.Entries[0].Namespace)
	assert.Equal(t, uint8(2), doc.Req.Entries[0].Priority)

	assert.Equal(t, "urn:iso:15118:2:2013:MsgDef", doc.Req.Entries[1].Namespace)
	assert.Equal(t, uint8(0), doc.Req.Entries[1].SchemaID)
	assert.Equal(t, uint8(1), doc.Req.Entries[1].Priority)
}

func TestDecodeReferenceVector3Ok(t *testing.T) {
	doc := decodeHex(t, vectorRes1)

	require.Equal(t, handshake.DocumentKindRes, doc.Kind)
	assert.Equal(t, handshake.OkSuccessfulNegotiation, doc.Res.ResponseCode)
	require.NotNil(t, doc.Res.SchemaID)
	assert.Equal(t, uint8(0), *doc.Res.SchemaID)
}

func TestDecodeReferenceVector4OkWithMinorDeviation(t *testing.T) {
	doc := decodeHex(t, vectorRes2)

	require.Equal(t, handshake.DocumentKindRes, doc.Kind)
	assert.Equal(t, handshake.OkSuccessfulNegotiationWithMinorDeviation, doc.Res.ResponseCode)
	require.NotNil(t, doc.Res.SchemaID)
	assert.Equal(t, uint8(7), *doc.Res.SchemaID)
}

func TestDecodeReferenceVector5Failed(t *testing.T) {
	doc := decodeHex(t, vectorRes3)

	require.Equal(t, handshake.DocumentKindRes, doc.Kind)
	assert.Equal(t, handshake.FailedNoNegotiation, doc.Res.ResponseCode)
	assert.Nil(t, doc.Res.SchemaID)
}

func TestEncodeReferenceVector1SingleEntry(t *testing.T) {
	doc := handshake.NewReqDocument(&handshake.SupportedAppProtocolReq{
		Entries: []handshake.AppProtocolEntry{
			{Namespace: "urn:din:70121:2012:MsgDef", VersionMajor: 2, VersionMinor: 0, SchemaID: 1, Priority: 1},
		},
	})

	buf := make([]byte, 1024)
	bs := bitstream.New(buf, len(buf), 0)
	require.NoError(t, handshake.EncodeDocument(bs, doc))

	want := mustHex(t, vectorReq1)
	assert.Equal(t, want, buf[:len(want)])
	for _, b := range buf[len(want):] {
		assert.Equal(t, byte(0), b)
	}
}

func TestEncodeReferenceVector3Ok(t *testing.T) {
	schemaID := uint8(0)
	doc := handshake.NewResDocument(&handshake.SupportedAppProtocolRes{
		ResponseCode: handshake.OkSuccessfulNegotiation,
		SchemaID:     &schemaID,
	})

	buf := make([]byte, 1024)
	bs := bitstream.New(buf, len(buf), 0)
	require.NoError(t, handshake.EncodeDocument(bs, doc))

	assert.Equal(t, []byte{0x80, 0x40, 0x00, 0x00}, buf[:4])
}

func TestEncodeThenResetThenReadBackHeader(t *testing.T) {
	schemaID := uint8(0)
	doc := handshake.NewResDocument(&handshake.SupportedAppProtocolRes{
		ResponseCode: handshake.OkSuccessfulNegotiation,
		SchemaID:     &schemaID,
	})

	buf := make([]byte, 64)
	bs := bitstream.New(buf, len(buf), 0)
	require.NoError(t, handshake.EncodeDocument(bs, doc))

	bs.Reset()
	v, err := bs.ReadBits(8)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x80), v)
}

func TestRoundTripAllReferenceVectors(t *testing.T) {
	for _, hexStr := range []string{vectorReq1, vectorReq2, vectorRes1, vectorRes2, vectorRes3} {
		raw := mustHex(t, hexStr)
		bs := bitstream.New(raw, len(raw), 0)
		doc, err := handshake.DecodeDocument(bs)
		require.NoError(t, err)

		buf := make([]byte, 1024)
		outBs := bitstream.New(buf, len(buf), 0)
		require.NoError(t, handshake.EncodeDocument(outBs, doc))

		assert.Equal(t, raw, buf[:len(raw)], "round trip mismatch for %s", hexStr)
	}
}

func TestSixthEntryFailsArrayOutOfBounds(t *testing.T) {
	entries := make([]handshake.AppProtocolEntry, 6)
	for i := range entries {
		entries[i] = handshake.AppProtocolEntry{Namespace: "urn:x", VersionMajor: 1, VersionMinor: 0, SchemaID: 0, Priority: 1}
	}
	doc := handshake.NewReqDocument(&handshake.SupportedAppProtocolReq{Entries: entries})

	buf := make([]byte, 1024)
	bs := bitstream.New(buf, len(buf), 0)
	err := handshake.EncodeDocument(bs, doc)
	require.Error(t, err)
	assert.True(t, errcode.Is(err, errcode.ArrayOutOfBounds))
}
