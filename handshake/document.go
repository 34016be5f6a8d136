package handshake

import (
	"github.com/evstack/v2g-handshake-exi/internal/bitstream"
	"github.com/evstack/v2g-handshake-exi/internal/errcode"
	"github.com/evstack/v2g-handshake-exi/internal/header"
)

// EncodeDocument writes the fixed header, the 2-bit document-root
// discriminator (0 = Req, 1 = Res), and dispatches to the matching
// grammar.
func EncodeDocument(bs *bitstream.BitStream, doc *Document) error {
	if err := header.Write(bs); err != nil {
		return err
	}
	switch doc.Kind {
	case DocumentKindReq:
		if doc.Req == nil {
			return errcode.New("handshake.EncodeDocument", errcode.UnsupportedSubEvent)
		}
		if err := bs.WriteBits(2, 0); err != nil {
			return err
		}
		return encodeReq(bs, *doc.Req)
	case DocumentKindRes:
		if doc.Res == nil {
			return errcode.New("handshake.EncodeDocument", errcode.UnsupportedSubEvent)
		}
		if err := bs.WriteBits(2, 1); err != nil {
			return err
		}
		return encodeRes(bs, *doc.Res)
	default:
		return errcode.New("handshake.EncodeDocument", errcode.UnsupportedSubEvent)
	}
}

// DecodeDocument verifies the header, reads the 2-bit discriminator and
// dispatches to the matching grammar.
func DecodeDocument(bs *bitstream.BitStream) (*Document, error) {
	if err := header.ReadAndCheck(bs); err != nil {
		return nil, err
	}
	code, err := bs.ReadBits(2)
	if err != nil {
		return nil, err
	}
	switch code {
	case 0:
		req, err := decodeReq(bs)
		if err != nil {
			return nil, err
		}
		return NewReqDocument(&req), nil
	case 1:
		res, err := decodeRes(bs)
		if err != nil {
			return nil, err
		}
		return NewResDocument(&res), nil
	default:
		return nil, errcode.New("handshake.DecodeDocument", errcode.UnsupportedSubEvent)
	}
}
