// Package header implements the single-byte EXI "simple" header used by
// this codec: write always emits 0x80; read rejects anything carrying a
// cookie or an options segment, since both are explicit non-goals of the
// schema-informed strict mode this codec targets.
package header

import (
	"github.com/evstack/v2g-handshake-exi/internal/bitstream"
	"github.com/evstack/v2g-handshake-exi/internal/errcode"
)

const (
	simpleHeaderByte  = 0x80
	cookieByte        = 0x24 // ASCII '$'
	optionsPresentBit = 0x20
)

// Write emits the fixed 8-bit simple header.
func Write(bs *bitstream.BitStream) error {
	return bs.WriteOctet(simpleHeaderByte)
}

// ReadAndCheck reads the header octet and rejects a cookie or an
// options-present header. The options-bit test here is the corrected
// "(byte & 0x20) != 0" form: the mask can never equal 1, so a naive
// equality test against 1 is always false and never rejects anything.
func ReadAndCheck(bs *bitstream.BitStream) error {
	b, err := bs.ReadOctet()
	if err != nil {
		return err
	}
	if b == cookieByte {
		return errcode.New("header.ReadAndCheck", errcode.HeaderCookieNotSupported)
	}
	if b&optionsPresentBit != 0 {
		return errcode.New("header.ReadAndCheck", errcode.HeaderOptionsNotSupported)
	}
	return nil
}
