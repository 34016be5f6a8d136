// Package basetype implements the typed atoms laid directly on top of
// bitstream and exiunsigned: booleans, raw byte blobs, n-bit unsigned
// integers, u8/u16/u32/u64, i8/i16/i32/i64 (sign + magnitude, NOT two's
// complement), and ASCII characters (the caller writes the length field
// separately). None of these
// operations add EXI event-code framing — that is typedvalue's job.
package basetype

import (
	"github.com/evstack/v2g-handshake-exi/internal/bitstream"
	"github.com/evstack/v2g-handshake-exi/internal/errcode"
	"github.com/evstack/v2g-handshake-exi/internal/exiunsigned"
)

// WriteBool writes a single bit: 1 for true, 0 for false.
func WriteBool(bs *bitstream.BitStream, v bool) error {
	return bs.WriteBit(v)
}

// ReadBool reads a single bit as a bool.
func ReadBool(bs *bitstream.BitStream) (bool, error) {
	return bs.ReadBit()
}

// WriteBytes writes data as a sequence of raw octets, with no length
// prefix of its own — callers that need a length field write it
// separately via the appropriate unsigned encoder.
func WriteBytes(bs *bitstream.BitStream, data []byte) error {
	for _, b := range data {
		if err := bs.WriteOctet(b); err != nil {
			return err
		}
	}
	return nil
}

// ReadBytes reads n raw octets, failing ByteBufferTooSmall if n exceeds
// the caller-declared capacity cap.
func ReadBytes(bs *bitstream.BitStream, n int, cap int) ([]byte, error) {
	if n > cap {
		return nil, errcode.New("basetype.ReadBytes", errcode.ByteBufferTooSmall)
	}
	out := make([]byte, n)
	for i := range out {
		b, err := bs.ReadOctet()
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// WriteNBitUint writes the low n bits of v, MSB-first, with no framing.
func WriteNBitUint(bs *bitstream.BitStream, n int, v uint32) error {
	return bs.WriteBits(n, v)
}

// ReadNBitUint reads n bits into a uint32, with no framing.
func ReadNBitUint(bs *bitstream.BitStream, n int) (uint32, error) {
	return bs.ReadBits(n)
}

// WriteUint8/16/32/64 pack v via the EXI septet encoding with the
// width-appropriate octet ceiling.

func WriteUint8(bs *bitstream.BitStream, v uint8) error {
	return exiunsigned.WriteUint32(bs, uint32(v), exiunsigned.MaxOctetsU8)
}

func ReadUint8(bs *bitstream.BitStream) (uint8, error) {
	v, err := exiunsigned.ReadUint32(bs, exiunsigned.MaxOctetsU8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

func WriteUint16(bs *bitstream.BitStream, v uint16) error {
	return exiunsigned.WriteUint32(bs, uint32(v), exiunsigned.MaxOctetsU16)
}

func ReadUint16(bs *bitstream.BitStream) (uint16, error) {
	v, err := exiunsigned.ReadUint32(bs, exiunsigned.MaxOctetsU16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func WriteUint32(bs *bitstream.BitStream, v uint32) error {
	return exiunsigned.WriteUint32(bs, v, exiunsigned.MaxOctetsU32)
}

func ReadUint32(bs *bitstream.BitStream) (uint32, error) {
	return exiunsigned.ReadUint32(bs, exiunsigned.MaxOctetsU32)
}

func WriteUint64(bs *bitstream.BitStream, v uint64) error {
	return exiunsigned.WriteUint64(bs, v, exiunsigned.MaxOctetsU64)
}

func ReadUint64(bs *bitstream.BitStream) (uint64, error) {
	return exiunsigned.ReadUint64(bs, exiunsigned.MaxOctetsU64)
}

// WriteInt8/16/32/64 write (sign_bit, magnitude) where sign_bit = 1 iff
// value < 0 and magnitude = |value| encoded as the matching unsigned
// width. This is deliberately NOT two's complement. INT_MIN of each
// width is written with a magnitude one past the positive range (128 for
// int8) and reads back as INT_MIN, because the negation on read wraps.

func WriteInt8(bs *bitstream.BitStream, v int8) error {
	neg := v < 0
	if err := bs.WriteBit(neg); err != nil {
		return err
	}
	mag := int64(v)
	if neg {
		mag = -mag
	}
	return exiunsigned.WriteUint32(bs, uint32(mag), exiunsigned.MaxOctetsU8)
}

func ReadInt8(bs *bitstream.BitStream) (int8, error) {
	neg, err := bs.ReadBit()
	if err != nil {
		return 0, err
	}
	mag, err := exiunsigned.ReadUint32(bs, exiunsigned.MaxOctetsU8)
	if err != nil {
		return 0, err
	}
	v := int8(mag)
	if neg {
		v = -v
	}
	return v, nil
}

func WriteInt16(bs *bitstream.BitStream, v int16) error {
	neg := v < 0
	if err := bs.WriteBit(neg); err != nil {
		return err
	}
	mag := int64(v)
	if neg {
		mag = -mag
	}
	return exiunsigned.WriteUint32(bs, uint32(mag), exiunsigned.MaxOctetsU16)
}

func ReadInt16(bs *bitstream.BitStream) (int16, error) {
	neg, err := bs.ReadBit()
	if err != nil {
		return 0, err
	}
	mag, err := exiunsigned.ReadUint32(bs, exiunsigned.MaxOctetsU16)
	if err != nil {
		return 0, err
	}
	v := int16(mag)
	if neg {
		v = -v
	}
	return v, nil
}

func WriteInt32(bs *bitstream.BitStream, v int32) error {
	neg := v < 0
	if err := bs.WriteBit(neg); err != nil {
		return err
	}
	mag := int64(v)
	if neg {
		mag = -mag
	}
	return exiunsigned.WriteUint32(bs, uint32(mag), exiunsigned.MaxOctetsU32)
}

func ReadInt32(bs *bitstream.BitStream) (int32, error) {
	neg, err := bs.ReadBit()
	if err != nil {
		return 0, err
	}
	mag, err := exiunsigned.ReadUint32(bs, exiunsigned.MaxOctetsU32)
	if err != nil {
		return 0, err
	}
	v := int32(mag)
	if neg {
		v = -v
	}
	return v, nil
}

func WriteInt64(bs *bitstream.BitStream, v int64) error {
	neg := v < 0
	if err := bs.WriteBit(neg); err != nil {
		return err
	}
	mag := v
	if neg {
		mag = -mag
	}
	return exiunsigned.WriteUint64(bs, uint64(mag), exiunsigned.MaxOctetsU64)
}

func ReadInt64(bs *bitstream.BitStream) (int64, error) {
	neg, err := bs.ReadBit()
	if err != nil {
		return 0, err
	}
	mag, err := exiunsigned.ReadUint64(bs, exiunsigned.MaxOctetsU64)
	if err != nil {
		return 0, err
	}
	v := int64(mag)
	if neg {
		v = -v
	}
	return v, nil
}

// WriteCharacters writes the ASCII bytes of s with no length prefix;
// cap is accepted for symmetry with ReadCharacters but unused on encode.
func WriteCharacters(bs *bitstream.BitStream, s string, cap int) error {
	return WriteBytes(bs, []byte(s))
}

// ReadCharacters reads length raw octets and validates each is ASCII
// (high bit clear), failing UnsupportedCharacterValue otherwise. cap
// must be at least length+1 (room for a trailing NUL in the reference
// C buffer model); a smaller cap fails CharacterBufferTooSmall.
func ReadCharacters(bs *bitstream.BitStream, length int, cap int) (string, error) {
	if length+1 > cap {
		return "", errcode.New("basetype.ReadCharacters", errcode.CharacterBufferTooSmall)
	}
	buf := make([]byte, length)
	for i := 0; i < length; i++ {
		b, err := bs.ReadOctet()
		if err != nil {
			return "", err
		}
		if b&0x80 != 0 {
			return "", errcode.New("basetype.ReadCharacters", errcode.UnsupportedCharacterValue)
		}
		buf[i] = b
	}
	return string(buf), nil
}
