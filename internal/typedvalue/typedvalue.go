// Package typedvalue adds the EXI event-code framing that wraps every
// schema-typed leaf value: a leading subtype-selector bit (canonical
// type vs. an unsupported extension), the payload itself, and a trailing
// deviant-occurrence bit (unsupported deviations from the schema type).
// Every operation here is the three-bit skeleton described in the
// handshake grammar tables, parameterized by the basetype payload
// codec for the concrete width.
package typedvalue

import (
	"github.com/evstack/v2g-handshake-exi/internal/basetype"
	"github.com/evstack/v2g-handshake-exi/internal/bitstream"
	"github.com/evstack/v2g-handshake-exi/internal/errcode"
)

func writeFrame(bs *bitstream.BitStream, payload func() error) error {
	if err := bs.WriteBit(false); err != nil { // subtype selector: canonical
		return err
	}
	if err := payload(); err != nil {
		return err
	}
	return bs.WriteBit(false) // deviant bit: none
}

func readFrame(op string, bs *bitstream.BitStream, payload func() error) error {
	subtype, err := bs.ReadBit()
	if err != nil {
		return err
	}
	if subtype {
		return errcode.New(op, errcode.UnsupportedSubEvent)
	}
	if err := payload(); err != nil {
		return err
	}
	deviant, err := bs.ReadBit()
	if err != nil {
		return err
	}
	if deviant {
		return errcode.New(op, errcode.DeviantsNotSupported)
	}
	return nil
}

func WriteUint8(bs *bitstream.BitStream, v uint8) error {
	return writeFrame(bs, func() error { return basetype.WriteUint8(bs, v) })
}

func ReadUint8(bs *bitstream.BitStream) (uint8, error) {
	var v uint8
	err := readFrame("typedvalue.Uint8", bs, func() (err error) {
		v, err = basetype.ReadUint8(bs)
		return err
	})
	return v, err
}

func WriteUint16(bs *bitstream.BitStream, v uint16) error {
	return writeFrame(bs, func() error { return basetype.WriteUint16(bs, v) })
}

func ReadUint16(bs *bitstream.BitStream) (uint16, error) {
	var v uint16
	err := readFrame("typedvalue.Uint16", bs, func() (err error) {
		v, err = basetype.ReadUint16(bs)
		return err
	})
	return v, err
}

func WriteUint32(bs *bitstream.BitStream, v uint32) error {
	return writeFrame(bs, func() error { return basetype.WriteUint32(bs, v) })
}

func ReadUint32(bs *bitstream.BitStream) (uint32, error) {
	var v uint32
	err := readFrame("typedvalue.Uint32", bs, func() (err error) {
		v, err = basetype.ReadUint32(bs)
		return err
	})
	return v, err
}

func WriteUint64(bs *bitstream.BitStream, v uint64) error {
	return writeFrame(bs, func() error { return basetype.WriteUint64(bs, v) })
}

func ReadUint64(bs *bitstream.BitStream) (uint64, error) {
	var v uint64
	err := readFrame("typedvalue.Uint64", bs, func() (err error) {
		v, err = basetype.ReadUint64(bs)
		return err
	})
	return v, err
}

func WriteInt8(bs *bitstream.BitStream, v int8) error {
	return writeFrame(bs, func() error { return basetype.WriteInt8(bs, v) })
}

func ReadInt8(bs *bitstream.BitStream) (int8, error) {
	var v int8
	err := readFrame("typedvalue.Int8", bs, func() (err error) {
		v, err = basetype.ReadInt8(bs)
		return err
	})
	return v, err
}

func WriteInt16(bs *bitstream.BitStream, v int16) error {
	return writeFrame(bs, func() error { return basetype.WriteInt16(bs, v) })
}

func ReadInt16(bs *bitstream.BitStream) (int16, error) {
	var v int16
	err := readFrame("typedvalue.Int16", bs, func() (err error) {
		v, err = basetype.ReadInt16(bs)
		return err
	})
	return v, err
}

func WriteInt32(bs *bitstream.BitStream, v int32) error {
	return writeFrame(bs, func() error { return basetype.WriteInt32(bs, v) })
}

func ReadInt32(bs *bitstream.BitStream) (int32, error) {
	var v int32
	err := readFrame("typedvalue.Int32", bs, func() (err error) {
		v, err = basetype.ReadInt32(bs)
		return err
	})
	return v, err
}

func WriteInt64(bs *bitstream.BitStream, v int64) error {
	return writeFrame(bs, func() error { return basetype.WriteInt64(bs, v) })
}

func ReadInt64(bs *bitstream.BitStream) (int64, error) {
	var v int64
	err := readFrame("typedvalue.Int64", bs, func() (err error) {
		v, err = basetype.ReadInt64(bs)
		return err
	})
	return v, err
}

// WriteNBitUint frames a fixed-width raw value (used for SchemaID,
// Priority and ResponseCode, whose schema facets bound them to a small
// enumeration and which are therefore packed as a raw n-bit field
// rather than run through the variable-length unsigned encoder).
func WriteNBitUint(bs *bitstream.BitStream, n int, v uint32) error {
	return writeFrame(bs, func() error { return basetype.WriteNBitUint(bs, n, v) })
}

// ReadNBitUint reads the framed fixed-width raw value.
func ReadNBitUint(bs *bitstream.BitStream, n int) (uint32, error) {
	var v uint32
	err := readFrame("typedvalue.NBitUint", bs, func() (err error) {
		v, err = basetype.ReadNBitUint(bs, n)
		return err
	})
	return v, err
}

// WriteHexBinary frames a raw byte blob of known length.
func WriteHexBinary(bs *bitstream.BitStream, data []byte) error {
	return writeFrame(bs, func() error { return basetype.WriteBytes(bs, data) })
}

// ReadHexBinary frames a raw byte blob read of the given length.
func ReadHexBinary(bs *bitstream.BitStream, length int, cap int) ([]byte, error) {
	var v []byte
	err := readFrame("typedvalue.HexBinary", bs, func() (err error) {
		v, err = basetype.ReadBytes(bs, length, cap)
		return err
	})
	return v, err
}
