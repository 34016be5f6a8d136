// Package exiunsigned implements the EXI packed-unsigned-integer
// representation: little-endian septets (7 bits of value, 1 continuation
// bit), canonical (non-redundant) encoding, reconstructed to fixed 32-
// and 64-bit widths with a per-width ceiling on the number of septets
// a conforming encoder may ever emit.
package exiunsigned

import (
	"github.com/evstack/v2g-handshake-exi/internal/bitstream"
	"github.com/evstack/v2g-handshake-exi/internal/errcode"
)

// Maximum septet-octet counts per integer width, per the EXI packing of
// the schema this codec targets.
const (
	MaxOctetsU8  = 2
	MaxOctetsU16 = 3
	MaxOctetsU32 = 5
	MaxOctetsU64 = 10

	maxOctetsAbsolute = 10
)

// Value is a fixed-capacity buffer of up to 10 septet-octets plus a
// count, mirroring the reference ExiUnsigned work area. It is a plain
// value type: callers pass it by value and it carries no resources to
// release.
type Value struct {
	octets [maxOctetsAbsolute]byte
	count  int
}

// EncodeUint64 packs v into septets, stopping at the first septet whose
// remaining high bits are all zero. Zero encodes as a single 0x00
// septet. The encoding is canonical: there is exactly one representation
// per value. EncodeUint64 never fails; the caller's width-specific
// max-octets ceiling is checked later by Write and Uint64.
func EncodeUint64(v uint64) Value {
	var out Value
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out.octets[out.count] = b
		out.count++
		if v == 0 {
			break
		}
	}
	return out
}

// EncodeUint32 packs v the same way as EncodeUint64.
func EncodeUint32(v uint32) Value {
	return EncodeUint64(uint64(v))
}

// Uint64 reconstructs the value, failing if the septet count exceeds
// maxOctets for the caller's target width.
func (u Value) Uint64(maxOctets int) (uint64, error) {
	if u.count > maxOctets {
		return 0, errcode.New("exiunsigned.Value.Uint64", errcode.OctetCountLargerThanTypeSupports)
	}
	var result uint64
	for i := 0; i < u.count; i++ {
		result |= uint64(u.octets[i]&0x7F) << uint(7*i)
	}
	return result, nil
}

// Uint32 reconstructs the value as a uint32.
func (u Value) Uint32(maxOctets int) (uint32, error) {
	v, err := u.Uint64(maxOctets)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// Write emits u's septets onto bs as full octets, failing if the count
// exceeds maxOctets for the caller's target width.
func Write(bs *bitstream.BitStream, u Value, maxOctets int) error {
	if u.count > maxOctets {
		return errcode.New("exiunsigned.Write", errcode.OctetCountLargerThanTypeSupports)
	}
	for i := 0; i < u.count; i++ {
		if err := bs.WriteOctet(u.octets[i]); err != nil {
			return err
		}
	}
	return nil
}

// Read pulls septets off bs until one lacks the continuation bit,
// failing if more than maxOctetsAbsolute septets are read (a stream that
// never terminates its continuation chain) or if the caller's
// width-specific ceiling is exceeded.
func Read(bs *bitstream.BitStream, maxOctets int) (Value, error) {
	var out Value
	for {
		if out.count >= maxOctetsAbsolute {
			return Value{}, errcode.New("exiunsigned.Read", errcode.SupportedMaxOctetsOverrun)
		}
		b, err := bs.ReadOctet()
		if err != nil {
			return Value{}, err
		}
		out.octets[out.count] = b
		out.count++
		if b&0x80 == 0 {
			break
		}
	}
	if out.count > maxOctets {
		return Value{}, errcode.New("exiunsigned.Read", errcode.OctetCountLargerThanTypeSupports)
	}
	return out, nil
}

// ReadUint64 is a convenience wrapper combining Read and Uint64.
func ReadUint64(bs *bitstream.BitStream, maxOctets int) (uint64, error) {
	v, err := Read(bs, maxOctets)
	if err != nil {
		return 0, err
	}
	return v.Uint64(maxOctets)
}

// WriteUint64 is a convenience wrapper combining EncodeUint64 and Write.
func WriteUint64(bs *bitstream.BitStream, v uint64, maxOctets int) error {
	return Write(bs, EncodeUint64(v), maxOctets)
}

// ReadUint32 is a convenience wrapper combining Read and Uint32.
func ReadUint32(bs *bitstream.BitStream, maxOctets int) (uint32, error) {
	v, err := Read(bs, maxOctets)
	if err != nil {
		return 0, err
	}
	return v.Uint32(maxOctets)
}

// WriteUint32 is a convenience wrapper combining EncodeUint32 and Write.
func WriteUint32(bs *bitstream.BitStream, v uint32, maxOctets int) error {
	return Write(bs, EncodeUint32(v), maxOctets)
}
