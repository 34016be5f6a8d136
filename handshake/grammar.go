package handshake

import (
	"github.com/evstack/v2g-handshake-exi/internal/basetype"
	"github.com/evstack/v2g-handshake-exi/internal/bitstream"
	"github.com/evstack/v2g-handshake-exi/internal/errcode"
	"github.com/evstack/v2g-handshake-exi/internal/typedvalue"
)

// encodeEntry walks AppProtocolEntry states 0..5, writing the fixed
// Start-Element bit ahead of each field and letting typedvalue supply
// the subtype/deviant framing.
func encodeEntry(bs *bitstream.BitStream, e AppProtocolEntry) error {
	// state 0: ProtocolNamespace
	if err := bs.WriteBit(false); err != nil {
		return err
	}
	if err := basetype.WriteBool(bs, false); err != nil { // subtype selector
		return err
	}
	if err := basetype.WriteUint16(bs, uint16(len(e.Namespace)+2)); err != nil {
		return err
	}
	if err := basetype.WriteCharacters(bs, e.Namespace, MaxNamespaceChars); err != nil {
		return err
	}
	if err := bs.WriteBit(false); err != nil { // EE
		return err
	}

	// state 1: VersionNumberMajor
	if err := bs.WriteBit(false); err != nil {
		return err
	}
	if err := typedvalue.WriteUint32(bs, e.VersionMajor); err != nil {
		return err
	}

	// state 2: VersionNumberMinor
	if err := bs.WriteBit(false); err != nil {
		return err
	}
	if err := typedvalue.WriteUint32(bs, e.VersionMinor); err != nil {
		return err
	}

	// state 3: SchemaID
	if err := bs.WriteBit(false); err != nil {
		return err
	}
	if err := typedvalue.WriteNBitUint(bs, 8, uint32(e.SchemaID)); err != nil {
		return err
	}

	// state 4: Priority, wire value is priority-1
	if err := bs.WriteBit(false); err != nil {
		return err
	}
	if err := typedvalue.WriteNBitUint(bs, 5, uint32(e.Priority-1)); err != nil {
		return err
	}

	// state 5: End-Element of AppProtocolType
	return bs.WriteBit(false)
}

func decodeEntry(bs *bitstream.BitStream) (AppProtocolEntry, error) {
	var e AppProtocolEntry

	// state 0: ProtocolNamespace
	se, err := bs.ReadBit()
	if err != nil {
		return e, err
	}
	if se {
		return e, errcode.New("handshake.decodeEntry", errcode.UnknownEventCode)
	}
	subtype, err := basetype.ReadBool(bs)
	if err != nil {
		return e, err
	}
	if subtype {
		return e, errcode.New("handshake.decodeEntry", errcode.UnsupportedSubEvent)
	}
	wireLen, err := basetype.ReadUint16(bs)
	if err != nil {
		return e, err
	}
	if wireLen < 2 {
		return e, errcode.New("handshake.decodeEntry", errcode.StringvaluesNotSupported)
	}
	ns, err := basetype.ReadCharacters(bs, int(wireLen)-2, MaxNamespaceChars+1)
	if err != nil {
		return e, err
	}
	e.Namespace = ns
	ee, err := bs.ReadBit()
	if err != nil {
		return e, err
	}
	if ee {
		return e, errcode.New("handshake.decodeEntry", errcode.DeviantsNotSupported)
	}

	// state 1: VersionNumberMajor
	se, err = bs.ReadBit()
	if err != nil {
		return e, err
	}
	if se {
		return e, errcode.New("handshake.decodeEntry", errcode.UnknownEventCode)
	}
	e.VersionMajor, err = typedvalue.ReadUint32(bs)
	if err != nil {
		return e, err
	}

	// state 2: VersionNumberMinor
	se, err = bs.ReadBit()
	if err != nil {
		return e, err
	}
	if se {
		return e, errcode.New("handshake.decodeEntry", errcode.UnknownEventCode)
	}
	e.VersionMinor, err = typedvalue.ReadUint32(bs)
	if err != nil {
		return e, err
	}

	// state 3: SchemaID
	se, err = bs.ReadBit()
	if err != nil {
		return e, err
	}
	if se {
		return e, errcode.New("handshake.decodeEntry", errcode.UnknownEventCode)
	}
	schemaID, err := typedvalue.ReadNBitUint(bs, 8)
	if err != nil {
		return e, err
	}
	e.SchemaID = uint8(schemaID)

	// state 4: Priority
	se, err = bs.ReadBit()
	if err != nil {
		return e, err
	}
	if se {
		return e, errcode.New("handshake.decodeEntry", errcode.UnknownEventCode)
	}
	priority, err := typedvalue.ReadNBitUint(bs, 5)
	if err != nil {
		return e, err
	}
	e.Priority = uint8(priority) + 1

	// state 5: End-Element of AppProtocolType
	ee, err = bs.ReadBit()
	if err != nil {
		return e, err
	}
	if ee {
		return e, errcode.New("handshake.decodeEntry", errcode.UnknownEventCode)
	}
	return e, nil
}

func encodeReq(bs *bitstream.BitStream, req SupportedAppProtocolReq) error {
	n := len(req.Entries)
	if n == 0 || n > MaxEntries {
		return errcode.New("handshake.encodeReq", errcode.ArrayOutOfBounds)
	}

	// state 7: mandatory first entry
	if err := bs.WriteBit(false); err != nil {
		return err
	}
	if err := encodeEntry(bs, req.Entries[0]); err != nil {
		return err
	}
	index := 1

	// states 8..11: up to 4 more entries, each preceded by a 2-bit marker
	for state := 8; state <= 11; state++ {
		if index < n {
			if err := bs.WriteBits(2, 0); err != nil {
				return err
			}
			if err := encodeEntry(bs, req.Entries[index]); err != nil {
				return err
			}
			index++
			if state == 11 {
				// jump straight to the final End-Element, skipping the
				// usual 2-bit list terminator, per the 5th-entry quirk.
				return bs.WriteBit(false)
			}
			continue
		}
		// no more entries: emit the list End-Element
		return bs.WriteBits(2, 1)
	}
	return nil
}

func decodeReq(bs *bitstream.BitStream) (SupportedAppProtocolReq, error) {
	var req SupportedAppProtocolReq

	// state 7: mandatory first entry
	ev, err := bs.ReadBit()
	if err != nil {
		return req, err
	}
	if ev {
		return req, errcode.New("handshake.decodeReq", errcode.UnknownEventCode)
	}
	entry, err := decodeEntry(bs)
	if err != nil {
		return req, err
	}
	req.Entries = append(req.Entries, entry)

	// states 8..11
	for state := 8; state <= 11; state++ {
		code, err := bs.ReadBits(2)
		if err != nil {
			return req, err
		}
		switch code {
		case 0:
			if len(req.Entries) >= MaxEntries {
				return req, errcode.New("handshake.decodeReq", errcode.ArrayOutOfBounds)
			}
			entry, err := decodeEntry(bs)
			if err != nil {
				return req, err
			}
			req.Entries = append(req.Entries, entry)
			if state == 11 {
				// state 5: final End-Element, 1-bit
				ee, err := bs.ReadBit()
				if err != nil {
					return req, err
				}
				if ee {
					return req, errcode.New("handshake.decodeReq", errcode.UnknownEventCode)
				}
				return req, nil
			}
		case 1:
			return req, nil
		default:
			return req, errcode.New("handshake.decodeReq", errcode.UnknownEventCode)
		}
	}
	return req, nil
}

func encodeRes(bs *bitstream.BitStream, res SupportedAppProtocolRes) error {
	// state 12: ResponseCode
	if err := bs.WriteBit(false); err != nil {
		return err
	}
	if err := typedvalue.WriteNBitUint(bs, 2, uint32(res.ResponseCode)); err != nil {
		return err
	}

	// state 13
	if res.SchemaID != nil {
		if err := bs.WriteBits(2, 0); err != nil {
			return err
		}
		if err := typedvalue.WriteNBitUint(bs, 8, uint32(*res.SchemaID)); err != nil {
			return err
		}
		// state 5: final End-Element
		return bs.WriteBit(false)
	}
	return bs.WriteBits(2, 1)
}

func decodeRes(bs *bitstream.BitStream) (SupportedAppProtocolRes, error) {
	var res SupportedAppProtocolRes

	// state 12: ResponseCode
	se, err := bs.ReadBit()
	if err != nil {
		return res, err
	}
	if se {
		return res, errcode.New("handshake.decodeRes", errcode.UnknownEventCode)
	}
	code, err := typedvalue.ReadNBitUint(bs, 2)
	if err != nil {
		return res, err
	}
	switch code {
	case uint32(OkSuccessfulNegotiation), uint32(OkSuccessfulNegotiationWithMinorDeviation), uint32(FailedNoNegotiation):
		res.ResponseCode = ResponseCode(code)
	default:
		return res, errcode.New("handshake.decodeRes", errcode.UnsupportedIntegerValueType)
	}

	// state 13
	event, err := bs.ReadBits(2)
	if err != nil {
		return res, err
	}
	switch event {
	case 0:
		schemaID, err := typedvalue.ReadNBitUint(bs, 8)
		if err != nil {
			return res, err
		}
		v := uint8(schemaID)
		res.SchemaID = &v
		// state 5: final End-Element
		ee, err := bs.ReadBit()
		if err != nil {
			return res, err
		}
		if ee {
			return res, errcode.New("handshake.decodeRes", errcode.UnknownEventCode)
		}
		return res, nil
	case 1:
		return res, nil
	default:
		return res, errcode.New("handshake.decodeRes", errcode.UnknownEventCode)
	}
}
