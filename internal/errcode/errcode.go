// Package errcode defines the closed error taxonomy shared by every layer
// of the handshake codec: stream, header, base-type, buffer, grammar and
// datatype failures. Every fallible codec operation returns one of these
// codes wrapped in an *Error rather than a bare error string, so callers
// can dispatch with errors.Is/errors.As instead of matching on text.
package errcode

import (
	"errors"
	"fmt"
)

// Code identifies one member of the closed error taxonomy. The numeric
// values are not part of the wire format; they exist only so the codes
// remain stable identifiers across log lines and tests.
type Code int

const (
	// Stream
	BitstreamOverflow Code = iota + 1

	// Header
	HeaderCookieNotSupported
	HeaderOptionsNotSupported

	// Base-type
	SupportedMaxOctetsOverrun
	OctetCountLargerThanTypeSupports
	BitCountLargerThanTypeSize
	ByteCountLargerThanTypeSize

	// Buffer
	ByteBufferTooSmall
	CharacterBufferTooSmall
	ArrayOutOfBounds

	// Grammar
	UnknownGrammarId
	UnknownEventCode
	UnsupportedSubEvent
	DeviantsNotSupported

	// Datatype
	StringvaluesNotSupported
	UnsupportedIntegerValueType
	UnsupportedDatetimeType
	UnsupportedCharacterValue
)

var names = map[Code]string{
	BitstreamOverflow:                "BitstreamOverflow",
	HeaderCookieNotSupported:         "HeaderCookieNotSupported",
	HeaderOptionsNotSupported:        "HeaderOptionsNotSupported",
	SupportedMaxOctetsOverrun:        "SupportedMaxOctetsOverrun",
	OctetCountLargerThanTypeSupports: "OctetCountLargerThanTypeSupports",
	BitCountLargerThanTypeSize:       "BitCountLargerThanTypeSize",
	ByteCountLargerThanTypeSize:      "ByteCountLargerThanTypeSize",
	ByteBufferTooSmall:               "ByteBufferTooSmall",
	CharacterBufferTooSmall:          "CharacterBufferTooSmall",
	ArrayOutOfBounds:                 "ArrayOutOfBounds",
	UnknownGrammarId:                 "UnknownGrammarId",
	UnknownEventCode:                 "UnknownEventCode",
	UnsupportedSubEvent:              "UnsupportedSubEvent",
	DeviantsNotSupported:             "DeviantsNotSupported",
	StringvaluesNotSupported:         "StringvaluesNotSupported",
	UnsupportedIntegerValueType:      "UnsupportedIntegerValueType",
	UnsupportedDatetimeType:          "UnsupportedDatetimeType",
	UnsupportedCharacterValue:        "UnsupportedCharacterValue",
}

func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error pairs a Code with the operation that raised it and, optionally,
// an underlying cause (e.g. a wrapped stream error surfaced through a
// higher layer).
type Error struct {
	Code Code
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error for op with no wrapped cause.
func New(op string, code Code) *Error {
	return &Error{Op: op, Code: code}
}

// Wrap builds an *Error for op with code, wrapping an underlying cause.
func Wrap(op string, code Code, err error) *Error {
	return &Error{Op: op, Code: code, Err: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Err
	}
	return false
}
