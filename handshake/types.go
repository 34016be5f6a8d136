// Package handshake implements the ISO 15118 / DIN 70121
// SupportedAppProtocol handshake: the data model, the two EXI grammar
// state machines that walk it, and the document-level encode/decode
// entry points.
package handshake

// MaxNamespaceChars bounds AppProtocolEntry.Namespace, mirroring the
// reference schema's anyURI character-buffer size.
const MaxNamespaceChars = 100

// MaxEntries bounds the number of AppProtocolEntry values a
// SupportedAppProtocolReq may carry.
const MaxEntries = 5

// ResponseCode enumerates the outcome of protocol negotiation.
type ResponseCode uint8

const (
	OkSuccessfulNegotiation                   ResponseCode = 0
	OkSuccessfulNegotiationWithMinorDeviation ResponseCode = 1
	FailedNoNegotiation                       ResponseCode = 2
)

func (r ResponseCode) String() string {
	switch r {
	case OkSuccessfulNegotiation:
		return "OkSuccessfulNegotiation"
	case OkSuccessfulNegotiationWithMinorDeviation:
		return "OkSuccessfulNegotiationWithMinorDeviation"
	case FailedNoNegotiation:
		return "FailedNoNegotiation"
	default:
		return "ResponseCode(unknown)"
	}
}

// AppProtocolEntry is one advertised candidate protocol: a namespace
// URI, a two-part version, a schema id, and a priority in [1,32].
type AppProtocolEntry struct {
	Namespace    string
	VersionMajor uint32
	VersionMinor uint32
	SchemaID     uint8
	Priority     uint8
}

// SupportedAppProtocolReq is the vehicle's advertisement of 1..5
// candidate protocols.
type SupportedAppProtocolReq struct {
	Entries []AppProtocolEntry
}

// SupportedAppProtocolRes is the charger's selection. SchemaID is
// present unless ResponseCode is FailedNoNegotiation.
type SupportedAppProtocolRes struct {
	ResponseCode ResponseCode
	SchemaID     *uint8
}

// DocumentKind discriminates the two-case Document union.
type DocumentKind uint8

const (
	DocumentKindReq DocumentKind = iota
	DocumentKindRes
)

// Document is the tagged union of the two handshake messages, the Go
// rendering of a closed two-case sum type: exactly one of Req/Res is
// populated, selected by Kind.
type Document struct {
	Kind DocumentKind
	Req  *SupportedAppProtocolReq
	Res  *SupportedAppProtocolRes
}

// NewReqDocument wraps req as a Document.
func NewReqDocument(req *SupportedAppProtocolReq) *Document {
	return &Document{Kind: DocumentKindReq, Req: req}
}

// NewResDocument wraps res as a Document.
func NewResDocument(res *SupportedAppProtocolRes) *Document {
	return &Document{Kind: DocumentKindRes, Res: res}
}
