// Command handshakecodec encodes and decodes the ISO 15118 / DIN 70121
// SupportedAppProtocol handshake messages to and from hex-encoded EXI.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/evstack/v2g-handshake-exi/handshake"
	"github.com/evstack/v2g-handshake-exi/internal/bitstream"
	"github.com/evstack/v2g-handshake-exi/internal/errcode"
)

var version = "dev"

const (
	ExitOK = iota
	ExitErrUsage
	ExitErrIO
	ExitErrProcessing
	ExitErrProtocol
)

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(ExitErrUsage)
	}

	switch os.Args[1] {
	case "help", "-h", "--help":
		usage()
		os.Exit(ExitOK)
	case "version", "--version", "-v":
		fmt.Println("handshakecodec", version)
		os.Exit(ExitOK)
	case "encode":
		if err := runEncode(os.Args[2:]); err != nil {
			logger.Error("encode failed", "err", err)
			os.Exit(mapErrorToCode(err))
		}
	case "decode":
		if err := runDecode(os.Args[2:]); err != nil {
			logger.Error("decode failed", "err", err)
			os.Exit(mapErrorToCode(err))
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n\n", os.Args[1])
		usage()
		os.Exit(ExitErrUsage)
	}
}

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Printf(`%s - SupportedAppProtocol EXI handshake codec

Usage:
  %s <command> [options]

Commands:
  encode req   Encode a SupportedAppProtocolReq to hex EXI
  encode res   Encode a SupportedAppProtocolRes to hex EXI
  decode       Decode hex EXI into a handshake document
  version      Print version
  help         Print this help

Encode Examples:
  %s encode req --namespace urn:din:70121:2012:MsgDef --major 2 --minor 0 --schema-id 1 --priority 1
  %s encode res --code ok --schema-id 0
  %s encode res --code failed

Decode Examples:
  %s decode "80400000"
  cat message.hex | %s decode
`, prog, prog, prog, prog, prog, prog, prog)
}

func mapErrorToCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if _, ok := err.(*os.PathError); ok {
		return ExitErrIO
	}
	if err == io.EOF {
		return ExitErrIO
	}
	if _, ok := err.(*errcode.Error); ok {
		return ExitErrProtocol
	}
	return ExitErrProcessing
}

func runEncode(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("encode requires a message kind: req or res")
	}
	kind := args[0]
	args = args[1:]

	var doc *handshake.Document
	var err error
	switch kind {
	case "req":
		doc, err = parseReqFlags(args)
	case "res":
		doc, err = parseResFlags(args)
	default:
		return fmt.Errorf("unknown message kind: %s", kind)
	}
	if err != nil {
		return err
	}

	buf := make([]byte, 1024)
	bs := bitstream.New(buf, len(buf), 0)
	if err := handshake.EncodeDocument(bs, doc); err != nil {
		return err
	}

	logger.Debug("encoded document", "kind", kind, "bytes", bs.Length())
	fmt.Println(hex.EncodeToString(buf[:bs.Length()]))
	return nil
}

func parseReqFlags(args []string) (*handshake.Document, error) {
	fs := pflag.NewFlagSet("encode req", pflag.ContinueOnError)
	namespace := fs.String("namespace", "", "Protocol namespace URI")
	major := fs.Uint32("major", 0, "Version number major")
	minor := fs.Uint32("minor", 0, "Version number minor")
	schemaID := fs.Uint8("schema-id", 0, "Schema id")
	priority := fs.Uint8("priority", 1, "Priority, 1..32")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *namespace == "" {
		return nil, fmt.Errorf("--namespace is required")
	}
	return handshake.NewReqDocument(&handshake.SupportedAppProtocolReq{
		Entries: []handshake.AppProtocolEntry{
			{
				Namespace:    *namespace,
				VersionMajor: *major,
				VersionMinor: *minor,
				SchemaID:     *schemaID,
				Priority:     *priority,
			},
		},
	}), nil
}

func parseResFlags(args []string) (*handshake.Document, error) {
	fs := pflag.NewFlagSet("encode res", pflag.ContinueOnError)
	code := fs.String("code", "ok", "Response code: ok, ok-minor-deviation, failed")
	schemaIDStr := fs.String("schema-id", "", "Schema id (omit for failed)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var rc handshake.ResponseCode
	switch *code {
	case "ok":
		rc = handshake.OkSuccessfulNegotiation
	case "ok-minor-deviation":
		rc = handshake.OkSuccessfulNegotiationWithMinorDeviation
	case "failed":
		rc = handshake.FailedNoNegotiation
	default:
		return nil, fmt.Errorf("unknown response code: %s", *code)
	}

	res := &handshake.SupportedAppProtocolRes{ResponseCode: rc}
	if *schemaIDStr != "" {
		n, err := strconv.ParseUint(*schemaIDStr, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid --schema-id: %w", err)
		}
		v := uint8(n)
		res.SchemaID = &v
	}
	return handshake.NewResDocument(res), nil
}

func runDecode(args []string) error {
	fs := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	inPath := fs.StringP("in", "i", "-", "Input file path. Use '-' for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var hexStr string
	if fs.NArg() > 0 {
		hexStr = fs.Arg(0)
	} else {
		in, err := openInput(*inPath)
		if err != nil {
			return err
		}
		defer closeIfFile(in)
		raw, err := io.ReadAll(in)
		if err != nil {
			return err
		}
		hexStr = string(raw)
	}

	raw, err := hex.DecodeString(strings.TrimSpace(hexStr))
	if err != nil {
		return fmt.Errorf("invalid hex input: %w", err)
	}

	bs := bitstream.New(raw, len(raw), 0)
	doc, err := handshake.DecodeDocument(bs)
	if err != nil {
		return err
	}

	printDocument(doc)
	return nil
}

func printDocument(doc *handshake.Document) {
	switch doc.Kind {
	case handshake.DocumentKindReq:
		fmt.Println("SupportedAppProtocolReq:")
		for i, e := range doc.Req.Entries {
			fmt.Printf("  [%d] namespace=%s major=%d minor=%d schema_id=%d priority=%d\n",
				i, e.Namespace, e.VersionMajor, e.VersionMinor, e.SchemaID, e.Priority)
		}
	case handshake.DocumentKindRes:
		fmt.Println("SupportedAppProtocolRes:")
		fmt.Printf("  response_code=%s\n", doc.Res.ResponseCode)
		if doc.Res.SchemaID != nil {
			fmt.Printf("  schema_id=%d\n", *doc.Res.SchemaID)
		}
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" || path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func closeIfFile(v io.Closer) {
	if f, ok := v.(*os.File); ok {
		if f == os.Stdin || f == os.Stdout || f == os.Stderr {
			return
		}
	}
	_ = v.Close()
}
