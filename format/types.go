package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/geddes/errs"
)

type (
	Kind            uint8
	Decoder         uint8
	CompressionType uint8
)

const (
	KindUnknown Kind = 0x0
	KindXY      Kind = 0x1 // KindXY represents whitespace-delimited two/three-column text (.xy).
	KindXYE     Kind = 0x2 // KindXYE represents .xye files, decoded like KindXY.
	KindCSV     Kind = 0x3 // KindCSV represents comma- or whitespace-delimited text (.csv).
	KindRASX    Kind = 0x4 // KindRASX represents Rigaku zip containers (.rasx).
	KindXRDML   Kind = 0x5 // KindXRDML represents Panalytical XML documents (.xrdml).
	KindRAW     Kind = 0x6 // KindRAW represents GSAS text or Bruker binary files (.raw).

	DecoderUnknown Decoder = 0x0
	DecoderXY      Decoder = 0x1 // DecoderXY is the whitespace text-column decoder.
	DecoderCSV     Decoder = 0x2 // DecoderCSV is the comma-aware text-column decoder.
	DecoderRASX    Decoder = 0x3 // DecoderRASX is the archive profile extractor.
	DecoderXRDML   Decoder = 0x4 // DecoderXRDML is the streaming tag decoder.
	DecoderGSAS    Decoder = 0x5 // DecoderGSAS is the BANK header text decoder.
	DecoderBruker  Decoder = 0x6 // DecoderBruker is the binary layout reconstructor.

	CompressionNone CompressionType = 0x1 // CompressionNone represents an unwrapped input.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a .zst wrapper.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents a .s2 stream wrapper.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents a .lz4 frame wrapper.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents a .gz wrapper.
)

var kindByExt = map[string]Kind{
	"xy":    KindXY,
	"xye":   KindXYE,
	"csv":   KindCSV,
	"rasx":  KindRASX,
	"xrdml": KindXRDML,
	"raw":   KindRAW,
}

var compressionByExt = map[string]CompressionType{
	"gz":  CompressionGzip,
	"zst": CompressionZstd,
	"lz4": CompressionLZ4,
	"s2":  CompressionS2,
}

func (k Kind) String() string {
	switch k {
	case KindXY:
		return "XY"
	case KindXYE:
		return "XYE"
	case KindCSV:
		return "CSV"
	case KindRASX:
		return "RASX"
	case KindXRDML:
		return "XRDML"
	case KindRAW:
		return "RAW"
	default:
		return "Unknown"
	}
}

// Extension returns the lower-case file extension of the kind, without the dot.
func (k Kind) Extension() string {
	for ext, kind := range kindByExt {
		if kind == k {
			return ext
		}
	}

	return ""
}

func (d Decoder) String() string {
	switch d {
	case DecoderXY:
		return "XY"
	case DecoderCSV:
		return "CSV"
	case DecoderRASX:
		return "RASX"
	case DecoderXRDML:
		return "XRDML"
	case DecoderGSAS:
		return "GSAS"
	case DecoderBruker:
		return "Bruker"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

// Kinds returns every supported format kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindXY, KindXYE, KindCSV, KindRASX, KindXRDML, KindRAW}
}

// Compressions returns every supported compression wrapper with its file suffix.
func Compressions() map[string]CompressionType {
	out := make(map[string]CompressionType, len(compressionByExt))
	for ext, c := range compressionByExt {
		out[ext] = c
	}

	return out
}

// ParseDecoder resolves a decoder from its case-insensitive name, e.g. "gsas" or "bruker".
func ParseDecoder(name string) (Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "xy":
		return DecoderXY, nil
	case "csv":
		return DecoderCSV, nil
	case "rasx":
		return DecoderRASX, nil
	case "xrdml":
		return DecoderXRDML, nil
	case "gsas":
		return DecoderGSAS, nil
	case "bruker":
		return DecoderBruker, nil
	default:
		return DecoderUnknown, fmt.Errorf("unknown decoder %q", name)
	}
}

// FromFilename resolves the format kind and compression wrapper of a filename.
//
// Only the final path element is inspected and extensions are matched
// case-insensitively. A trailing compression suffix (.gz, .zst, .lz4, .s2) is
// stripped and the inner extension decides the kind, so "scan.XY.gz" resolves to
// (KindXY, CompressionGzip). No file content is consulted.
//
// Parameters:
//   - name: File name or path; directories are ignored
//
// Returns:
//   - Kind: Resolved format kind
//   - CompressionType: CompressionNone for unwrapped names
//   - error: errs.ErrUnknownFormat if no supported extension is present
func FromFilename(name string) (Kind, CompressionType, error) {
	base := name
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	base = strings.ToLower(base)

	compression := CompressionNone
	ext := extension(base)
	if c, ok := compressionByExt[ext]; ok {
		compression = c
		base = strings.TrimSuffix(base, "."+ext)
		ext = extension(base)
	}

	kind, ok := kindByExt[ext]
	if !ok {
		return KindUnknown, compression, fmt.Errorf("%w: %q", errs.ErrUnknownFormat, name)
	}

	return kind, compression, nil
}

func extension(base string) string {
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}

	return base[i+1:]
}
