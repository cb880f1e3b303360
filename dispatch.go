package geddes

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/geddes/bruker"
	"github.com/arloliu/geddes/compress"
	"github.com/arloliu/geddes/errs"
	"github.com/arloliu/geddes/format"
	"github.com/arloliu/geddes/gsas"
	"github.com/arloliu/geddes/internal/hash"
	"github.com/arloliu/geddes/internal/pool"
	"github.com/arloliu/geddes/rasx"
	"github.com/arloliu/geddes/textcol"
	"github.com/arloliu/geddes/xrdml"
)

// input is a random-access byte source. data is set when the whole input is
// already in memory.
type input struct {
	r    io.ReaderAt
	size int64
	data []byte
}

func bytesInput(data []byte) input {
	return input{r: bytes.NewReader(data), size: int64(len(data)), data: data}
}

func (in input) stream() io.Reader {
	return io.NewSectionReader(in.r, 0, in.size)
}

// load reads the whole input into a pooled buffer unless it is already in
// memory. The returned release func must be called once the input is no
// longer used.
func (in input) load() (input, func(), error) {
	if in.data != nil {
		return in, func() {}, nil
	}

	bb := pool.GetInputBuffer()
	bb.Grow(int(in.size))
	if _, err := bb.ReadFrom(in.stream()); err != nil {
		pool.PutInputBuffer(bb)
		return input{}, nil, errs.IO(err)
	}

	return bytesInput(bb.Bytes()), func() { pool.PutInputBuffer(bb) }, nil
}

func (in input) digest() (uint64, error) {
	if in.data != nil {
		return hash.Digest(in.data), nil
	}

	d, _, err := hash.DigestReader(in.stream())
	if err != nil {
		return 0, errs.IO(err)
	}

	return d, nil
}

func decode(in input, name string, kind format.Kind, compression format.CompressionType, cfg *Config) (Result, error) {
	log := cfg.logger.WithFields(logrus.Fields{
		"file":        name,
		"format":      kind.String(),
		"compression": compression.String(),
	})

	limit := cfg.MaxInputSize()
	if in.size > limit {
		return Result{}, fmt.Errorf("%w: %s is %d bytes, limit %d", errs.ErrInputTooLarge, name, in.size, limit)
	}

	if compression != format.CompressionNone {
		d, err := compress.GetDecompressor(compression)
		if err != nil {
			return Result{}, err
		}

		bb := pool.GetInputBuffer()
		defer pool.PutInputBuffer(bb)
		if _, err := compress.Copy(bb, d, in.stream(), limit); err != nil {
			return Result{}, err
		}
		log.WithFields(logrus.Fields{"compressed": in.size, "size": bb.Len()}).Debug("decompressed input")
		in = bytesInput(bb.Bytes())
	}

	if kind == format.KindRAW {
		loaded, release, err := in.load()
		if err != nil {
			return Result{}, err
		}
		defer release()
		in = loaded
	}

	digest, err := in.digest()
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Format:      kind,
		Compression: compression,
		Digest:      digest,
		Size:        in.size,
	}

	var out decoded
	if kind == format.KindRAW {
		res.Decoder, out, err = decodeRaw(in, cfg, log)
	} else {
		res.Decoder = decoderFor(kind)
		out, err = decodeWith(res.Decoder, in)
	}
	if err != nil {
		log.WithError(err).WithField("decoder", res.Decoder.String()).Debug("decode failed")
		return Result{}, err
	}
	if err := out.pattern.Validate(); err != nil {
		return Result{}, err
	}
	res.Pattern, res.Reconstruction, res.Bank = out.pattern, out.reconstruction, out.bank

	if rec := res.Reconstruction; rec != nil {
		log.WithFields(logrus.Fields{
			"layout":      rec.Layout.Kind.String(),
			"data_offset": rec.Layout.DataOffset,
			"anchor":      rec.Metadata.Anchor,
			"score":       rec.Metadata.Score,
		}).Debug("reconstructed Bruker layout")
	}
	log.WithFields(logrus.Fields{
		"decoder": res.Decoder.String(),
		"points":  res.Len(),
	}).Debug("decoded pattern")

	return res, nil
}

// decoderFor maps a format to its decoder. KindRAW has no single decoder and
// maps to DecoderUnknown like unsupported kinds.
func decoderFor(kind format.Kind) format.Decoder {
	switch kind {
	case format.KindXY, format.KindXYE:
		return format.DecoderXY
	case format.KindCSV:
		return format.DecoderCSV
	case format.KindRASX:
		return format.DecoderRASX
	case format.KindXRDML:
		return format.DecoderXRDML
	case format.KindRAW, format.KindUnknown:
		return format.DecoderUnknown
	default:
		return format.DecoderUnknown
	}
}

// decoded is the output of a single decoder.
type decoded struct {
	pattern        Pattern
	reconstruction *bruker.Reconstruction
	bank           *gsas.Bank
}

// decodeRaw runs the raw decoders in the configured order. The second decoder
// only runs when the first finds no header; its error is returned when both fail.
func decodeRaw(in input, cfg *Config, log logrus.FieldLogger) (format.Decoder, decoded, error) {
	first, second := cfg.RawOrder()

	out, err := decodeWith(first, in)
	if err == nil || !errors.Is(err, errs.ErrHeaderNotFound) {
		return first, out, err
	}

	log.WithError(err).WithFields(logrus.Fields{
		"decoder":  first.String(),
		"fallback": second.String(),
	}).Debug("raw header not found, trying fallback decoder")

	out, err = decodeWith(second, in)

	return second, out, err
}

func decodeWith(d format.Decoder, in input) (decoded, error) {
	var (
		p   Pattern
		err error
	)

	switch d {
	case format.DecoderXY:
		p, err = textcol.DecodeXY(in.stream())
	case format.DecoderCSV:
		p, err = textcol.DecodeCSV(in.stream())
	case format.DecoderRASX:
		p, err = rasx.Decode(in.r, in.size)
	case format.DecoderXRDML:
		p, err = xrdml.Decode(in.stream())
	case format.DecoderGSAS:
		return decodeGSAS(in)
	case format.DecoderBruker:
		return decodeBruker(in.data)
	case format.DecoderUnknown:
		return decoded{}, fmt.Errorf("%w: no decoder selected", errs.ErrUnknownFormat)
	default:
		return decoded{}, fmt.Errorf("%w: decoder %s", errs.ErrUnknownFormat, d)
	}
	if err != nil {
		return decoded{}, err
	}

	return decoded{pattern: p}, nil
}

func decodeGSAS(in input) (decoded, error) {
	bank, p, err := gsas.DecodeBank(in.stream())
	if err != nil {
		return decoded{}, err
	}

	return decoded{pattern: p, bank: &bank}, nil
}

func decodeBruker(data []byte) (decoded, error) {
	rec, err := bruker.Reconstruct(data)
	if err != nil {
		return decoded{}, err
	}

	p, err := rec.Pattern(data)
	if err != nil {
		return decoded{}, err
	}

	return decoded{pattern: p, reconstruction: &rec}, nil
}
