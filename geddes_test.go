package geddes

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/geddes/errs"
	"github.com/arloliu/geddes/format"
	"github.com/arloliu/geddes/internal/hash"
)

func TestReadBytes_Formats(t *testing.T) {
	bruker, _ := brukerRaw()

	tests := []struct {
		name    string
		file    string
		data    []byte
		decoder format.Decoder
		x       []float64
		y       []float64
		e       []float64
	}{
		{"XY", "scan.xy", []byte(xyText), format.DecoderXY, []float64{10, 10.5, 11}, []float64{100, 120, 140}, nil},
		{"XYE", "scan.XYE", []byte(xyeText), format.DecoderXY, []float64{10, 10.5, 11}, []float64{100, 120, 140}, []float64{10, 11, 12}},
		{"CSV", "scan.csv", []byte(csvText), format.DecoderCSV, []float64{10, 10.5, 11}, []float64{100, 120, 140}, nil},
		{"RASX", "scan.rasx", rasxArchive(t), format.DecoderRASX, []float64{10.00, 10.02, 10.04}, []float64{120, 130, 125}, nil},
		{"XRDML", "scan.xrdml", []byte(xrdmlText), format.DecoderXRDML, []float64{10, 11, 12}, []float64{100, 200, 150}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := DecodeBytes(tt.data, tt.file)
			require.NoError(t, err)
			require.Equal(t, tt.decoder, res.Decoder)
			require.Equal(t, format.CompressionNone, res.Compression)
			require.Equal(t, tt.x, res.X)
			require.Equal(t, tt.y, res.Y)
			require.Equal(t, tt.e, res.E)
			require.Equal(t, int64(len(tt.data)), res.Size)
			require.Equal(t, hash.Digest(tt.data), res.Digest)
			require.Nil(t, res.Reconstruction)

			p, err := ReadBytes(tt.data, tt.file)
			require.NoError(t, err)
			require.Equal(t, res.Pattern, p)
		})
	}

	t.Run("GSAS", func(t *testing.T) {
		res, err := DecodeBytes([]byte(gsasText), "scan.raw")
		require.NoError(t, err)
		require.Equal(t, format.KindRAW, res.Format)
		require.Equal(t, format.DecoderGSAS, res.Decoder)
		require.Equal(t, []float64{100, 110, 120, 130, 140, 150}, res.Y)
		require.Equal(t, 16.0, res.X[0])
		requireMonotonic(t, res.X)
		require.Nil(t, res.Reconstruction)
		require.NotNil(t, res.Bank)
		require.Equal(t, "1", res.Bank.ID)
		require.Equal(t, "CONST", res.Bank.BinType)
		require.Equal(t, 16.0, res.Bank.Start)
	})

	t.Run("BrukerFallback", func(t *testing.T) {
		res, err := DecodeBytes(bruker, "scan.RAW")
		require.NoError(t, err)
		require.Equal(t, format.DecoderBruker, res.Decoder)
		require.Len(t, res.Y, brukerPoints)
		require.Equal(t, 10.0, res.X[0])
		require.Nil(t, res.E)
		requireMonotonic(t, res.X)
		require.NotNil(t, res.Reconstruction)
		require.Nil(t, res.Bank)
		require.Equal(t, brukerPoints, res.Reconstruction.Layout.Count)
	})
}

func TestReadBytes_UnknownFormat(t *testing.T) {
	for _, name := range []string{"foo.bin", "noext", "", "scan.xy.bz2", "archive.gz"} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadBytes([]byte("10 20\n"), name)
			require.ErrorIs(t, err, errs.ErrUnknownFormat)
		})
	}
}

func TestRead_UnknownFormatBeforeIO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist", "foo.bin")

	_, err := Read(path)
	require.ErrorIs(t, err, errs.ErrUnknownFormat)
	require.NotErrorIs(t, err, errs.ErrIO)
}

func TestRead_Files(t *testing.T) {
	dir := t.TempDir()
	bruker, values := brukerRaw()

	files := map[string][]byte{
		"a.xy":    []byte(xyText),
		"b.rasx":  rasxArchive(t),
		"c.xrdml": []byte(xrdmlText),
		"d.raw":   []byte(gsasText),
		"e.raw":   bruker,
	}
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}

	for name, data := range files {
		t.Run(name, func(t *testing.T) {
			fromFile, err := DecodeFile(filepath.Join(dir, name))
			require.NoError(t, err)

			fromBytes, err := DecodeBytes(data, name)
			require.NoError(t, err)
			require.Equal(t, fromBytes, fromFile)
			require.Equal(t, hash.Digest(data), fromFile.Digest)
		})
	}

	p, err := Read(filepath.Join(dir, "e.raw"))
	require.NoError(t, err)
	for i, v := range values {
		require.Equal(t, float64(v), p.Y[i])
	}

	t.Run("Missing", func(t *testing.T) {
		_, err := Read(filepath.Join(dir, "missing.xy"))
		require.ErrorIs(t, err, errs.ErrIO)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestDecode_ReaderAt(t *testing.T) {
	data := rasxArchive(t)

	res, err := Decode(bytes.NewReader(data), int64(len(data)), "upload/scan.rasx")
	require.NoError(t, err)
	require.Equal(t, format.KindRASX, res.Format)
	require.Equal(t, []float64{120, 130, 125}, res.Y)
}

func TestReadBytes_Compressed(t *testing.T) {
	bruker, _ := brukerRaw()
	inputs := map[string][]byte{
		"scan.xy":    []byte(xyText),
		"scan.csv":   []byte(csvText),
		"scan.rasx":  rasxArchive(t),
		"scan.xrdml": []byte(xrdmlText),
		"gsas.raw":   []byte(gsasText),
		"bruker.raw": bruker,
	}
	suffixes := map[format.CompressionType]string{
		format.CompressionGzip: ".gz",
		format.CompressionZstd: ".zst",
		format.CompressionLZ4:  ".lz4",
		format.CompressionS2:   ".S2",
	}

	for name, data := range inputs {
		plain, err := DecodeBytes(data, name)
		require.NoError(t, err)

		for ct, suffix := range suffixes {
			t.Run(name+suffix, func(t *testing.T) {
				res, err := DecodeBytes(wrap(t, ct, data), name+suffix)
				require.NoError(t, err)
				require.Equal(t, ct, res.Compression)
				require.Equal(t, plain.Format, res.Format)
				require.Equal(t, plain.Decoder, res.Decoder)
				require.Equal(t, plain.Pattern, res.Pattern)
				require.Equal(t, plain.Digest, res.Digest)
				require.Equal(t, int64(len(data)), res.Size)
			})
		}
	}

	t.Run("Corrupt", func(t *testing.T) {
		_, err := ReadBytes([]byte(xyText), "scan.xy.zst")
		require.ErrorIs(t, err, errs.ErrDecompress)
	})
}

func TestReadBytes_MaxInputSize(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		_, err := ReadBytes([]byte(xyText), "scan.xy", WithMaxInputSize(8))
		require.ErrorIs(t, err, errs.ErrInputTooLarge)

		_, err = ReadBytes([]byte(xyText), "scan.xy", WithMaxInputSize(int64(len(xyText))))
		require.NoError(t, err)
	})

	t.Run("Decompressed", func(t *testing.T) {
		data := []byte(strings.Repeat("10.0 100\n", 1000))
		compressed := wrap(t, format.CompressionGzip, data)
		limit := int64(len(data) - 1)
		require.Less(t, int64(len(compressed)), limit)

		_, err := ReadBytes(compressed, "scan.xy.gz", WithMaxInputSize(limit))
		require.ErrorIs(t, err, errs.ErrInputTooLarge)
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		_, err := ReadBytes([]byte(xyText), "scan.xy", WithMaxInputSize(0))
		require.ErrorIs(t, err, errs.ErrInvalidOption)
	})
}

func TestRawOrder(t *testing.T) {
	bruker, _ := brukerRaw()

	t.Run("BrukerFirst", func(t *testing.T) {
		res, err := DecodeBytes(bruker, "scan.raw", WithRawOrder(format.DecoderBruker, format.DecoderGSAS))
		require.NoError(t, err)
		require.Equal(t, format.DecoderBruker, res.Decoder)
	})

	t.Run("BrukerFirstFallsBackToGSAS", func(t *testing.T) {
		res, err := DecodeBytes([]byte(gsasText), "scan.raw", WithRawOrder(format.DecoderBruker, format.DecoderGSAS))
		require.NoError(t, err)
		require.Equal(t, format.DecoderGSAS, res.Decoder)
		require.Equal(t, 16.0, res.X[0])
	})

	t.Run("BothMissingHeader", func(t *testing.T) {
		_, err := ReadBytes([]byte("10.0 100\n10.5 120\n"), "scan.raw")
		require.ErrorIs(t, err, errs.ErrHeaderNotFound)
		require.Contains(t, err.Error(), "Bruker")
	})

	t.Run("NoFallbackOnOtherParseErrors", func(t *testing.T) {
		_, err := ReadBytes([]byte("BANK 1 2 3 CONST start 1.7\n"), "scan.raw")
		require.ErrorIs(t, err, errs.ErrParse)
		require.NotErrorIs(t, err, errs.ErrHeaderNotFound)
		require.Contains(t, err.Error(), "invalid start")
	})

	t.Run("BrukerMetadataMissing", func(t *testing.T) {
		data, _ := brukerRaw()
		copy(data[64:80], make([]byte, 16))

		_, err := ReadBytes(data, "scan.raw")
		require.ErrorIs(t, err, errs.ErrParse)
		require.Contains(t, err.Error(), "metadata not found")
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, order := range [][2]format.Decoder{
			{format.DecoderGSAS, format.DecoderGSAS},
			{format.DecoderXY, format.DecoderBruker},
			{format.DecoderBruker, format.DecoderUnknown},
		} {
			_, err := ReadBytes([]byte(gsasText), "scan.raw", WithRawOrder(order[0], order[1]))
			require.ErrorIs(t, err, errs.ErrInvalidOption)
		}
	})
}

func TestWithLogger(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	bruker, _ := brukerRaw()

	_, err := ReadBytes(bruker, "scan.raw", WithLogger(logger))
	require.NoError(t, err)

	var messages []string
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
	}
	require.Contains(t, messages, "raw header not found, trying fallback decoder")
	require.Contains(t, messages, "reconstructed Bruker layout")
	require.Contains(t, messages, "decoded pattern")

	last := hook.LastEntry()
	require.Equal(t, "Bruker", last.Data["decoder"])
	require.Equal(t, brukerPoints, last.Data["points"])

	t.Run("NilRestoresDefault", func(t *testing.T) {
		_, err := ReadBytes([]byte(xyText), "scan.xy", WithLogger(nil))
		require.NoError(t, err)
	})
}

func BenchmarkReadBytes(b *testing.B) {
	bruker, _ := brukerRaw()
	inputs := map[string][]byte{
		"scan.xy":    []byte(strings.Repeat("10.0 100 1\n", 5000)),
		"scan.xrdml": []byte(xrdmlText),
		"scan.raw":   bruker,
	}

	for name, data := range inputs {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				if _, err := ReadBytes(data, name); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
