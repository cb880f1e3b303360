package geddes

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/geddes/format"
)

const (
	xyText  = "# sample\n10.0 100\n10.5 120 \n! note\n\n11.0 140\n"
	xyeText = "10.0 100 10\n10.5 120 11\n11.0 140 12\n"
	csvText = "x,y\n10.0,100\n10.5, 120\n11.0 ,140\n"

	gsasText = "CoO at 25C\n" +
		"BANK 1 4941 494 CONST 1600.0 1.7 0.0 0.0 STD\n" +
		"  100  110  120  130  140\n  150\n"

	xrdmlText = `<?xml version="1.0" encoding="UTF-8"?>
<xrdMeasurements>
  <xrdMeasurement>
    <scan>
      <dataPoints>
        <positions axis="2Theta" unit="deg">
          <startPosition>10.0</startPosition>
          <endPosition>12.0</endPosition>
        </positions>
        <intensities unit="counts">100 200 150</intensities>
      </dataPoints>
    </scan>
  </xrdMeasurement>
</xrdMeasurements>`

	brukerPoints = 200
)

func rasxArchive(t testing.TB) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range []struct{ name, body string }{
		{"MesurementConditions0.xml", "<conditions/>"},
		{"Data0/Profile0.txt", "10.00 120 1\n10.02 130 1\n10.04 125 1\n"},
	} {
		w, err := zw.Create(entry.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(entry.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// brukerRaw builds a RAW4 buffer recording start 10, step 0.02 and the point
// count in its header, followed by a plain float32 intensity block.
func brukerRaw() ([]byte, []float32) {
	h := make([]byte, 88)
	copy(h, "RAW4.00\x00")
	binary.LittleEndian.PutUint64(h[64:], math.Float64bits(10.0))
	binary.LittleEndian.PutUint64(h[72:], math.Float64bits(0.02))
	binary.LittleEndian.PutUint32(h[80:], brukerPoints)
	binary.LittleEndian.PutUint32(h[84:], math.MaxUint32)

	values := make([]float32, brukerPoints)
	for i := range values {
		values[i] = float32(1000 + 3.25*float64((i*37)%101))
		h = binary.LittleEndian.AppendUint32(h, math.Float32bits(values[i]))
	}

	return h, values
}

func wrap(t testing.TB, ct format.CompressionType, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	switch ct {
	case format.CompressionGzip:
		w := gzip.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case format.CompressionZstd:
		w, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case format.CompressionLZ4:
		w := lz4.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case format.CompressionS2:
		w := s2.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case format.CompressionNone:
		buf.Write(data)
	default:
		t.Fatalf("unexpected compression %s", ct)
	}

	return buf.Bytes()
}

func requireMonotonic(t *testing.T, x []float64) {
	t.Helper()

	for i := 1; i < len(x); i++ {
		require.Greater(t, x[i], x[i-1], "x[%d]", i)
	}
}
