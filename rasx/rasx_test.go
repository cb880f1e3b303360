package rasx

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/geddes/errs"
)

const profile = "10.00 120 1\n10.02\t130 1\n\n10.04 125 1\n"

// buildArchive writes a zip with the given entries in order.
func buildArchive(t *testing.T, entries map[string]string, order []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(entries[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestSelectEntry(t *testing.T) {
	t.Run("ExactNameWins", func(t *testing.T) {
		name, err := SelectEntry([]string{"Data0/Profile1.txt", "Other.txt", "Data0/Profile0.txt"})
		require.NoError(t, err)
		require.Equal(t, "Data0/Profile0.txt", name)
	})

	t.Run("ExactAmongOthers", func(t *testing.T) {
		name, err := SelectEntry([]string{"Data0/Profile0.txt", "Other.txt"})
		require.NoError(t, err)
		require.Equal(t, "Data0/Profile0.txt", name)
	})

	t.Run("FallbackPattern", func(t *testing.T) {
		name, err := SelectEntry([]string{"Data0/ProfileX.txt"})
		require.NoError(t, err)
		require.Equal(t, "Data0/ProfileX.txt", name)
	})

	t.Run("FirstFallbackWins", func(t *testing.T) {
		name, err := SelectEntry([]string{"MesurementConditions0.xml", "Data1/Profile2.txt", "Data0/Profile9.txt"})
		require.NoError(t, err)
		require.Equal(t, "Data1/Profile2.txt", name)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := SelectEntry([]string{"Other.txt", "Data0/Profile0.xml", "profile0.txt"})
		require.ErrorIs(t, err, errs.ErrEntryNotFound)
		require.Contains(t, err.Error(), "Profile*.txt")
	})
}

func TestDecode(t *testing.T) {
	t.Run("PreferredEntry", func(t *testing.T) {
		data := buildArchive(t, map[string]string{
			"Other.txt":          "1 2\n",
			"Data0/Profile0.txt": profile,
		}, []string{"Other.txt", "Data0/Profile0.txt"})

		p, err := Decode(bytes.NewReader(data), int64(len(data)))
		require.NoError(t, err)
		require.Equal(t, []float64{10.00, 10.02, 10.04}, p.X)
		require.Equal(t, []float64{120, 130, 125}, p.Y)
		require.Nil(t, p.E, "rasx never carries uncertainties")
	})

	t.Run("FallbackEntry", func(t *testing.T) {
		data := buildArchive(t, map[string]string{"Data0/ProfileX.txt": "5 6\n# note\n7 8\n"}, []string{"Data0/ProfileX.txt"})

		p, err := Decode(bytes.NewReader(data), int64(len(data)))
		require.NoError(t, err)
		require.Equal(t, []float64{5, 7}, p.X)
		require.Equal(t, []float64{6, 8}, p.Y)
	})

	t.Run("EntryNotFound", func(t *testing.T) {
		data := buildArchive(t, map[string]string{"Other.txt": "1 2\n"}, []string{"Other.txt"})

		_, err := Decode(bytes.NewReader(data), int64(len(data)))
		require.ErrorIs(t, err, errs.ErrEntryNotFound)
	})

	t.Run("Malformed", func(t *testing.T) {
		data := []byte("definitely not a zip archive")

		_, err := Decode(bytes.NewReader(data), int64(len(data)))
		require.ErrorIs(t, err, errs.ErrMalformedArchive)
	})

	t.Run("Truncated", func(t *testing.T) {
		data := buildArchive(t, map[string]string{"Data0/Profile0.txt": profile}, []string{"Data0/Profile0.txt"})
		data = data[:len(data)/2]

		_, err := Decode(bytes.NewReader(data), int64(len(data)))
		require.ErrorIs(t, err, errs.ErrMalformedArchive)
	})
}
