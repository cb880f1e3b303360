package xrdml

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Older diffractometer software writes Latin-1 or Windows-1252 documents.
var commonCharsets = map[string]encoding.Encoding{
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
}

// charsetReader converts a document declaring a non-UTF-8 encoding to UTF-8.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	switch {
	case key == "us-ascii" || key == "ascii":
		return input, nil
	case strings.HasPrefix(key, "utf-16"):
		// already transcoded from its byte order mark
		return input, nil
	}

	enc, ok := commonCharsets[key]
	if !ok {
		var err error
		enc, err = ianaindex.IANA.Encoding(label)
		if err != nil || enc == nil {
			return nil, fmt.Errorf("unsupported XML encoding %q", label)
		}
	}

	return enc.NewDecoder().Reader(input), nil
}
