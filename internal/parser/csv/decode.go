package csv

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// decodeReader wraps r with a charset decoder when the pipeline declares a
// non-UTF-8 source encoding. Some published vintages of the dataset are
// Windows-1252.
func decodeReader(r io.Reader, enc string) (io.Reader, error) {
	switch enc {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "latin-1", "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("csv: unsupported encoding %q", enc)
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM strips a leading UTF-8 byte order mark if present. Exported CSVs
// from Windows tooling routinely carry one, and it would otherwise corrupt
// the first header name.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	peek, err := br.Peek(3)
	if err == nil && peek[0] == utf8BOM[0] && peek[1] == utf8BOM[1] && peek[2] == utf8BOM[2] {
		_, _ = br.Discard(3)
	}
	return br
}
