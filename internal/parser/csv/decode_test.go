package csv

import (
	"io"
	"strings"
	"testing"
)

func TestDecodeReaderWindows1252(t *testing.T) {
	// 0xF3 is "ó" in Windows-1252 and invalid standalone UTF-8
	raw := strings.NewReader("C\xf3rdoba")
	r, err := decodeReader(raw, "windows-1252")
	if err != nil {
		t.Fatalf("decodeReader: %v", err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "Córdoba" {
		t.Fatalf("got %q; want Córdoba", b)
	}
}

func TestDecodeReaderPassthrough(t *testing.T) {
	raw := strings.NewReader("plain")
	for _, enc := range []string{"", "utf-8", "utf8"} {
		r, err := decodeReader(raw, enc)
		if err != nil {
			t.Fatalf("decodeReader(%q): %v", enc, err)
		}
		if r != raw {
			t.Fatalf("encoding %q should pass the reader through", enc)
		}
	}
}

func TestDecodeReaderUnknownEncoding(t *testing.T) {
	if _, err := decodeReader(strings.NewReader(""), "ebcdic"); err == nil {
		t.Fatal("unknown encoding should error")
	}
}

func TestSkipBOM(t *testing.T) {
	withBOM := strings.NewReader("\xef\xbb\xbfhdr")
	b, err := io.ReadAll(skipBOM(withBOM))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "hdr" {
		t.Fatalf("got %q; want hdr", b)
	}

	// short inputs without a BOM are untouched
	plain := strings.NewReader("ab")
	b, err = io.ReadAll(skipBOM(plain))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "ab" {
		t.Fatalf("got %q; want ab", b)
	}
}
