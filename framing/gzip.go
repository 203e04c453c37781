package framing

import (
	"compress/gzip"
	"compress/zlib"
	"io"
)

// Decompressor wraps a raw byte stream in a reader that yields the
// decompressed bytes. Line framing happens after decompression.
type Decompressor func(io.Reader) (io.Reader, error)

func Gzip() Decompressor {
	return func(r io.Reader) (io.Reader, error) {
		return gzip.NewReader(r)
	}
}

func Zlib() Decompressor {
	return func(r io.Reader) (io.Reader, error) {
		return zlib.NewReader(r)
	}
}

// None passes the stream through untouched.
func None() Decompressor {
	return func(r io.Reader) (io.Reader, error) {
		return r, nil
	}
}
