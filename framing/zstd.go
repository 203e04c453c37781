package framing

import (
	"io"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

func Zstd() Decompressor {
	return func(r io.Reader) (io.Reader, error) {
		// one line at a time; no use for parallel block decoding
		return zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	}
}

// Snappy reads the framed snappy stream format, not raw blocks.
func Snappy() Decompressor {
	return func(r io.Reader) (io.Reader, error) {
		return snappy.NewReader(r), nil
	}
}

// LZ4 reads the lz4 frame format.
func LZ4() Decompressor {
	return func(r io.Reader) (io.Reader, error) {
		return lz4.NewReader(r), nil
	}
}

// Brotli has no magic number, so Auto never picks it.
func Brotli() Decompressor {
	return func(r io.Reader) (io.Reader, error) {
		return brotli.NewReader(r), nil
	}
}
