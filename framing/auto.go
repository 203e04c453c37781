package framing

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

var (
	gzipMagic   = []byte{0x1f, 0x8b}
	bzipMagic   = []byte("BZh")
	zstdMagic   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic    = []byte{0x04, 0x22, 0x4d, 0x18}
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

var magics = [][]byte{gzipMagic, bzipMagic, zstdMagic, lz4Magic, snappyMagic}

// Auto sniffs the first bytes of the stream for a known compression format.
// Anything unrecognised, including an empty stream, is passed through as-is.
// It only waits for more bytes while what it has could still be a magic number.
func Auto() Decompressor {
	return func(r io.Reader) (io.Reader, error) {
		input := bufio.NewReaderSize(r, 4096)
		return pickDecompressor(sniff(input))(input)
	}
}

func sniff(input *bufio.Reader) []byte {
	want := 1
	for {
		peek, err := input.Peek(want)
		if errors.Is(err, io.ErrNoProgress) {
			// the producer is alive but silent
			continue
		}
		if err != nil {
			// short or empty stream; decide on what we have
			return peek
		}
		// take whatever else already arrived without blocking
		peek, _ = input.Peek(input.Buffered())
		if !couldBeMagic(peek) {
			return peek
		}
		want = len(peek) + 1
	}
}

// couldBeMagic is true while peek is a strict prefix of some magic number.
func couldBeMagic(peek []byte) bool {
	for _, m := range magics {
		if len(peek) < len(m) && bytes.HasPrefix(m, peek) {
			return true
		}
	}
	return len(peek) == 1 && isZlibMethod(peek[0])
}

func pickDecompressor(peek []byte) Decompressor {
	switch {
	case bytes.HasPrefix(peek, gzipMagic):
		return Gzip()
	case bytes.HasPrefix(peek, bzipMagic):
		return Bzip()
	case bytes.HasPrefix(peek, zstdMagic):
		return Zstd()
	case bytes.HasPrefix(peek, lz4Magic):
		return LZ4()
	case bytes.HasPrefix(peek, snappyMagic):
		return Snappy()
	case isZlibHeader(peek):
		return Zlib()
	default:
		return None()
	}
}

// RFC 1950: deflate method with a window of at most 32K.
func isZlibMethod(cmf byte) bool {
	return cmf&0x0f == 8 && cmf>>4 <= 7
}

// the header checksum must hold as well
func isZlibHeader(peek []byte) bool {
	if len(peek) < 2 {
		return false
	}
	cmf, flg := peek[0], peek[1]
	return isZlibMethod(cmf) && (uint16(cmf)<<8|uint16(flg))%31 == 0
}

var decompressors = map[string]func() Decompressor{
	"none":   None,
	"auto":   Auto,
	"gzip":   Gzip,
	"bzip2":  Bzip,
	"zlib":   Zlib,
	"zstd":   Zstd,
	"snappy": Snappy,
	"lz4":    LZ4,
	"brotli": Brotli,
}

// DecompressorNames lists what DecompressorByName accepts.
func DecompressorNames() []string {
	names := make([]string, 0, len(decompressors))
	for name := range decompressors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func DecompressorByName(name string) (Decompressor, error) {
	if name == "" {
		return None(), nil
	}
	factory, ok := decompressors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown compression %q: must be one of %s", name, strings.Join(DecompressorNames(), ", "))
	}
	return factory(), nil
}
