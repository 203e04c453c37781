package framing

import (
	"compress/bzip2"
	"io"
)

func Bzip() Decompressor {
	return func(r io.Reader) (io.Reader, error) {
		return bzip2.NewReader(r), nil
	}
}
