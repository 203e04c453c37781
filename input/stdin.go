package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nicwaller/fleece"
	"github.com/nicwaller/fleece/framing"
)

// Reader cuts a stream, usually standard input, into lines of at most
// windowSize bytes.
func Reader(r io.Reader, windowSize int) fleece.InputPlugin {
	return Compressed(r, windowSize, framing.None())
}

// Compressed decompresses the stream before cutting it into lines.
func Compressed(r io.Reader, windowSize int, dec framing.Decompressor) fleece.InputPlugin {
	return &readerInput{
		reader:     r,
		decompress: dec,
		framing:    framing.Lines(windowSize),
	}
}

type readerInput struct {
	reader     io.Reader
	decompress framing.Decompressor
	framing    fleece.FramingPlugin
}

func (p *readerInput) Open(ctx context.Context) (fleece.FrameReader, error) {
	log := fleece.ContextLogger(ctx)
	log.Debug("opening input")

	stream, err := p.decompress(p.reader)
	if errors.Is(err, io.EOF) {
		// nothing at all on the stream, not even a header
		log.Debug("input is empty")
		return p.framing(strings.NewReader("")), nil
	}
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	return p.framing(stream), nil
}
