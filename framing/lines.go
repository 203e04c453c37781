package framing

import (
	"bufio"
	"errors"
	"io"

	"github.com/nicwaller/fleece"
)

// Lines cuts a stream into lines of at most windowSize bytes, trailing newline
// included. A longer line comes out as several consecutive frames.
func Lines(windowSize int) fleece.FramingPlugin {
	if windowSize <= 0 {
		windowSize = fleece.DefaultWindowSize
	}
	return func(r io.Reader) fleece.FrameReader {
		return &lines{
			reader: bufio.NewReader(r),
			window: windowSize,
		}
	}
}

type lines struct {
	reader *bufio.Reader
	window int
}

// ReadFrame returns whatever partial line it has alongside io.EOF when the
// stream ends without a trailing newline.
func (p *lines) ReadFrame() ([]byte, error) {
	frame := make([]byte, 0, min(p.window, 4096))
	for len(frame) < p.window {
		b, err := p.reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.ErrNoProgress) {
				// the producer is alive but silent
				if len(frame) == 0 {
					return frame, nil
				}
				// a line is never cut short by a stall
				continue
			}
			return frame, err
		}
		frame = append(frame, b)
		if b == '\n' {
			break
		}
	}
	return frame, nil
}
