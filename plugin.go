package fleece

import (
	"context"
	"io"
)

// InputPlugin hands the pipeline a source of frames.
type InputPlugin interface {
	Open(context.Context) (FrameReader, error)
}

// FrameReader yields one frame per call. A zero-length frame with a nil error
// means the producer had nothing for us yet; io.EOF means it never will.
type FrameReader interface {
	ReadFrame() ([]byte, error)
}

type FramingPlugin func(io.Reader) FrameReader

type OutputPlugin interface {
	Run(context.Context, Event) error
}

type FilterPlugin func(event *Event) error

type CodecPlugin interface {
	Encode(Event) ([]byte, error)
	Decode([]byte) (Event, error)
}
