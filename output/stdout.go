package output

import (
	"context"
	"io"

	"github.com/nicwaller/fleece"
	"github.com/nicwaller/fleece/codec"
)

// Writer writes one encoded event per line.
func Writer(w io.Writer, opts StdoutOptions) fleece.OutputPlugin {
	if opts.Codec == nil {
		opts.Codec = codec.Json()
	}
	return &stdOut{w: w, opts: opts}
}

type stdOut struct {
	w    io.Writer
	opts StdoutOptions
}

type StdoutOptions struct {
	Codec   fleece.CodecPlugin
	Metrics *fleece.Metrics
}

func (p *stdOut) Run(_ context.Context, event fleece.Event) error {
	dat, err := p.opts.Codec.Encode(event)
	if err != nil {
		return err
	}
	n, err := p.w.Write(append(dat, '\n'))
	if err != nil {
		return err
	}
	p.opts.Metrics.SentBytes(n)
	return nil
}
