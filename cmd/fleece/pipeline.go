package main

import (
	"io"

	"github.com/nicwaller/fleece"
	"github.com/nicwaller/fleece/codec"
	"github.com/nicwaller/fleece/filter"
	"github.com/nicwaller/fleece/output"
)

// buildPipeline wires the transform-emit loop: bounded lines in, JSON object
// or message fallback, static then mandatory fields, one datagram out.
func buildPipeline(cfg fleece.Config, in fleece.InputPlugin, out fleece.OutputPlugin, metrics *fleece.Metrics) *fleece.Pipeline {
	p := fleece.NewPipeline("stdin", fleece.PipelineOptions{
		Codec:    codec.Json(),
		Fallback: codec.Plain(fleece.FieldMessage),
		Metrics:  metrics,
	})
	p.Input("stdin", in)
	p.Filter("enrich", filter.Enrich(cfg.StaticFields, cfg.Hostname))
	p.Output("udp", out)
	return p
}

// buildOutput returns the datagram emitter, or a line writer for --dry-run.
func buildOutput(cfg fleece.Config, dryRun bool, stdout io.Writer, metrics *fleece.Metrics) (fleece.OutputPlugin, func(), error) {
	if dryRun {
		return output.Writer(stdout, output.StdoutOptions{Codec: codec.Json(), Metrics: metrics}), func() {}, nil
	}
	out, err := output.UDP(cfg.Destination, output.UDPOptions{Codec: codec.Json(), Metrics: metrics})
	if err != nil {
		return nil, nil, err
	}
	return out, func() { _ = out.Close() }, nil
}
