package fleece

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// DefaultIdleWait is how long the pipeline sleeps after an empty read.
const DefaultIdleWait = time.Second

func NewPipeline(name string, options PipelineOptions) *Pipeline {
	if options.IdleWait == 0 {
		options.IdleWait = DefaultIdleWait
	}
	var p Pipeline
	p.opts = options
	p.Name = name
	return &p
}

// Pipeline reads frames from one input and sends one event per frame to one
// output. Every frame is fully handled before the next read begins.
type Pipeline struct {
	Name    string
	input   NamedEntity[InputPlugin]
	filters []NamedEntity[FilterPlugin]
	output  NamedEntity[OutputPlugin]
	opts    PipelineOptions
}

type PipelineOptions struct {
	// Codec decodes frames into events.
	Codec CodecPlugin
	// Fallback decodes any frame the Codec rejected. It must not fail.
	Fallback CodecPlugin
	IdleWait time.Duration
	Metrics  *Metrics
}

func (p *Pipeline) GetName() string {
	return p.Name
}

func (p *Pipeline) Input(name string, plugin InputPlugin) {
	p.input = NamedEntity[InputPlugin]{Name: name, Value: plugin}
}

// Filters run in the order they were added.
func (p *Pipeline) Filter(name string, f FilterPlugin) {
	p.filters = append(p.filters, NamedEntity[FilterPlugin]{Name: name, Value: f})
}

func (p *Pipeline) Output(name string, plugin OutputPlugin) {
	p.output = NamedEntity[OutputPlugin]{Name: name, Value: plugin}
}

// Run returns nil once the input reaches end-of-stream.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.input.Value == nil {
		return fmt.Errorf("pipeline %s has no input", p.Name)
	}
	if p.output.Value == nil {
		return fmt.Errorf("pipeline %s has no output", p.Name)
	}
	if p.opts.Codec == nil || p.opts.Fallback == nil {
		return fmt.Errorf("pipeline %s needs a codec and a fallback codec", p.Name)
	}

	ctx = context.WithValue(ctx, ContextKeyPipelineName, p.GetName())
	log := ContextLogger(ctx)

	frames, err := p.input.Value.Open(context.WithValue(ctx, ContextKeyPluginName, p.input.Name))
	if err != nil {
		return fmt.Errorf("open input %s: %w", p.input.Name, err)
	}

	outCtx := context.WithValue(ctx, ContextKeyPluginType, "output")
	outCtx = context.WithValue(outCtx, ContextKeyPluginName, p.output.Name)

	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame, err := frames.ReadFrame()
		if len(frame) > 0 {
			p.opts.Metrics.lineRead()
			p.handle(outCtx, frame)
			count++
		}
		if errors.Is(err, io.EOF) {
			log.Debug("input reached end of stream", "count", count)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input %s: %w", p.input.Name, err)
		}

		if len(frame) == 0 {
			// nothing to read yet; don't burn cpu for nothing
			p.opts.Metrics.idleWait()
			select {
			case <-time.After(p.opts.IdleWait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (p *Pipeline) handle(ctx context.Context, frame []byte) {
	log := ContextLogger(ctx)

	event := p.decode(ctx, frame)

	for _, f := range p.filters {
		if err := f.Value(&event); err != nil {
			log.Warn("filter error", "error", err, "filter", f.Name)
		}
	}

	// fire and forget: a failed send is never retried
	if err := p.output.Value.Run(ctx, event); err != nil {
		p.opts.Metrics.sendError()
		log.Debug("send failed", "error", err)
		return
	}
	p.opts.Metrics.sent()
}

func (p *Pipeline) decode(ctx context.Context, frame []byte) Event {
	event, err := p.opts.Codec.Decode(frame)
	if err == nil {
		return event
	}
	p.opts.Metrics.parseFallback()
	event, fbErr := p.opts.Fallback.Decode(frame)
	if fbErr != nil {
		ContextLogger(ctx).Warn("fallback codec failed", "error", fbErr)
		event = NewEvent()
		event.Set(FieldMessage, string(frame))
	}
	return event
}
