package output

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/nicwaller/fleece"
	"github.com/nicwaller/fleece/codec"
)

// MaxDatagramSize is the largest UDP payload IPv4 can carry.
const MaxDatagramSize = 65507

var ErrDatagramTooLarge = errors.New("datagram too large")

type UDPOptions struct {
	Codec   fleece.CodecPlugin
	Metrics *fleece.Metrics
}

// UDP sends each event as exactly one datagram. Nothing is acknowledged or retried.
func UDP(destination fleece.Endpoint, opts UDPOptions) (*UDPOutput, error) {
	if opts.Codec == nil {
		opts.Codec = codec.Json()
	}
	addr, err := net.ResolveUDPAddr("udp", destination.String())
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", destination, err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", destination, err)
	}
	return &UDPOutput{conn: conn, opts: opts}, nil
}

type UDPOutput struct {
	conn *net.UDPConn
	opts UDPOptions
}

func (p *UDPOutput) Run(_ context.Context, event fleece.Event) error {
	dat, err := p.opts.Codec.Encode(event)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if len(dat) > MaxDatagramSize {
		return fmt.Errorf("%w: %d bytes", ErrDatagramTooLarge, len(dat))
	}
	n, err := p.conn.Write(dat)
	if err != nil {
		return err
	}
	p.opts.Metrics.SentBytes(n)
	return nil
}

func (p *UDPOutput) Close() error {
	return p.conn.Close()
}
